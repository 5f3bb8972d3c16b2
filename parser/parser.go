// This file is part of golisp - https://github.com/db47h/golisp

// Package parser consumes a lexer.Token stream into a single value tree,
// expanding quote syntax, the way asm/parser.go consumes a text/scanner
// token stream into a compiled instruction image — a mutable cursor over
// the stream with an explicit nesting-level state machine, generalized
// here from a flat instruction image to a recursive list/quote grammar.
package parser

import (
	"github.com/db47h/golisp/lexer"
	"github.com/pkg/errors"
)

// Builder is the value-tree construction surface the parser needs,
// without importing the concrete value type directly (that would cycle
// back to the package that drives Parse). Each method mirrors one of
// lisp's constructors; Cons retains each argument and the caller keeps its
// own reference, matching lisp.Cons.
type Builder interface {
	Integer(n int64) interface{}
	Real(f float64) interface{}
	String(s string) interface{}
	Symbol(s string) interface{}
	Nil() interface{}
	Cons(car, cdr interface{}) interface{}
	Release(v interface{})
}

type parser struct {
	toks []lexer.Token
	pos  int
	b    Builder
}

// Parse consumes toks into a single value tree (spec §4.5): an
// unparenthesized atom, or a fully parenthesized list with quote syntax
// expanded. Trailing tokens past the first complete top-level form are
// ignored, matching the "one expression per Eval call" model (spec §1's
// non-goal on multi-expression evaluation).
func Parse(toks []lexer.Token, b Builder) (interface{}, error) {
	p := &parser{toks: toks, b: b}
	tok, ok := p.nextTok()
	if !ok {
		return nil, errors.New("parser: unexpected end of input")
	}
	return p.parseFrom(tok)
}

func (p *parser) nextTok() (lexer.Token, bool) {
	if p.pos >= len(p.toks) {
		return lexer.Token{}, false
	}
	t := p.toks[p.pos]
	p.pos++
	return t, true
}

// parseFrom parses the value starting at tok, which has already been
// consumed from the stream.
func (p *parser) parseFrom(tok lexer.Token) (interface{}, error) {
	switch tok.Kind {
	case lexer.Integer:
		return p.b.Integer(tok.Int), nil
	case lexer.Real:
		return p.b.Real(tok.Real), nil
	case lexer.String:
		return p.b.String(tok.Text), nil
	case lexer.Symbol:
		return p.b.Symbol(tok.Text), nil
	case lexer.Nil:
		return p.b.Nil(), nil
	case lexer.LParen:
		return p.parseList()
	case lexer.RParen:
		return nil, errors.New("parser: unexpected )")
	case lexer.Quote:
		inner, ok := p.nextTok()
		if !ok {
			return nil, errors.New("parser: unexpected end of input after quote")
		}
		val, err := p.parseFrom(inner)
		if err != nil {
			return nil, err
		}
		return p.wrapQuote(val), nil
	default:
		// An unknown token kind is a bug, not a recoverable parse error
		// (spec §4.5): the lexer never emits one.
		panic(errors.Errorf("parser: unknown token kind %d", tok.Kind))
	}
}

// wrapQuote builds (quote val). Cons aliases rather than transfers (spec
// §4.1: "Cons takes two values and increments each"), so every
// intermediate reference built here is released once it has been aliased
// into the result, leaving the caller holding exactly one reference to
// the finished (quote val) cell.
func (p *parser) wrapQuote(val interface{}) interface{} {
	sym := p.b.Symbol("quote")
	nilv := p.b.Nil()
	inner := p.b.Cons(val, nilv)
	p.b.Release(val)
	p.b.Release(nilv)
	result := p.b.Cons(sym, inner)
	p.b.Release(sym)
	p.b.Release(inner)
	return result
}

// parseList parses the element sequence following an already-consumed '('
// up to its matching ')', expanding any nested '(' by recursion (spec
// §4.5: "'(' at nesting >=1 recurses and the returned value becomes the
// next list element"). Elements are collected and then folded from the
// right into cons cells, rather than mutating a dummy head node in place
// as the C original does, because lisp.Value cells are immutable once
// built (there is no set-car!/set-cdr!, per spec §5) — the two techniques
// produce the same proper list.
func (p *parser) parseList() (result interface{}, err error) {
	var elems []interface{}
	defer func() {
		if err != nil {
			for _, e := range elems {
				p.b.Release(e)
			}
		}
	}()
	for {
		tok, ok := p.nextTok()
		if !ok {
			err = errors.New("parser: unterminated list")
			return nil, err
		}
		if tok.Kind == lexer.RParen {
			break
		}
		var v interface{}
		v, err = p.parseFrom(tok)
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	result = p.b.Nil()
	for i := len(elems) - 1; i >= 0; i-- {
		next := p.b.Cons(elems[i], result)
		p.b.Release(result)
		p.b.Release(elems[i])
		result = next
	}
	return result, nil
}
