// This file is part of golisp - https://github.com/db47h/golisp

// Package lexer turns Lisp source text into a finite linear token stream,
// the way asm/parser.go's scanning half turns assembly source into a
// stream of classified lexemes — hand-rolled rather than built on
// text/scanner because the token grammar here (string-mode toggling via
// an unescaped quote character, a fixed-capacity lexeme buffer, bare `'`
// as its own token) isn't one text/scanner's Go-syntax-oriented rules
// express directly.
package lexer

import (
	"strconv"

	"github.com/pkg/errors"
)

// Kind classifies a Token.
type Kind uint8

// Token kinds.
const (
	Integer Kind = iota
	Real
	String
	Symbol
	Nil
	LParen
	RParen
	Quote
)

// Token is one lexeme produced by Lex, classified and with its literal
// text (or payload, for numeric kinds) attached.
type Token struct {
	Kind Kind
	Text string
	Int  int64
	Real float64
}

// maxLexeme is the fixed lexeme buffer capacity of spec §4.4; exceeding it
// fails with Overflow.
const maxLexeme = 127

// Overflow is returned (wrapped) when an accumulating lexeme exceeds
// maxLexeme bytes.
var Overflow = errors.New("lexer: lexeme exceeds maximum length")

// Lex tokenizes src into a finite linear token stream (spec §4.4).
func Lex(src string) ([]Token, error) {
	var toks []Token
	var buf []byte
	inString := false

	flush := func() error {
		if len(buf) == 0 {
			return nil
		}
		toks = append(toks, classify(string(buf)))
		buf = buf[:0]
		return nil
	}

	for i := 0; i < len(src); i++ {
		c := src[i]
		if inString {
			if c == '"' {
				toks = append(toks, Token{Kind: String, Text: string(buf)})
				buf = buf[:0]
				inString = false
				continue
			}
			if len(buf) >= maxLexeme {
				return nil, errors.WithStack(Overflow)
			}
			buf = append(buf, c)
			continue
		}
		switch {
		case c == '"':
			if err := flush(); err != nil {
				return nil, err
			}
			inString = true
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			if err := flush(); err != nil {
				return nil, err
			}
		case c == '(':
			if err := flush(); err != nil {
				return nil, err
			}
			toks = append(toks, Token{Kind: LParen})
		case c == ')':
			if err := flush(); err != nil {
				return nil, err
			}
			toks = append(toks, Token{Kind: RParen})
		case c == '\'':
			if err := flush(); err != nil {
				return nil, err
			}
			toks = append(toks, Token{Kind: Quote})
		default:
			if len(buf) >= maxLexeme {
				return nil, errors.WithStack(Overflow)
			}
			buf = append(buf, c)
		}
	}
	if inString {
		// Unterminated string literal: per spec §4.4 this is reported by
		// the parser, not the lexer, so the accumulated text is emitted
		// as a String token and left for Parse to deal with (there is no
		// further input to close it).
		toks = append(toks, Token{Kind: String, Text: string(buf)})
	} else if err := flush(); err != nil {
		return nil, err
	}
	return toks, nil
}

// classify turns a completed non-string lexeme into an Integer, Real, Nil,
// or Symbol token, in that precedence order (spec §4.4). Integer parsing
// honors the platform numeric-scan convention, including 0x-prefixed hex,
// via strconv.ParseInt with base 0 — the same approach asm/parser.go uses
// for its own integer literals.
func classify(s string) Token {
	if n, err := strconv.ParseInt(s, 0, 64); err == nil {
		return Token{Kind: Integer, Text: s, Int: n}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Token{Kind: Real, Text: s, Real: f}
	}
	if s == "nil" {
		return Token{Kind: Nil, Text: s}
	}
	return Token{Kind: Symbol, Text: s}
}
