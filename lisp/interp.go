// This file is part of golisp - https://github.com/db47h/golisp

package lisp

import (
	"errors"
	"fmt"
	"os"

	"github.com/db47h/golisp/lexer"
	"github.com/db47h/golisp/parser"
)

// Channel identifies a host output stream, mirroring vm.Output's port
// numbering (1 = stdout, 2 = stderr) from spec §6.
type Channel int

// Output channels.
const (
	Stdout Channel = 1
	Stderr Channel = 2
)

// Printer is the host callback used by println and prompt to write to a
// host-visible stream.
type Printer interface {
	Print(channel Channel, s string)
}

// LineReader is the host callback used by prompt to read one line of
// input. ok is false at end-of-input.
type LineReader interface {
	ReadLine() (line string, ok bool)
}

type stdPrinter struct{}

func (stdPrinter) Print(ch Channel, s string) {
	if ch == Stderr {
		fmt.Fprint(os.Stderr, s)
		return
	}
	fmt.Fprint(os.Stdout, s)
}

// Interpreter is one embeddable instance of the language runtime: its root
// Scope (populated with built-ins at construction), its sentinel table,
// configured I/O callbacks, and its last evaluation result and error —
// the Go analogue of vm.Instance, constructed the same way with a slice of
// functional Options.
type Interpreter struct {
	Root     *Scope
	sentinel *sentinels
	printer  Printer
	lines    LineReader

	lastResult *Value
	lastErr    *Error
}

// Option configures an Interpreter at construction time, mirroring the
// vm.Option functional-options pattern.
type Option func(*Interpreter)

// WithCallbacks wires the host Printer and LineReader. Either may be nil;
// a nil Printer defaults to os.Stdout/os.Stderr, a nil LineReader makes
// prompt fail Unsupported.
func WithCallbacks(p Printer, r LineReader) Option {
	return func(i *Interpreter) {
		if p != nil {
			i.printer = p
		}
		i.lines = r
	}
}

// NewInterpreter allocates an Interpreter, applies opts, and installs the
// built-in operator catalog (spec §4.7) into its root scope.
func NewInterpreter(opts ...Option) (*Interpreter, error) {
	interp := &Interpreter{
		Root:     NewScope(),
		sentinel: newSentinels(),
		printer:  stdPrinter{},
	}
	for _, opt := range opts {
		opt(interp)
	}
	installBuiltins(interp)
	return interp, nil
}

// Close releases the last result and pops the root scope, mirroring
// vm's destroy semantics (spec §6, item 2).
func (interp *Interpreter) Close() {
	interp.lastResult.Release()
	interp.lastResult = nil
	interp.Root.Pop()
}

// ErrorMessage returns the message of the most recent failure, or "" if
// the last Eval succeeded.
func (interp *Interpreter) ErrorMessage() string {
	if interp.lastErr == nil {
		return ""
	}
	return interp.lastErr.Message
}

// LastErrorKind returns the Kind of the most recent failure, or KindOK.
func (interp *Interpreter) LastErrorKind() Kind {
	if interp.lastErr == nil {
		return KindOK
	}
	return interp.lastErr.Kind
}

// Result returns a fresh reference to the most recent evaluation result.
func (interp *Interpreter) Result() *Value {
	return interp.lastResult.Retain()
}

// Eval lexes, parses, and evaluates one top-level expression from src
// under the root scope, storing (and returning) a fresh reference to the
// result. On success the previous result is released and replaced; a
// failed Eval leaves it in place. Eval clears the last-error slot on entry
// (spec §7). A lexeme longer than the lexer's buffer is recorded as
// KindOverflow.
func (interp *Interpreter) Eval(src string) (*Value, error) {
	interp.lastErr = nil

	toks, err := lexer.Lex(src)
	if err != nil {
		if errors.Is(err, lexer.Overflow) {
			err = newError(KindOverflow, lexer.Overflow.Error())
		}
		return nil, interp.fail(err)
	}
	tree, err := parser.Parse(toks, (*builderAdapter)(interp))
	if err != nil {
		return nil, interp.fail(err)
	}
	v, _ := tree.(*Value)

	result, err := interp.evalValue(interp.Root, v)
	if err != nil {
		return nil, interp.fail(err)
	}

	interp.lastResult.Release()
	interp.lastResult = result
	return result.Retain(), nil
}

// fail records err's innermost Kind/message on the instance and
// propagates it, mirroring the sticky last-error discipline of spec §4.6
// and §7.
func (interp *Interpreter) fail(err error) error {
	e := causeError(err)
	interp.lastErr = e
	return err
}

// builderAdapter lets the parser package build *Value trees without
// importing lisp's concrete types directly in its own exported API: the
// parser only knows about parser.Builder, an interface satisfied here.
type builderAdapter Interpreter

func (b *builderAdapter) Integer(n int64) interface{}      { return NewInteger(n) }
func (b *builderAdapter) Real(f float64) interface{}       { return NewReal(f) }
func (b *builderAdapter) String(s string) interface{}      { return NewString(s) }
func (b *builderAdapter) Symbol(s string) interface{}      { return NewSymbol(s) }
func (b *builderAdapter) Nil() interface{}                 { return nil }
func (b *builderAdapter) Cons(car, cdr interface{}) interface{} {
	c, _ := car.(*Value)
	d, _ := cdr.(*Value)
	return Cons(c, d)
}
func (b *builderAdapter) Release(v interface{}) {
	val, _ := v.(*Value)
	val.Release()
}
