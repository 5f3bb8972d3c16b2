// This file is part of golisp - https://github.com/db47h/golisp

package lisp

import "github.com/pkg/errors"

// Kind of a Value. The variant set is closed: every Value is either an Atom
// (Integer, Real, String, Symbol, Function, Builtin) or a Cell.
type ValueKind uint8

// Value kinds.
const (
	KInteger ValueKind = iota
	KReal
	KString
	KSymbol
	KFunction
	KBuiltin
	KCell
)

var valueKindNames = [...]string{
	KInteger:  "integer",
	KReal:     "real",
	KString:   "string",
	KSymbol:   "symbol",
	KFunction: "function",
	KBuiltin:  "builtin",
	KCell:     "cell",
}

// BuiltinFunc is the dispatch handle for a Builtin value: it receives the
// unevaluated argument list (the operator cell's cdr), the calling scope,
// and its own opaque user data, and returns a fresh-reference result.
type BuiltinFunc func(interp *Interpreter, scope *Scope, args *Value, data interface{}) (*Value, error)

// Value is every runtime value: a tagged union over the seven variants of
// the closed Atom/Cell sum type, plus the distinguished Empty value (nil
// *Value). Dynamically allocated values are reference counted; sentinel
// instances (booleans, type-name strings) carry sentinel=true and ignore
// Retain/Release.
type Value struct {
	kind     ValueKind
	refs     int
	sentinel bool

	i    int64  // Integer
	f    float64 // Real
	s    string  // String / Symbol text

	car, cdr *Value // Cell

	params, body *Value      // Function
	fn           BuiltinFunc // Builtin dispatch handle
	data         interface{} // Builtin user data
	destroy      func(interface{})
}

// Kind reports v's variant. A nil *Value (Empty) has no Kind; callers must
// check for nil (IsNil) before calling Kind.
func (v *Value) Kind() ValueKind { return v.kind }

// IsNil reports whether v is the distinguished empty value.
func IsNil(v *Value) bool { return v == nil }

// NewInteger allocates a fresh Integer value.
func NewInteger(n int64) *Value { return &Value{kind: KInteger, refs: 1, i: n} }

// NewReal allocates a fresh Real value.
func NewReal(f float64) *Value { return &Value{kind: KReal, refs: 1, f: f} }

// NewString allocates a fresh String value, copying s.
func NewString(s string) *Value {
	return &Value{kind: KString, refs: 1, s: string([]byte(s))}
}

// NewSymbol allocates a fresh Symbol value, copying text. text must be
// non-empty and free of whitespace, parentheses, and quote characters; this
// is an invariant callers (the parser, Set) are responsible for upholding.
func NewSymbol(text string) *Value {
	return &Value{kind: KSymbol, refs: 1, s: string([]byte(text))}
}

// NewFunction allocates a fresh Function value, taking ownership of one
// reference to params and body each (empty is a valid value for either).
func NewFunction(params, body *Value) *Value {
	return &Value{kind: KFunction, refs: 1, params: params, body: body}
}

// NewBuiltin allocates a fresh Builtin value wrapping fn. destroy, if
// non-nil, is invoked on data when the Builtin's refcount reaches zero.
func NewBuiltin(fn BuiltinFunc, data interface{}, destroy func(interface{})) *Value {
	return &Value{kind: KBuiltin, refs: 1, fn: fn, data: data, destroy: destroy}
}

// Cons allocates a fresh Cell, retaining car and cdr (the caller keeps its
// own references to both). Either may be empty.
func Cons(car, cdr *Value) *Value {
	if car != nil {
		car.Retain()
	}
	if cdr != nil {
		cdr.Retain()
	}
	return &Value{kind: KCell, refs: 1, car: car, cdr: cdr}
}

// Retain increments v's reference count and returns v, to make aliasing
// sites read as "take a reference". Retaining empty is a no-op.
func (v *Value) Retain() *Value {
	if v == nil || v.sentinel {
		return v
	}
	v.refs++
	return v
}

// Release decrements v's reference count, recursively releasing owned
// payloads (Cell car/cdr, Function params/body, Builtin user data via its
// destructor, String/Symbol buffers by simple collection) once it reaches
// zero. Releasing empty or a sentinel is a no-op.
func (v *Value) Release() {
	if v == nil || v.sentinel {
		return
	}
	v.refs--
	if v.refs > 0 {
		return
	}
	if v.refs < 0 {
		panic(errors.Errorf("lisp: negative refcount on %s value", valueKindNames[v.kind]))
	}
	switch v.kind {
	case KCell:
		v.car.Release()
		v.cdr.Release()
	case KFunction:
		v.params.Release()
		v.body.Release()
	case KBuiltin:
		if v.destroy != nil {
			v.destroy(v.data)
		}
	}
}

// Car is total: the car of an atom is the atom itself, the car of empty is
// empty. This totalization (spec §4.1) underlies the list-walk idiom used
// throughout the evaluator.
func Car(v *Value) *Value {
	if v == nil {
		return nil
	}
	if v.kind != KCell {
		return v
	}
	return v.car
}

// Cdr is total: the cdr of an atom is empty, the cdr of empty is empty.
func Cdr(v *Value) *Value {
	if v == nil || v.kind != KCell {
		return nil
	}
	return v.cdr
}

// IsAtom reports whether v is a non-Cell value. Empty is its own case,
// distinct from Atom (spec §3/§4.6's Empty / Atom-non-Symbol / Atom-Symbol
// / Cell taxonomy); is_atom(NULL) is false in the original (sclisp.c:243).
func IsAtom(v *Value) bool { return v != nil && v.kind != KCell }

// IsCell reports whether v is a Cell.
func IsCell(v *Value) bool { return v != nil && v.kind == KCell }

// IsTruthy implements spec §4.7's truthiness rule: empty, Integer 0, and
// Real 0.0 are false; everything else is true.
func IsTruthy(v *Value) bool {
	if v == nil {
		return false
	}
	switch v.kind {
	case KInteger:
		return v.i != 0
	case KReal:
		return v.f != 0
	default:
		return true
	}
}

// Reverse produces a new list with v's elements in reverse order, mirroring
// sclisp's internal_reverse exactly (including its two-cell special case):
// on an atom it returns the atom (retained); on empty it returns empty; on
// a two-cell pair (a . c) with an atom tail it returns the improper pair
// (c . a); otherwise it walks v with the totalized Car/Cdr, consing each
// totalized Car onto the accumulator until both the totalized Car and the
// cursor go empty together. On a proper list this is the ordinary reversal.
// On a longer improper list such as (a b . c) it folds b and c in via the
// same totalized walk (c ends up consed on using its own totalized Car,
// i.e. itself) — callers must only pass proper lists if they want a
// conventional reversal; see DESIGN.md for why this shape was kept.
func Reverse(v *Value) *Value {
	if v == nil {
		return nil
	}
	if IsAtom(v) {
		return v.Retain()
	}
	car, cdr := Car(v), Cdr(v)
	if car != nil && IsAtom(cdr) {
		return Cons(cdr, car)
	}
	var reversed *Value
	for cur := v; ; {
		c := Car(cur)
		if c == nil && cur == nil {
			break
		}
		reversed = Cons(c, reversed)
		cur = Cdr(cur)
	}
	return reversed
}
