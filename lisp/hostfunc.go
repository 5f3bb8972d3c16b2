// This file is part of golisp - https://github.com/db47h/golisp

package lisp

// HostFunc is a builtin implemented by the embedding host rather than this
// package, mirroring vm's host-trap registration (spec §6.3). It receives
// the already-evaluated operand values (applicative order, unlike
// BuiltinFunc which sees the raw unevaluated list) plus its own userData,
// and returns a fresh-reference result.
type HostFunc func(interp *Interpreter, args *Args, userData interface{}) (*Value, error)

// Args is the evaluated-operand accessor passed to a HostFunc, wrapping the
// owned slice produced by evalAll so host code doesn't need to know the
// refcounting discipline to read operands.
type Args struct {
	vals []*Value
}

// Len reports the number of operands.
func (a *Args) Len() int { return len(a.vals) }

// At returns a borrowed reference to the i'th operand, or empty if i is out
// of range.
func (a *Args) At(i int) *Value {
	if i < 0 || i >= len(a.vals) {
		return nil
	}
	return a.vals[i]
}

// Int coerces the i'th operand to an int64 (spec §6.3's numeric accessor),
// treating a missing or non-numeric operand as 0.
func (a *Args) Int(i int) int64 { return asInt(a.At(i)) }

// Real coerces the i'th operand to a float64.
func (a *Args) Real(i int) float64 { return asReal(a.At(i)) }

// Str renders the i'th operand as a string: the operand's own text if it is
// already a String, otherwise its printed representation.
func (a *Args) Str(i int) string {
	v := a.At(i)
	if v != nil && v.kind == KString {
		return v.s
	}
	return Repr(v)
}

// Register installs a host-implemented builtin named name in scope, wired
// through a BuiltinFunc adapter that evaluates the operand list once
// (applicative order) before handing it to fn, the way vm's host traps are
// reached through a single dispatch switch (spec §6.3).
func Register(scope *Scope, name string, fn HostFunc, userData interface{}) {
	adapter := func(interp *Interpreter, scope *Scope, rawArgs *Value, data interface{}) (*Value, error) {
		vals, err := interp.evalAll(scope, rawArgs)
		if err != nil {
			return nil, err
		}
		defer releaseAll(vals)
		hd := data.(*hostData)
		return hd.fn(interp, &Args{vals: vals}, hd.userData)
	}
	scope.Set(name, NewBuiltin(adapter, &hostData{fn: fn, userData: userData}, nil))
}

type hostData struct {
	fn       HostFunc
	userData interface{}
}
