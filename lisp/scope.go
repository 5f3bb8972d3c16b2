// This file is part of golisp - https://github.com/db47h/golisp

package lisp

// binding is one (symbol-text, value) pair owning its value reference.
type binding struct {
	name  string
	value *Value
}

// Scope is one frame of the parent-linked environment chain of spec §4.2:
// lookup walks parent links toward the root; mutation targets only the
// frame it's given. Modeled as a small linked association list rather than
// a map — frames are small, short-lived (created on application, popped on
// return), and the invariants spec §9 cares about (one mutable frame, outer
// frames read-only from the mutator's standpoint, per-frame ownership of
// references) fall out directly from a slice of bindings plus a parent
// pointer.
type Scope struct {
	parent   *Scope
	bindings []binding
}

// NewScope creates a root scope with no parent.
func NewScope() *Scope {
	return &Scope{}
}

// Query walks parent links to the root looking for name, returning a fresh
// reference to the first match found, or (nil, false) if name is unbound
// anywhere in the chain.
func (s *Scope) Query(name string) (*Value, bool) {
	for f := s; f != nil; f = f.parent {
		for i := len(f.bindings) - 1; i >= 0; i-- {
			if f.bindings[i].name == name {
				return f.bindings[i].value.Retain(), true
			}
		}
	}
	return nil, false
}

// Set binds name to value in s specifically (never a parent frame),
// replacing and releasing any existing binding for name in s, or
// prepending a new one. Set takes ownership of one reference to value.
func (s *Scope) Set(name string, value *Value) {
	for i := range s.bindings {
		if s.bindings[i].name == name {
			s.bindings[i].value.Release()
			s.bindings[i].value = value
			return
		}
	}
	s.bindings = append(s.bindings, binding{name: name, value: value})
}

// Enter creates a child scope of s, binding params (a proper list of
// Symbols, or empty) to the evaluated args (a list of unevaluated operand
// expressions, evaluated here in s — applicative order) one-for-one.
// Missing arguments are bound to empty; extra arguments are silently
// discarded (spec §4.2, §9 — an acknowledged design debt, not "fixed"
// here). It is a bug for a parameter to be anything but a Symbol.
func (s *Scope) Enter(interp *Interpreter, params, args *Value) (*Scope, error) {
	child := &Scope{parent: s}
	p, a := params, args
	for IsCell(p) {
		sym := p.car
		if sym == nil || sym.kind != KSymbol {
			child.Pop()
			return nil, newError(KindBug, "function parameter is not a symbol")
		}
		var argExpr *Value
		if IsCell(a) {
			argExpr = a.car
			a = a.cdr
		}
		val, err := interp.evalValue(s, argExpr)
		if err != nil {
			child.Pop()
			return nil, err
		}
		child.Set(sym.s, val)
		p = p.cdr
	}
	return child, nil
}

// Pop discards s, releasing every value it owns a reference to. The root
// scope is popped only by Interpreter.Close.
func (s *Scope) Pop() {
	for i := range s.bindings {
		s.bindings[i].value.Release()
		s.bindings[i].value = nil
	}
	s.bindings = nil
}

// GetInt looks up name (walking parents) and coerces it to an int64.
func (s *Scope) GetInt(name string) (int64, bool) {
	v, ok := s.Query(name)
	if !ok {
		return 0, false
	}
	defer v.Release()
	return asInt(v), true
}

// SetInt binds name to an Integer value in s's own frame.
func (s *Scope) SetInt(name string, n int64) {
	s.Set(name, NewInteger(n))
}

// GetReal looks up name (walking parents) and coerces it to a float64.
func (s *Scope) GetReal(name string) (float64, bool) {
	v, ok := s.Query(name)
	if !ok {
		return 0, false
	}
	defer v.Release()
	return asReal(v), true
}

// SetReal binds name to a Real value in s's own frame.
func (s *Scope) SetReal(name string, f float64) {
	s.Set(name, NewReal(f))
}

// GetString looks up name (walking parents) and renders it via Repr if it
// is not already a String.
func (s *Scope) GetString(name string) (string, bool) {
	v, ok := s.Query(name)
	if !ok {
		return "", false
	}
	defer v.Release()
	if v != nil && v.kind == KString {
		return v.s, true
	}
	return Repr(v), true
}

// SetString binds name to a String value in s's own frame.
func (s *Scope) SetString(name string, str string) {
	s.Set(name, NewString(str))
}

func asInt(v *Value) int64 {
	if v == nil {
		return 0
	}
	switch v.kind {
	case KInteger:
		return v.i
	case KReal:
		return int64(v.f)
	default:
		return 0
	}
}

func asReal(v *Value) float64 {
	if v == nil {
		return 0
	}
	switch v.kind {
	case KInteger:
		return float64(v.i)
	case KReal:
		return v.f
	default:
		return 0
	}
}
