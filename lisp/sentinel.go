// This file is part of golisp - https://github.com/db47h/golisp

package lisp

// sentinels holds the shared, immutable singletons spec §3 calls for:
// boolean-true (Integer 1), boolean-false (Integer 0), and one String per
// type name. Modeled with an explicit "interned" bit per spec §9 rather
// than a one-shot C-style memoized global, constructed once per
// Interpreter and shared by its builtins and comparisons.
type sentinels struct {
	True, False *Value
	TypeNames   map[ValueKind]*Value
	NilType     *Value
}

func newSentinels() *sentinels {
	mk := func(kind ValueKind, s string) *Value {
		return &Value{kind: kind, sentinel: true, refs: 1, s: s}
	}
	s := &sentinels{
		True:  &Value{kind: KInteger, sentinel: true, refs: 1, i: 1},
		False: &Value{kind: KInteger, sentinel: true, refs: 1, i: 0},
	}
	s.TypeNames = map[ValueKind]*Value{
		KInteger:  mk(KString, "integer"),
		KReal:     mk(KString, "real"),
		KString:   mk(KString, "string"),
		KSymbol:   mk(KString, "symbol"),
		KFunction: mk(KString, "function"),
		KBuiltin:  mk(KString, "builtin"),
		KCell:     mk(KString, "cell"),
	}
	s.NilType = mk(KString, "nil")
	return s
}

// Bool returns the shared boolean-true or boolean-false sentinel.
func (s *sentinels) Bool(t bool) *Value {
	if t {
		return s.True
	}
	return s.False
}

// TypeOf returns the shared type-name String sentinel for v's variant.
func (s *sentinels) TypeOf(v *Value) *Value {
	if v == nil {
		return s.NilType
	}
	if t, ok := s.TypeNames[v.kind]; ok {
		return t
	}
	return s.NilType
}

// isSameSentinel reports whether a and b are the identical sentinel
// instance — the identity-based equality spec §4.7's == requires before
// any numeric promotion is attempted.
func isSameSentinel(a, b *Value) bool {
	return a != nil && b != nil && a.sentinel && b.sentinel && a == b
}
