// This file is part of golisp - https://github.com/db47h/golisp

package lisp

import "testing"

func TestReprAtoms(t *testing.T) {
	cases := []struct {
		v    *Value
		want string
	}{
		{nil, "nil"},
		{NewInteger(-5), "-5"},
		{NewReal(1.5), "1.5"},
		{NewReal(2), "2.0"},
		{NewString("hi"), `"hi"`},
		{NewSymbol("foo"), "foo"},
	}
	for _, c := range cases {
		if got := Repr(c.v); got != c.want {
			t.Errorf("Repr(%+v) = %q, want %q", c.v, got, c.want)
		}
		c.v.Release()
	}
}

func TestReprProperList(t *testing.T) {
	l := Cons(NewInteger(1), Cons(NewInteger(2), nil))
	if got, want := Repr(l), "(1 2)"; got != want {
		t.Errorf("Repr(l) = %q, want %q", got, want)
	}
	l.Release()
}

func TestReprImproperList(t *testing.T) {
	l := Cons(NewInteger(1), NewInteger(2))
	if got, want := Repr(l), "(1 . 2)"; got != want {
		t.Errorf("Repr(l) = %q, want %q", got, want)
	}
	l.Release()
}

func TestReprTruncatesAtMaxLength(t *testing.T) {
	s := make([]byte, maxRepr*2)
	for i := range s {
		s[i] = 'x'
	}
	v := NewString(string(s))
	if got := Repr(v); len(got) != maxRepr {
		t.Errorf("Repr: got length %d, want %d", len(got), maxRepr)
	}
	v.Release()
}
