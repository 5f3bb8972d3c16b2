// This file is part of golisp - https://github.com/db47h/golisp

package lisp

import "testing"

func TestScopeQueryWalksParents(t *testing.T) {
	root := NewScope()
	root.Set("x", NewInteger(1))
	child := &Scope{parent: root}

	v, ok := child.Query("x")
	if !ok {
		t.Fatal("Query: expected to find x in parent scope")
	}
	if v.i != 1 {
		t.Errorf("Query: got %d, want 1", v.i)
	}
	v.Release()
	child.Pop()
	root.Pop()
}

func TestScopeSetTargetsOwnFrame(t *testing.T) {
	root := NewScope()
	root.Set("x", NewInteger(1))
	child := &Scope{parent: root}
	child.Set("x", NewInteger(2))

	v, _ := child.Query("x")
	if v.i != 2 {
		t.Errorf("child scope should see its own binding, got %d", v.i)
	}
	v.Release()

	rv, _ := root.Query("x")
	if rv.i != 1 {
		t.Errorf("parent scope binding should be untouched, got %d", rv.i)
	}
	rv.Release()

	child.Pop()
	root.Pop()
}

func TestScopeSetReplacesExistingBinding(t *testing.T) {
	s := NewScope()
	s.Set("x", NewInteger(1))
	s.Set("x", NewInteger(2))
	v, ok := s.Query("x")
	if !ok || v.i != 2 {
		t.Errorf("got %+v, want rebound to 2", v)
	}
	v.Release()
	s.Pop()
}

func TestScopeEnterBindsMissingParamsToEmpty(t *testing.T) {
	s := NewScope()
	params := Cons(NewSymbol("a"), Cons(NewSymbol("b"), nil))
	args := Cons(NewInteger(1), nil) // only one arg for two params
	interp, err := NewInterpreter()
	if err != nil {
		t.Fatal(err)
	}
	defer interp.Close()

	child, err := s.Enter(interp, params, args)
	if err != nil {
		t.Fatal(err)
	}
	a, _ := child.Query("a")
	b, _ := child.Query("b")
	if a.i != 1 {
		t.Errorf("a = %+v, want Integer 1", a)
	}
	if b != nil {
		t.Errorf("b = %+v, want empty", b)
	}
	a.Release()
	b.Release()
	child.Pop()
	params.Release()
	args.Release()
}

func TestHostScopeAccessors(t *testing.T) {
	s := NewScope()
	s.SetInt("n", 7)
	if n, ok := s.GetInt("n"); !ok || n != 7 {
		t.Errorf("GetInt: got (%d, %v), want (7, true)", n, ok)
	}
	s.SetReal("r", 1.5)
	if r, ok := s.GetReal("r"); !ok || r != 1.5 {
		t.Errorf("GetReal: got (%v, %v), want (1.5, true)", r, ok)
	}
	s.SetString("s", "hi")
	if str, ok := s.GetString("s"); !ok || str != "hi" {
		t.Errorf("GetString: got (%q, %v), want (%q, true)", str, ok, "hi")
	}
	if _, ok := s.GetInt("missing"); ok {
		t.Error("GetInt: expected ok=false for unbound name")
	}
	s.Pop()
}
