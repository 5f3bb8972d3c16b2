// This file is part of golisp - https://github.com/db47h/golisp

package lisp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// evalRepr is the table-driven workhorse for this file's tests: it runs
// one or more forms through a fresh Interpreter in sequence and returns the
// repr of the last result, the way vm_test.go's setup/check pair drives a
// sequence of instructions through a fresh Instance and inspects the final
// machine state.
func evalRepr(t *testing.T, forms ...string) string {
	t.Helper()
	interp, err := NewInterpreter()
	require.NoError(t, err)
	defer interp.Close()

	var last *Value
	for _, f := range forms {
		last.Release()
		last, err = interp.Eval(f)
		require.NoError(t, err, "form %q", f)
	}
	defer last.Release()
	return Repr(last)
}

// TestEndToEnd covers spec.md §8's six end-to-end scenarios.
func TestEndToEnd(t *testing.T) {
	cases := []struct {
		name  string
		forms []string
		want  string
	}{
		{"sum", []string{"(+ 1 2 3)"}, "6"},
		{"lambda-call", []string{"(set f (lambda (x y) (+ x y)))", "(f 10 20)"}, "30"},
		{"cond-nil", []string{`(cond ((nil? nil) "a") (#t "b"))`}, `"a"`},
		{"reverse-list", []string{"(reverse (list 1 2 3))"}, "(3 2 1)"},
		{"eval-quote", []string{"(eval (quote (* 6 7)))"}, "42"},
		{"set-sugar", []string{"(set (sq x) (* x x))", "(sq 9)"}, "81"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, evalRepr(t, c.forms...))
		})
	}
}

// TestUniversalLaws covers spec.md §8's universal laws.
func TestUniversalLaws(t *testing.T) {
	t.Run("literal identity", func(t *testing.T) {
		require.Equal(t, "42", evalRepr(t, "42"))
		require.Equal(t, `"hi"`, evalRepr(t, `"hi"`))
	})
	t.Run("quote suppresses sub-evaluation", func(t *testing.T) {
		require.Equal(t, "(+ 1 2)", evalRepr(t, "(quote (+ 1 2))"))
	})
	t.Run("car/cdr of cons round-trip", func(t *testing.T) {
		require.Equal(t, "1", evalRepr(t, "(car (cons 1 2))"))
		require.Equal(t, "2", evalRepr(t, "(cdr (cons 1 2))"))
	})
	t.Run("typeof sentinel sharing", func(t *testing.T) {
		interp, err := NewInterpreter()
		require.NoError(t, err)
		defer interp.Close()
		a, err := interp.Eval("(typeof 1)")
		require.NoError(t, err)
		b, err := interp.Eval("(typeof 2)")
		require.NoError(t, err)
		require.True(t, a == b, "typeof results should be the same sentinel instance")
		a.Release()
		b.Release()
	})
	t.Run("set rebinds in same scope", func(t *testing.T) {
		require.Equal(t, "5", evalRepr(t, "(set x 5)", "x"))
		require.Equal(t, "9", evalRepr(t, "(set x 5)", "(set x 9)", "x"))
	})
	t.Run("integer division truncates toward zero", func(t *testing.T) {
		require.Equal(t, "2", evalRepr(t, "(/ 7 3)"))
		require.Equal(t, "-2", evalRepr(t, "(/ -7 3)"))
	})
	t.Run("identities for no operands", func(t *testing.T) {
		require.Equal(t, "0", evalRepr(t, "(+)"))
		require.Equal(t, "1", evalRepr(t, "(*)"))
		require.Equal(t, "1", evalRepr(t, "(and)"))
		require.Equal(t, "nil", evalRepr(t, "(or)"))
	})
}

// TestBoundaryBehaviors covers spec.md §8's boundary behaviors.
func TestBoundaryBehaviors(t *testing.T) {
	t.Run("parse of empty list", func(t *testing.T) {
		require.Equal(t, "nil", evalRepr(t, "()"))
	})
	t.Run("quote sugar nests", func(t *testing.T) {
		// 'x parses to (quote x) and ''x to (quote (quote x)); evaluating
		// each strips one quote.
		require.Equal(t, "x", evalRepr(t, "'x"))
		require.Equal(t, "(quote x)", evalRepr(t, "''x"))
	})
	t.Run("division by zero is bad-argument", func(t *testing.T) {
		interp, err := NewInterpreter()
		require.NoError(t, err)
		defer interp.Close()
		_, err = interp.Eval("(/ 1 0)")
		require.Error(t, err)
		require.Equal(t, KindBadArgument, interp.LastErrorKind())
	})
	t.Run("lexeme overflow", func(t *testing.T) {
		interp, err := NewInterpreter()
		require.NoError(t, err)
		defer interp.Close()
		long := make([]byte, 200)
		for i := range long {
			long[i] = 'a'
		}
		_, err = interp.Eval(string(long))
		require.Error(t, err)
	})
	t.Run("strict less-than on stringified integer", func(t *testing.T) {
		require.Equal(t, "0", evalRepr(t, `(< 3 "3")`))
	})
	t.Run("asymmetric equality promotion", func(t *testing.T) {
		require.Equal(t, "1", evalRepr(t, `(== 3 "3")`))
		require.Equal(t, "1", evalRepr(t, `(== 3 3.0)`))
		require.Equal(t, "1", evalRepr(t, `(== 3.0 "3.0")`))
		require.Equal(t, "0", evalRepr(t, `(== 3 "3.0")`))
	})
}

func TestScopeChain(t *testing.T) {
	require.Equal(t, "30", evalRepr(t, "(set add (lambda (a b) (+ a b)))", "(add 10 20)"))
}

func TestApplyEvaluatesOperatorBeforeClassifying(t *testing.T) {
	t.Run("non-atomic expression evaluates to a callable Function", func(t *testing.T) {
		require.Equal(t, "5", evalRepr(t, "((lambda (x) x) 5)"))
	})
	t.Run("atomic operator evaluating to a non-callable Cell", func(t *testing.T) {
		interp, err := NewInterpreter()
		require.NoError(t, err)
		defer interp.Close()
		_, err = interp.Eval("(set x (list 1 2))")
		require.NoError(t, err)
		_, err = interp.Eval("(x 5)")
		require.Error(t, err)
		require.Equal(t, KindBadArgument, interp.LastErrorKind())
		require.Contains(t, interp.ErrorMessage(), "non-atomic operator")
	})
}

func TestErrorOnUnboundSymbol(t *testing.T) {
	interp, err := NewInterpreter()
	require.NoError(t, err)
	defer interp.Close()
	_, err = interp.Eval("undefined-symbol")
	require.Error(t, err)
	require.Equal(t, KindError, interp.LastErrorKind())
}
