// This file is part of golisp - https://github.com/db47h/golisp

package repl_test

import (
	"strings"
	"testing"

	"github.com/db47h/golisp/lisp"
	"github.com/db47h/golisp/repl"
	"github.com/stretchr/testify/require"
)

func TestRunEvaluatesBalancedForms(t *testing.T) {
	interp, err := lisp.NewInterpreter()
	require.NoError(t, err)
	defer interp.Close()

	in := strings.NewReader("(+ 1 2)\n(* 3 4)\n")
	var out strings.Builder
	require.NoError(t, repl.Run(interp, in, &out))
	require.Equal(t, "3\n12\n", out.String())
}

func TestRunAccumulatesMultilineForms(t *testing.T) {
	interp, err := lisp.NewInterpreter()
	require.NoError(t, err)
	defer interp.Close()

	in := strings.NewReader("(+ 1\n   2)\n")
	var out strings.Builder
	require.NoError(t, repl.Run(interp, in, &out))
	require.Equal(t, "3\n", out.String())
}

func TestRunReportsEvalErrors(t *testing.T) {
	interp, err := lisp.NewInterpreter()
	require.NoError(t, err)
	defer interp.Close()

	in := strings.NewReader("(/ 1 0)\n")
	var out strings.Builder
	require.NoError(t, repl.Run(interp, in, &out))
	require.Contains(t, out.String(), "error:")
}

func TestRunReportsUnbalancedCloseParen(t *testing.T) {
	interp, err := lisp.NewInterpreter()
	require.NoError(t, err)
	defer interp.Close()

	in := strings.NewReader(")\n(+ 1 1)\n")
	var out strings.Builder
	require.NoError(t, repl.Run(interp, in, &out))
	require.Contains(t, out.String(), "unbalanced")
	require.Contains(t, out.String(), "2\n")
}
