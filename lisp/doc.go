// This file is part of golisp - https://github.com/db47h/golisp

// Package lisp implements the core of a small embeddable Lisp interpreter:
// a tagged-union object model with reference counting, a parent-linked
// scope chain, a canonical printer, a tree-walking evaluator and its
// built-in operator catalog, and the host embedding surface used to drive
// all of the above from a Go program.
//
// The package is designed to be embedded: a host allocates an Interpreter,
// optionally wires I/O callbacks and host functions into its root Scope,
// and then repeatedly calls Eval with source text. Results and errors are
// threaded through the return values of Eval; there is no global state.
//
// A single Interpreter must only be driven from one goroutine at a time.
// Independent Interpreters may run concurrently provided their configured
// Printer and LineReader are themselves safe for concurrent use.
package lisp
