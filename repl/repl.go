// This file is part of golisp - https://github.com/db47h/golisp
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package repl provides a line-accumulation read-eval-print loop for
// lisp.Interpreter, playing the role lang/retro played for the Ngaro VM:
// a thin convenience layer the embeddable core does not itself need.
package repl

import (
	"bufio"
	"fmt"
	"io"

	"github.com/db47h/golisp/internal/errwriter"
	"github.com/db47h/golisp/lisp"
	"github.com/pkg/errors"
)

// Run reads forms from in, evaluates each with interp, and writes the repr
// of every result (or the message of every error) to out, until in is
// exhausted. It implements the accumulate-until-balanced loop spec.md §6
// describes for a host REPL: a line is fed to Eval only once parentheses
// are balanced and no string literal is left open, tracked here with the
// same per-byte state machine the lexer itself runs — reused only to know
// when a form is complete, not to tokenize (spec.md §9; SPEC_FULL.md §9
// records parenthesis balance as otherwise unchecked by parser.Parse).
func Run(interp *lisp.Interpreter, in io.Reader, rawOut io.Writer) error {
	out := errwriter.New(rawOut)
	scanner := bufio.NewScanner(in)
	var pending string
	depth := 0
	inString := false

	for scanner.Scan() {
		line := scanner.Text()
		if pending != "" {
			pending += "\n" + line
		} else {
			pending = line
		}
		depth += parenDelta(line, &inString)
		if depth > 0 || inString {
			continue
		}
		if depth < 0 {
			fmt.Fprintf(out, "error: unbalanced )\n")
			pending, depth = "", 0
			continue
		}
		form := pending
		pending = ""
		if form == "" {
			continue
		}
		v, err := interp.Eval(form)
		if err != nil {
			fmt.Fprintf(out, "error: %s\n", interp.ErrorMessage())
			continue
		}
		fmt.Fprintln(out, lisp.Repr(v))
		v.Release()
	}
	if out.Err != nil {
		return out.Err
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "repl: read failed")
	}
	if pending != "" {
		return errors.New("repl: unexpected end of input in incomplete form")
	}
	return nil
}

// parenDelta scans one line byte by byte, toggling inString the same way
// lexer.Lex does, and returns the net change in paren depth contributed by
// bytes outside of a string literal.
func parenDelta(line string, inString *bool) int {
	delta := 0
	for i := 0; i < len(line); i++ {
		c := line[i]
		if *inString {
			if c == '"' {
				*inString = false
			}
			continue
		}
		switch c {
		case '"':
			*inString = true
		case '(':
			delta++
		case ')':
			delta--
		}
	}
	return delta
}
