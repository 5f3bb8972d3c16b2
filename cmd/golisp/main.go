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

package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/db47h/golisp/lisp"
	"github.com/db47h/golisp/repl"
)

type stdinReader struct {
	r *bufio.Reader
}

func (s stdinReader) ReadLine() (string, bool) {
	line, err := s.r.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line, true
}

type stdPrinter struct{}

func (stdPrinter) Print(ch lisp.Channel, s string) {
	if ch == lisp.Stderr {
		fmt.Fprint(os.Stderr, s)
		return
	}
	fmt.Fprint(os.Stdout, s)
}

func atExit(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "%v\n", err)
	os.Exit(1)
}

func main() {
	var err error
	defer func() { atExit(err) }()

	srcFile := flag.String("src", "", "evaluate the contents of `filename` and exit, instead of starting a REPL")
	flag.Parse()

	stdin := bufio.NewReader(os.Stdin)
	interp, err := lisp.NewInterpreter(lisp.WithCallbacks(stdPrinter{}, stdinReader{r: stdin}))
	if err != nil {
		return
	}
	defer interp.Close()

	if *srcFile != "" {
		var data []byte
		data, err = os.ReadFile(*srcFile)
		if err != nil {
			return
		}
		var v *lisp.Value
		v, err = interp.Eval(string(data))
		if err != nil {
			return
		}
		fmt.Println(lisp.Repr(v))
		v.Release()
		return
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	err = repl.Run(interp, stdin, out)
}
