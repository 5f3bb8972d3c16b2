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

// Package errwriter wraps an io.Writer so that repeated writes after the
// first failure are free: once Err is set, Write is a no-op that returns
// it again, instead of a fresh (possibly misleading) error from the
// underlying writer.
package errwriter

import (
	"io"

	"github.com/pkg/errors"
)

// Writer tracks the first write error seen on an underlying io.Writer.
type Writer struct {
	w   io.Writer
	Err error
}

// New wraps w.
func New(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) Write(p []byte) (n int, err error) {
	if w.Err != nil {
		return 0, w.Err
	}
	n, err = w.w.Write(p)
	if err != nil {
		w.Err = errors.Wrap(err, "write failed")
	}
	return n, w.Err
}
