// This file is part of golisp - https://github.com/db47h/golisp

package lisp

import (
	"strconv"
	"strings"
)

// maxRepr bounds the printer's output the way asm.Disassemble bounds a
// single disassembled instruction — a hard ceiling, silently applied.
const maxRepr = 1024

// Repr renders v as the canonical textual representation described in
// spec §4.3, truncated (silently) to at most maxRepr bytes.
func Repr(v *Value) string {
	var b strings.Builder
	writeRepr(&b, v)
	s := b.String()
	if len(s) > maxRepr {
		return s[:maxRepr]
	}
	return s
}

func writeRepr(b *strings.Builder, v *Value) {
	if b.Len() > maxRepr {
		return
	}
	if v == nil {
		b.WriteString("nil")
		return
	}
	switch v.kind {
	case KInteger:
		b.WriteString(strconv.FormatInt(v.i, 10))
	case KReal:
		writeReal(b, v.f)
	case KString:
		b.WriteByte('"')
		b.WriteString(v.s)
		b.WriteByte('"')
	case KSymbol:
		b.WriteString(v.s)
	case KFunction:
		b.WriteString("<func>")
	case KBuiltin:
		b.WriteString("<builtin>")
	case KCell:
		writeCellRepr(b, v)
	}
}

// writeReal prints with six fractional digits, trailing zeros trimmed down
// to at least one digit after the decimal point (spec §4.3).
func writeReal(b *strings.Builder, f float64) {
	s := strconv.FormatFloat(f, 'f', 6, 64)
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		b.WriteString(s)
		return
	}
	end := len(s)
	for end > dot+2 && s[end-1] == '0' {
		end--
	}
	b.WriteString(s[:end])
}

func writeCellRepr(b *strings.Builder, v *Value) {
	b.WriteByte('(')
	first := true
	cur := v
	for {
		if b.Len() > maxRepr {
			return
		}
		if !first {
			b.WriteByte(' ')
		}
		first = false
		writeRepr(b, cur.car)
		switch {
		case cur.cdr == nil:
			b.WriteByte(')')
			return
		case cur.cdr.kind == KCell:
			cur = cur.cdr
		default:
			b.WriteString(" . ")
			writeRepr(b, cur.cdr)
			b.WriteByte(')')
			return
		}
	}
}

// typeName returns the static type-name string for v's variant ("nil" for
// empty). The typeof builtin takes its result from the shared sentinels
// instead, and comparisons render operands with Repr.
func typeName(v *Value) string {
	if v == nil {
		return "nil"
	}
	return valueKindNames[v.kind]
}
