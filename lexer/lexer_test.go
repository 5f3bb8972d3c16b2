// This file is part of golisp - https://github.com/db47h/golisp

package lexer

import "testing"

func checkToks(t *testing.T, src string, want []Token) {
	t.Helper()
	got, err := Lex(src)
	if err != nil {
		t.Fatalf("Lex(%q): %v", src, err)
	}
	if len(got) != len(want) {
		t.Fatalf("Lex(%q): got %d tokens %+v, want %d %+v", src, len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Lex(%q): token %d: got %+v, want %+v", src, i, got[i], want[i])
		}
	}
}

func TestLexAtoms(t *testing.T) {
	checkToks(t, "42", []Token{{Kind: Integer, Text: "42", Int: 42}})
	checkToks(t, "-7", []Token{{Kind: Integer, Text: "-7", Int: -7}})
	checkToks(t, "0x2a", []Token{{Kind: Integer, Text: "0x2a", Int: 42}})
	checkToks(t, "3.5", []Token{{Kind: Real, Text: "3.5", Real: 3.5}})
	checkToks(t, "nil", []Token{{Kind: Nil, Text: "nil"}})
	checkToks(t, "foo-bar?", []Token{{Kind: Symbol, Text: "foo-bar?"}})
}

func TestLexString(t *testing.T) {
	checkToks(t, `"hello world"`, []Token{{Kind: String, Text: "hello world"}})
	checkToks(t, `""`, []Token{{Kind: String, Text: ""}})
}

func TestLexParensAndQuote(t *testing.T) {
	checkToks(t, "(a 'b)", []Token{
		{Kind: LParen},
		{Kind: Symbol, Text: "a"},
		{Kind: Quote},
		{Kind: Symbol, Text: "b"},
		{Kind: RParen},
	})
}

func TestLexWhitespaceSeparatesLexemes(t *testing.T) {
	checkToks(t, "1 2\t3\n4", []Token{
		{Kind: Integer, Text: "1", Int: 1},
		{Kind: Integer, Text: "2", Int: 2},
		{Kind: Integer, Text: "3", Int: 3},
		{Kind: Integer, Text: "4", Int: 4},
	})
}

func TestLexDotTokenizesAsSymbol(t *testing.T) {
	checkToks(t, "a . b", []Token{
		{Kind: Symbol, Text: "a"},
		{Kind: Symbol, Text: "."},
		{Kind: Symbol, Text: "b"},
	})
}

func TestLexOverflow(t *testing.T) {
	long := make([]byte, maxLexeme+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err := Lex(string(long))
	if err == nil {
		t.Fatalf("Lex: expected overflow error on a %d-byte lexeme", len(long))
	}
}

func TestLexUnterminatedString(t *testing.T) {
	toks, err := Lex(`"abc`)
	if err != nil {
		t.Fatalf("Lex: unexpected error: %v", err)
	}
	if len(toks) != 1 || toks[0].Kind != String || toks[0].Text != "abc" {
		t.Errorf("Lex: got %+v, want one String token with text %q", toks, "abc")
	}
}
