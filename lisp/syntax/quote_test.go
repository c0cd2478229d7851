package syntax_test

import (
	"testing"

	"github.com/adamnemecek/lispkit/lisp/syntax"
)

func TestCharLiteral(t *testing.T) {
	for _, test := range []struct {
		r    rune
		want string
	}{
		{'\n', `#\newline`},
		{' ', `#\space`},
		{'a', `#\a`},
		{0x1b, `#\escape`},
		{0x01, `#\u1`},
	} {
		if got := syntax.CharLiteral(test.r); got != test.want {
			t.Errorf("CharLiteral(%q) = %q, want %q", test.r, got, test.want)
		}
	}
}

func TestEscapeRune(t *testing.T) {
	for _, test := range []struct {
		r    rune
		want string
	}{
		{'\n', `\n`},
		{'"', `\"`},
		{'a', `a`},
	} {
		if got := syntax.EscapeRune(test.r); got != test.want {
			t.Errorf("EscapeRune(%q) = %q, want %q", test.r, got, test.want)
		}
	}
}

func TestUnescapeNamesInvertsEscapeNames(t *testing.T) {
	for b, c := range syntax.EscapeNames {
		got, ok := syntax.UnescapeNames[c]
		if !ok {
			t.Fatalf("UnescapeNames has no entry for %q (from EscapeNames[%q])", c, b)
		}
		if got != b {
			t.Errorf("UnescapeNames[%q] = %q, want %q", c, got, b)
		}
	}
}
