// Package syntax provides the escape and named-character-literal
// tables render.go uses to print strings and chars.
package syntax

import (
	"fmt"
	"strconv"
)

// EscapeNames maps a byte that write must escape to the letter that
// follows the backslash, including \e for ESC (0x1B); all other
// control bytes fall back to a \x<hex>; escape (see EscapeRune).
var EscapeNames = map[byte]byte{
	'\a': 'a',
	'\b': 'b',
	'\t': 't',
	'\n': 'n',
	'\v': 'v',
	'\f': 'f',
	'\r': 'r',
	0x1b: 'e',
	'"':  '"',
	'\\': '\\',
}

// UnescapeNames is EscapeNames inverted, for a reader's use.
var UnescapeNames = map[byte]byte{
	'a':  '\a',
	'b':  '\b',
	't':  '\t',
	'n':  '\n',
	'v':  '\v',
	'f':  '\f',
	'r':  '\r',
	'e':  0x1b,
	'"':  '"',
	'\\': '\\',
}

// CharNames maps the body of a #\name literal to its code point.
// Several names alias the same code point (e.g. "escape"/"altmode");
// NameForChar below picks one canonical spelling for output.
var CharNames = map[string]rune{
	"newline":   '\n',
	"linefeed":  '\n',
	"space":     ' ',
	"tab":       '\t',
	"nul":       0,
	"null":      0,
	"altmode":   0x1b,
	"escape":    0x1b,
	"backspace": '\b',
	"delete":    0x7f,
	"rubout":    0x7f,
	"page":      '\f',
	"return":    '\r',
	"alarm":     '\a',
}

// canonicalCharName is the preferred output spelling for a code point
// that has more than one name in CharNames.
var canonicalCharName = map[rune]string{
	'\n':  "newline",
	' ':   "space",
	'\t':  "tab",
	0:     "null",
	0x1b:  "escape",
	'\b':  "backspace",
	0x7f:  "delete",
	'\f':  "page",
	'\r':  "return",
	'\a':  "alarm",
}

// NameForChar returns the named literal spelling for r, if one exists.
func NameForChar(r rune) (string, bool) {
	name, ok := canonicalCharName[r]
	return name, ok
}

// EscapeRune returns the spelling render.go emits for r inside a
// written string. Printable runes outside the escape tables are
// returned unescaped.
func EscapeRune(r rune) string {
	if r >= 0 && r < 256 {
		if c, ok := EscapeNames[byte(r)]; ok {
			return "\\" + string(c)
		}
	}
	if r < 0x20 || r == 0x7f {
		return fmt.Sprintf("\\x%x;", r)
	}
	return string(r)
}

// CharLiteral returns the #\... literal spelling of r.
func CharLiteral(r rune) string {
	if name, ok := NameForChar(r); ok {
		return "#\\" + name
	}
	if r < 0x20 || r == 0x7f || r > 0x10ffff {
		return "#\\u" + strconv.FormatInt(int64(r), 16)
	}
	return "#\\" + string(r)
}
