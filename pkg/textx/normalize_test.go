package textx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"crlf", "a\r\nb\rc", "a\nb\nc"},
		{"spaces", "  John \t  Doe  Jr  ", "John Doe Jr"},
		{"blank runs", "a\n\n\n\nb\n\n", "a\n\nb"},
		{"leading blanks", "\n\n  \nheading", "heading"},
		{"zero width", "Go\u200bLang", "GoLang"},
		{"control chars", "x\x00y\x07z", "xyz"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	in := "  Experience \r\n\r\n\r\n• Built   things\t\tfast \n\n\nEducation"
	once := Normalize(in)
	assert.Equal(t, once, Normalize(once))
}

func TestSanitizeText_KeepsLayout(t *testing.T) {
	cases := map[string]string{
		"  Skills:\tGo\r\n":  "Skills:\tGo",
		"a\x00b\x1bc\x7fd":   "abcd",
		"line one\nline two": "line one\nline two",
	}
	for in, want := range cases {
		assert.Equal(t, want, SanitizeText(in))
	}
}
