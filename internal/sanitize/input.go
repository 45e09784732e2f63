// Package sanitize cleans free text typed by community members before it
// reaches a workflow.
package sanitize

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxInputSize bounds a single submitted value, in bytes. The platform caps
// form fields at 4000 characters; anything larger did not come from it.
const MaxInputSize = 16 * 1024

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// Input enforces the size limit, validates UTF-8 and strips control
// characters other than newline, tab and carriage return.
func Input(s string) (string, error) {
	if len(s) > MaxInputSize {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(s), MaxInputSize)
	}
	if !utf8.ValidString(s) {
		return "", ErrInvalidUTF8
	}
	if strings.IndexFunc(s, unsafeControl) < 0 {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !unsafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

// Fields sanitizes every value of a form submission in place.
func Fields(fields map[string]string) error {
	for id, v := range fields {
		clean, err := Input(v)
		if err != nil {
			return fmt.Errorf("field %q: %w", id, err)
		}
		fields[id] = clean
	}
	return nil
}

func unsafeControl(r rune) bool {
	return unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r'
}
