package sanitize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "Plain", input: "Welcome!", want: "Welcome!"},
		{name: "Keeps Layout", input: "line one\n\tline two\r\n", want: "line one\n\tline two\r\n"},
		{name: "Strips Escape", input: "\x1b[31mred\x1b[0m", want: "[31mred[0m"},
		{name: "Strips Null And Bell", input: "a\x00b\x07c", want: "abc"},
		{name: "Keeps Emoji", input: "🎉 {user}", want: "🎉 {user}"},
		{name: "Invalid UTF8", input: "bad\xff", wantErr: ErrInvalidUTF8},
		{name: "Too Large", input: strings.Repeat("a", MaxInputSize+1), wantErr: ErrInputTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Input(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFields(t *testing.T) {
	fields := map[string]string{"label": "Get\x00 role", "response": "ok"}
	require.NoError(t, Fields(fields))
	assert.Equal(t, map[string]string{"label": "Get role", "response": "ok"}, fields)

	err := Fields(map[string]string{"content": "\xfe"})
	assert.ErrorIs(t, err, ErrInvalidUTF8)
	assert.Contains(t, err.Error(), `"content"`)
}
