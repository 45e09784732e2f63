package token_test

import (
	"strings"
	"testing"

	"github.com/aretw0/steward/internal/token"
	"github.com/aretw0/steward/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	tests := []token.Continuation{
		{Kind: token.KindConfig, Step: token.StepAdminRole},
		{Kind: token.KindConfig, Step: token.StepAutoRole},
		{Kind: token.KindConfig, Step: token.StepAnnouncementChannel},
		{Kind: token.KindWelcome, Step: token.StepPickChannel},
		{Kind: token.KindWelcome, Step: token.StepFillForm, Params: []string{"112233445566778899"}},
		{Kind: token.KindPanel, Step: token.StepFillForm, Params: []string{"112233445566778899"}},
		{Kind: token.KindAnnounce, Step: token.StepAwaitCommunity},
		{Kind: token.KindAnnounce, Step: token.StepAwaitChannel, Params: []string{"1"}},
		{Kind: token.KindAnnounce, Step: token.StepAwaitMention, Params: []string{"1", "2"}},
		{Kind: token.KindAnnounce, Step: token.StepAwaitContent, Params: []string{"12345678901234567890", "12345678901234567890", "1"}},
		{Kind: token.KindAnnounceDefault, Step: token.StepAwaitMention, Params: []string{"1"}},
		{Kind: token.KindAnnounceDefault, Step: token.StepAwaitContent, Params: []string{"1", "0"}},
		{Kind: token.KindRoleButton, Step: token.StepPress, Params: []string{"10", "20"}},
		// Empty params survive because arity disambiguates them.
		{Kind: token.KindAnnounce, Step: token.StepAwaitMention, Params: []string{"", ""}},
	}

	for _, want := range tests {
		tok, err := token.Encode(want.Kind, want.Step, want.Params...)
		require.NoError(t, err)

		got, err := token.Decode(tok)
		require.NoError(t, err, tok)
		assert.Equal(t, want, got, tok)
	}
}

func TestDecode_Rejects(t *testing.T) {
	tests := []struct {
		name string
		tok  string
	}{
		{"Empty", ""},
		{"No Step", "announce"},
		{"Unknown Kind", "raffle|1"},
		{"Unknown Step", "announce|9|1"},
		{"Non Numeric Step", "announce|x"},
		{"Padded Step", "announce|01"},
		{"Too Few Params", "announce|4|1|2"},
		{"Too Many Params", "announce|2|1|2"},
		{"Params On Chooser", "config|1|5"},
		{"Role Button Missing Role", "role|0|10"},
		{"Legacy Prefix", "welcome_modal_123"},
		{"Too Long", "role|0|1|" + strings.Repeat("9", 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := token.Decode(tt.tok)
			assert.ErrorIs(t, err, domain.ErrMalformedToken)
		})
	}
}

func TestEncode_Rejects(t *testing.T) {
	_, err := token.Encode(token.KindAnnounce, token.StepAwaitChannel)
	assert.Error(t, err, "missing param")

	_, err = token.Encode(token.KindAnnounce, token.StepAwaitChannel, "1|2")
	assert.Error(t, err, "separator in param")

	_, err = token.Encode("raffle", 1)
	assert.Error(t, err, "unregistered kind")

	_, err = token.Encode(token.KindRoleButton, token.StepPress, strings.Repeat("1", 60), strings.Repeat("2", 60))
	assert.Error(t, err, "too long")
}

func TestEveryMalformedArity(t *testing.T) {
	// For every registered step, one param more or less than its arity must be rejected.
	kinds := []token.Kind{token.KindConfig, token.KindWelcome, token.KindPanel, token.KindAnnounce, token.KindAnnounceDefault, token.KindRoleButton}
	for _, kind := range kinds {
		for step := token.Step(0); step <= 4; step++ {
			n, ok := token.Arity(kind, step)
			if !ok {
				continue
			}
			base := []string{string(kind), string(rune('0' + step))}

			more := append(append([]string{}, base...), make([]string, n+1)...)
			_, err := token.Decode(strings.Join(more, token.Separator))
			assert.ErrorIs(t, err, domain.ErrMalformedToken, "%s/%d with %d params", kind, step, n+1)

			if n > 0 {
				less := append(append([]string{}, base...), make([]string, n-1)...)
				_, err := token.Decode(strings.Join(less, token.Separator))
				assert.ErrorIs(t, err, domain.ErrMalformedToken, "%s/%d with %d params", kind, step, n-1)
			}
		}
	}
}

func TestContinuation_Param(t *testing.T) {
	c := token.Continuation{Kind: token.KindAnnounce, Step: token.StepAwaitMention, Params: []string{"g", "c"}}
	assert.Equal(t, "g", c.Param(0))
	assert.Equal(t, "c", c.Param(1))
	assert.Equal(t, "", c.Param(2))
}
