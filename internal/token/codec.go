// Package token packs workflow progress into the opaque identifier attached to a UI element.
//
// A token is "kind|step|param...". Tokens are unsigned: decoding only proves the
// structure matches a registered (kind, step) pair, never who produced it.
package token

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/steward/pkg/domain"
)

// Separator is reserved; it never appears in numeric platform IDs.
const Separator = "|"

// MaxLength is the platform's limit for a component identifier.
const MaxLength = 100

// Kind identifies a workflow.
type Kind string

const (
	KindConfig          Kind = "config"
	KindWelcome         Kind = "welcome"
	KindPanel           Kind = "panel"
	KindAnnounce        Kind = "announce"
	KindAnnounceDefault Kind = "announce-default"
	KindRoleButton      Kind = "role"
)

// Step identifies the prompt a token is attached to.
type Step int

// Config workflow choosers.
const (
	StepAdminRole           Step = 1
	StepAutoRole            Step = 2
	StepAnnouncementChannel Step = 3
)

// Two-step setup workflows (welcome, panel).
const (
	StepPickChannel Step = 1
	StepFillForm    Step = 2
)

// Announcement workflow.
const (
	StepAwaitCommunity Step = 1
	StepAwaitChannel   Step = 2
	StepAwaitMention   Step = 3
	StepAwaitContent   Step = 4
)

// StepPress is the only step of a role button.
const StepPress Step = 0

// arity registers the number of accumulated params for every valid (kind, step).
var arity = map[Kind]map[Step]int{
	KindConfig: {
		StepAdminRole:           0,
		StepAutoRole:            0,
		StepAnnouncementChannel: 0,
	},
	KindWelcome: {
		StepPickChannel: 0,
		StepFillForm:    1, // channel
	},
	KindPanel: {
		StepPickChannel: 0,
		StepFillForm:    1, // channel
	},
	KindAnnounce: {
		StepAwaitCommunity: 0,
		StepAwaitChannel:   1, // guild
		StepAwaitMention:   2, // guild, channel
		StepAwaitContent:   3, // guild, channel, flag
	},
	KindAnnounceDefault: {
		StepAwaitMention: 1, // guild
		StepAwaitContent: 2, // guild, flag
	},
	KindRoleButton: {
		StepPress: 2, // channel, role
	},
}

// Continuation is the decoded progress of a workflow.
type Continuation struct {
	Kind   Kind
	Step   Step
	Params []string
}

// Param returns the i-th accumulated param. Decode guarantees the arity, so
// out-of-range access is a programming error and returns "".
func (c Continuation) Param(i int) string {
	if i < 0 || i >= len(c.Params) {
		return ""
	}
	return c.Params[i]
}

// Arity returns the registered param count for (kind, step).
func Arity(kind Kind, step Step) (int, bool) {
	steps, ok := arity[kind]
	if !ok {
		return 0, false
	}
	n, ok := steps[step]
	return n, ok
}

// Encode packs a continuation into a token.
func Encode(kind Kind, step Step, params ...string) (string, error) {
	n, ok := Arity(kind, step)
	if !ok {
		return "", fmt.Errorf("unregistered step %s/%d", kind, step)
	}
	if len(params) != n {
		return "", fmt.Errorf("step %s/%d takes %d params, got %d", kind, step, n, len(params))
	}
	for _, p := range params {
		if strings.Contains(p, Separator) {
			return "", fmt.Errorf("param %q contains reserved separator", p)
		}
	}

	fields := make([]string, 0, len(params)+2)
	fields = append(fields, string(kind), strconv.Itoa(int(step)))
	fields = append(fields, params...)
	tok := strings.Join(fields, Separator)

	if len(tok) > MaxLength {
		return "", fmt.Errorf("token exceeds %d characters", MaxLength)
	}
	return tok, nil
}

// MustEncode is Encode for statically known, param-free tokens.
func MustEncode(kind Kind, step Step, params ...string) string {
	tok, err := Encode(kind, step, params...)
	if err != nil {
		panic(err)
	}
	return tok
}

// Decode unpacks a token. Any structural mismatch yields domain.ErrMalformedToken.
func Decode(tok string) (Continuation, error) {
	if tok == "" || len(tok) > MaxLength {
		return Continuation{}, fmt.Errorf("%w: bad length", domain.ErrMalformedToken)
	}

	fields := strings.Split(tok, Separator)
	if len(fields) < 2 {
		return Continuation{}, fmt.Errorf("%w: missing step", domain.ErrMalformedToken)
	}

	kind := Kind(fields[0])
	n, err := strconv.Atoi(fields[1])
	if err != nil || strconv.Itoa(n) != fields[1] {
		return Continuation{}, fmt.Errorf("%w: bad step %q", domain.ErrMalformedToken, fields[1])
	}
	step := Step(n)

	want, ok := Arity(kind, step)
	if !ok {
		return Continuation{}, fmt.Errorf("%w: unknown step %s/%d", domain.ErrMalformedToken, kind, step)
	}

	var params []string
	if len(fields) > 2 {
		params = fields[2:]
	}
	if len(params) != want {
		return Continuation{}, fmt.Errorf("%w: %s/%d expects %d params, got %d", domain.ErrMalformedToken, kind, step, want, len(params))
	}

	return Continuation{Kind: kind, Step: step, Params: params}, nil
}
