package domain

import (
	"context"
	"time"
)

// EventKind defines the category of an inbound platform event.
type EventKind string

const (
	EventCommand     EventKind = "command"      // Slash command
	EventTextCommand EventKind = "text_command" // Prefixed chat message (e.g. "!config")
	EventSelection   EventKind = "selection"    // Choice-menu selection
	EventFormSubmit  EventKind = "form_submit"  // Form (modal) submission
	EventButtonPress EventKind = "button_press" // Button press
	EventMemberJoin  EventKind = "member_join"  // New member in a guild
)

// Event is a single inbound platform event.
// Only the fields relevant to Kind are populated.
type Event struct {
	// ID correlates log lines for this event. Assigned by the dispatcher when empty.
	ID   string
	Kind EventKind

	Actor     Actor
	GuildID   string
	ChannelID string

	// Command is the command name for EventCommand and EventTextCommand.
	Command string

	// CustomID is the identifier attached to the UI element that produced
	// a selection, a form submission or a button press.
	CustomID string

	// Values holds the chosen options of a selection.
	Values []string

	// Fields holds form submission values keyed by field ID.
	Fields map[string]string

	// Source is the raw platform payload, opaque to the core. Adapters use it to reply.
	Source any
}

// Value returns the first selected value, if any.
func (e *Event) Value() string {
	if len(e.Values) == 0 {
		return ""
	}
	return e.Values[0]
}

// Command describes a command to register with the platform at startup.
type Command struct {
	Name        string
	Description string
}

// StepEvent reports that a workflow step was entered.
type StepEvent struct {
	Timestamp time.Time `json:"timestamp"`
	EventID   string    `json:"event_id"`
	Workflow  string    `json:"workflow"`
	Step      string    `json:"step"`
	GuildID   string    `json:"guild_id,omitempty"`
	UserID    string    `json:"user_id,omitempty"`
}

// RejectEvent reports that a workflow was rejected and discarded.
type RejectEvent struct {
	Timestamp time.Time `json:"timestamp"`
	EventID   string    `json:"event_id"`
	Workflow  string    `json:"workflow"`
	Reason    string    `json:"reason"`
}

// EffectEvent reports the outcome of one outbound action.
type EffectEvent struct {
	Timestamp time.Time  `json:"timestamp"`
	EventID   string     `json:"event_id"`
	Action    ActionType `json:"action"`
	Err       error      `json:"-"`
}

// LifecycleHooks defines callbacks for observability.
type LifecycleHooks struct {
	OnEvent  func(context.Context, *Event)
	OnStep   func(context.Context, *StepEvent)
	OnReject func(context.Context, *RejectEvent)
	OnEffect func(context.Context, *EffectEvent)
}
