package domain

// ActionType identifies the side-effect requested by an Action.
type ActionType string

// Standard Action Types
const (
	// ActionReply answers the event that triggered the step.
	// Payload: Reply
	ActionReply ActionType = "REPLY"

	// ActionShowForm answers the event with a form.
	// Payload: Form
	ActionShowForm ActionType = "SHOW_FORM"

	// ActionAcknowledge answers the event silently.
	// Payload: nil
	ActionAcknowledge ActionType = "ACKNOWLEDGE"

	// ActionSendMessage posts a message to a channel.
	// Payload: Message
	ActionSendMessage ActionType = "SEND_MESSAGE"

	// ActionGrantRole adds a role to a member.
	// Payload: RoleChange
	ActionGrantRole ActionType = "GRANT_ROLE"

	// ActionRevokeRole removes a role from a member.
	// Payload: RoleChange
	ActionRevokeRole ActionType = "REVOKE_ROLE"
)

// Action represents a side-effect that the engine requests the host to perform.
type Action struct {
	Type    ActionType
	Payload any
}

// Reply is a response to the triggering event, optionally carrying choosers and buttons.
type Reply struct {
	Content string
	// Private replies are only visible to the actor.
	Private bool
	Menus   []Menu
	Buttons []Button
}

// Menu is a single-choice chooser. Token is the continuation attached to it.
type Menu struct {
	Token       string
	Placeholder string
	Options     []Option
}

// Option is one entry of a Menu.
type Option struct {
	Label       string
	Value       string
	Description string
}

// Button is a pressable element carrying a token.
type Button struct {
	Token string
	Label string
}

// FieldStyle selects the text entry shape of a form field.
type FieldStyle string

const (
	FieldShort     FieldStyle = "short"
	FieldParagraph FieldStyle = "paragraph"
)

// Form requests free-text input. Token is the continuation attached to it.
type Form struct {
	Token  string
	Title  string
	Fields []FormField
}

// FormField is one text input of a Form.
type FormField struct {
	ID        string
	Label     string
	Style     FieldStyle
	Required  bool
	Value     string
	MaxLength int
}

// Card is a rich-text block attached to a message.
type Card struct {
	Title       string
	Description string
}

// Message is posted to a channel, outside of any reply.
type Message struct {
	ChannelID string
	Content   string
	Card      *Card
	Buttons   []Button
	// MentionUsers lists user IDs allowed to be pinged by Content.
	MentionUsers []string
	// MentionEveryone allows the broadcast mention in Content to ping.
	MentionEveryone bool
}

// RoleChange targets one member role.
type RoleChange struct {
	GuildID string
	UserID  string
	RoleID  string
}

// NewReply builds a reply action.
func NewReply(r Reply) Action {
	return Action{Type: ActionReply, Payload: r}
}

// PrivateReply builds a private plain-text reply action.
func PrivateReply(content string) Action {
	return NewReply(Reply{Content: content, Private: true})
}
