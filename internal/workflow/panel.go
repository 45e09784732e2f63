package workflow

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/steward/internal/token"
	"github.com/aretw0/steward/pkg/domain"
)

// Button form field IDs. They match the mapstructure tags of domain.ButtonSpec.
const (
	fieldLabel      = "label"
	fieldAddRole    = "add_role"
	fieldRemoveRole = "remove_role"
	fieldResponse   = "response"
	fieldEphemeral  = "ephemeral"
)

func (e *Engine) showPanelForm(ctx context.Context, ev *domain.Event, _ domain.Config) ([]domain.Action, error) {
	ch, err := e.textChannel(ctx, ev.GuildID, selected(ev))
	if err != nil {
		return nil, err
	}
	tok, err := token.Encode(token.KindPanel, token.StepFillForm, ch.ID)
	if err != nil {
		return nil, domain.Reject(domain.ErrInvalidInput, "That channel can't be used.")
	}

	return []domain.Action{{
		Type: domain.ActionShowForm,
		Payload: domain.Form{
			Token: tok,
			Title: "Role button",
			Fields: []domain.FormField{
				{ID: fieldLabel, Label: "Button label", Style: domain.FieldShort, Required: true, MaxLength: 80},
				{ID: fieldAddRole, Label: "Role ID to grant", Style: domain.FieldShort, Required: true, MaxLength: 20},
				{ID: fieldRemoveRole, Label: "Role ID to remove (optional)", Style: domain.FieldShort, MaxLength: 20},
				{ID: fieldResponse, Label: "Reply after pressing (optional)", Style: domain.FieldParagraph, MaxLength: 2000},
				{ID: fieldEphemeral, Label: "Private reply? (yes/no)", Style: domain.FieldShort, Value: "yes", MaxLength: 3},
			},
		},
	}}, nil
}

func (e *Engine) savePanelButton(ctx context.Context, ev *domain.Event, cfg domain.Config, c token.Continuation) ([]domain.Action, error) {
	ch, err := e.textChannel(ctx, ev.GuildID, c.Param(0))
	if err != nil {
		return nil, err
	}

	spec, err := decodeButtonForm(ev.Fields)
	if err != nil {
		return nil, domain.Reject(domain.ErrInvalidInput, "Private reply must be yes or no.")
	}
	if spec.Label == "" || spec.AddRole == "" {
		return nil, domain.Reject(domain.ErrInvalidInput, "A button needs a label and a role to grant.")
	}

	for _, id := range []string{spec.AddRole, spec.RemoveRole} {
		if id == "" {
			continue
		}
		if _, err := e.dir.Role(ctx, ev.GuildID, id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.Reject(domain.ErrStaleReference, fmt.Sprintf("Role %s was not found in this server.", id))
			}
			return nil, fmt.Errorf("failed to resolve role: %w", err)
		}
	}

	if _, exists := cfg.FindButton(ch.ID, spec.AddRole); exists {
		return nil, domain.Reject(domain.ErrInvalidInput, "That channel already has a button for this role.")
	}

	tok, err := token.Encode(token.KindRoleButton, token.StepPress, ch.ID, spec.AddRole)
	if err != nil {
		return nil, domain.Reject(domain.ErrInvalidInput, "That role can't be used on a button.")
	}

	if err := e.store.AppendButton(ctx, ch.ID, spec); err != nil {
		return nil, fmt.Errorf("failed to save button: %w", err)
	}

	return []domain.Action{
		{
			Type: domain.ActionSendMessage,
			Payload: domain.Message{
				ChannelID: ch.ID,
				Buttons:   []domain.Button{{Token: tok, Label: spec.Label}},
			},
		},
		domain.PrivateReply(fmt.Sprintf("✅ Button %q published in #%s.", spec.Label, ch.Name)),
	}, nil
}

// pressRoleButton applies a published button. A press without a matching spec does nothing.
func (e *Engine) pressRoleButton(ctx context.Context, ev *domain.Event, channelID, roleID string) ([]domain.Action, error) {
	spec, ok, err := e.store.Button(ctx, channelID, roleID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up button: %w", err)
	}
	if !ok {
		e.logger.DebugContext(ctx, "no button spec", "event_id", ev.ID, "channel_id", channelID, "role_id", roleID)
		return nil, nil
	}

	member := ev.Actor.UserID
	actions := []domain.Action{{
		Type:    domain.ActionGrantRole,
		Payload: domain.RoleChange{GuildID: ev.GuildID, UserID: member, RoleID: spec.AddRole},
	}}
	if spec.RemoveRole != "" {
		actions = append(actions, domain.Action{
			Type:    domain.ActionRevokeRole,
			Payload: domain.RoleChange{GuildID: ev.GuildID, UserID: member, RoleID: spec.RemoveRole},
		})
	}
	if spec.Response != "" {
		actions = append(actions, domain.NewReply(domain.Reply{Content: spec.Response, Private: spec.Ephemeral}))
	} else {
		actions = append(actions, domain.Action{Type: domain.ActionAcknowledge})
	}
	return actions, nil
}

// decodeButtonForm maps trimmed form fields onto a ButtonSpec.
func decodeButtonForm(fields map[string]string) (domain.ButtonSpec, error) {
	var spec domain.ButtonSpec

	clean := make(map[string]string, len(fields))
	for k, v := range fields {
		clean[k] = strings.TrimSpace(v)
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.DecodeHookFuncKind(yesNoHook),
		Result:     &spec,
	})
	if err != nil {
		return spec, err
	}
	if err := dec.Decode(clean); err != nil {
		return domain.ButtonSpec{}, err
	}
	return spec, nil
}

func yesNoHook(from, to reflect.Kind, data interface{}) (interface{}, error) {
	if from != reflect.String || to != reflect.Bool {
		return data, nil
	}
	switch strings.ToLower(data.(string)) {
	case "", "n", "no", "false", "0":
		return false, nil
	case "y", "yes", "true", "1":
		return true, nil
	}
	return nil, fmt.Errorf("expected yes or no, got %q", data)
}
