package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/aretw0/steward/pkg/domain"
)

// Platform limits.
const (
	maxButtonsPerRow = 5
	maxRows          = 5
)

const cardColor = 0x5865F2

func replyData(r domain.Reply) *discordgo.InteractionResponseData {
	data := &discordgo.InteractionResponseData{
		Content:    r.Content,
		Components: replyComponents(r),
		// Replies never ping; broadcasts go through SendMessage.
		AllowedMentions: &discordgo.MessageAllowedMentions{},
	}
	if r.Private {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return data
}

func replyComponents(r domain.Reply) []discordgo.MessageComponent {
	var rows []discordgo.MessageComponent
	for _, m := range r.Menus {
		rows = append(rows, menuRow(m))
	}
	rows = append(rows, buttonRows(r.Buttons)...)
	if len(rows) > maxRows {
		rows = rows[:maxRows]
	}
	return rows
}

func menuRow(m domain.Menu) discordgo.ActionsRow {
	opts := make([]discordgo.SelectMenuOption, 0, len(m.Options))
	for _, o := range m.Options {
		opts = append(opts, discordgo.SelectMenuOption{
			Label:       o.Label,
			Value:       o.Value,
			Description: o.Description,
		})
	}
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				MenuType:    discordgo.StringSelectMenu,
				CustomID:    m.Token,
				Placeholder: m.Placeholder,
				Options:     opts,
			},
		},
	}
}

func buttonRows(buttons []domain.Button) []discordgo.MessageComponent {
	var rows []discordgo.MessageComponent
	for start := 0; start < len(buttons); start += maxButtonsPerRow {
		end := min(start+maxButtonsPerRow, len(buttons))
		row := discordgo.ActionsRow{}
		for _, b := range buttons[start:end] {
			row.Components = append(row.Components, discordgo.Button{
				CustomID: b.Token,
				Label:    b.Label,
				Style:    discordgo.PrimaryButton,
			})
		}
		rows = append(rows, row)
	}
	return rows
}

func replyResponse(r domain.Reply) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: replyData(r),
	}
}

func formResponse(f domain.Form) *discordgo.InteractionResponse {
	rows := make([]discordgo.MessageComponent, 0, len(f.Fields))
	for _, field := range f.Fields {
		style := discordgo.TextInputShort
		if field.Style == domain.FieldParagraph {
			style = discordgo.TextInputParagraph
		}
		rows = append(rows, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:  field.ID,
					Label:     field.Label,
					Style:     style,
					Value:     field.Value,
					Required:  field.Required,
					MaxLength: field.MaxLength,
				},
			},
		})
	}
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   f.Token,
			Title:      f.Title,
			Components: rows,
		},
	}
}

// ackResponse answers an interaction without visible output.
func ackResponse(i *discordgo.Interaction) *discordgo.InteractionResponse {
	if i.Type == discordgo.InteractionApplicationCommand {
		return &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
		}
	}
	return &discordgo.InteractionResponse{Type: discordgo.InteractionResponseDeferredMessageUpdate}
}

// textReply answers a text command in its channel. Text replies can't be private.
func textReply(src *discordgo.Message, r domain.Reply) *discordgo.MessageSend {
	return &discordgo.MessageSend{
		Content:         r.Content,
		Components:      replyComponents(r),
		Reference:       src.Reference(),
		AllowedMentions: &discordgo.MessageAllowedMentions{},
	}
}

func messageSend(msg domain.Message) *discordgo.MessageSend {
	out := &discordgo.MessageSend{
		Content:    msg.Content,
		Components: buttonRows(msg.Buttons),
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Users: msg.MentionUsers,
		},
	}
	if msg.MentionEveryone {
		out.AllowedMentions.Parse = []discordgo.AllowedMentionType{discordgo.AllowedMentionTypeEveryone}
	}
	if msg.Card != nil {
		out.Embeds = []*discordgo.MessageEmbed{{
			Title:       msg.Card.Title,
			Description: msg.Card.Description,
			Color:       cardColor,
		}}
	}
	return out
}

func applicationCommands(cmds []domain.Command) []*discordgo.ApplicationCommand {
	out := make([]*discordgo.ApplicationCommand, 0, len(cmds))
	for _, c := range cmds {
		out = append(out, &discordgo.ApplicationCommand{
			Name:        c.Name,
			Description: c.Description,
		})
	}
	return out
}
