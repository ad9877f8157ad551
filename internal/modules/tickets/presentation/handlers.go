package presentation

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/harmonia-bot/harmonia/internal/bot"
	"github.com/harmonia-bot/harmonia/internal/modules/tickets/application"
	"github.com/harmonia-bot/harmonia/internal/modules/tickets/domain"
	"github.com/harmonia-bot/harmonia/internal/store"
)

// Component custom ids. Setup prompts append the correlation id.
const (
	customIDOpenTicket    = "tickets:open"
	customIDSetupCategory = "tickets:setup:category:"
	customIDSetupLogs     = "tickets:setup:logs:"
)

const (
	colorPanel = 0x3498DB
	colorLog   = 0x95A5A6
)

// Handlers holds the ticket command and component handlers.
type Handlers struct {
	settings *store.GuildStore[domain.Settings]
	flow     *application.SetupFlow
}

// NewHandlers creates new Handlers.
func NewHandlers(
	settings *store.GuildStore[domain.Settings],
	flow *application.SetupFlow,
) *Handlers {
	return &Handlers{
		settings: settings,
		flow:     flow,
	}
}

// HandleSetup starts the interactive ticket configuration flow. The
// interaction id doubles as the correlation id for the follow-up
// component selections.
func (h *Handlers) HandleSetup(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	if i.GuildID == "" {
		return respondEphemeral(r, "This command only works in a server.")
	}

	h.flow.Begin(i.ID, i.GuildID)

	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "Select the category new ticket channels should be created under.",
			Flags:   discordgo.MessageFlagsEphemeral,
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.SelectMenu{
							MenuType: discordgo.ChannelSelectMenu,
							CustomID: customIDSetupCategory + i.ID,
							ChannelTypes: []discordgo.ChannelType{
								discordgo.ChannelTypeGuildCategory,
							},
						},
					},
				},
			},
		},
	})
}

// HandleSetCategory handles the /setcategory command.
func (h *Handlers) HandleSetCategory(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondEphemeral(r, "This command only works in a server.")
	}

	var categoryID string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "category" {
			categoryID = opt.ChannelValue(s).ID
		}
	}

	h.settings.Update(guildID, func(cur domain.Settings) domain.Settings {
		cur.CategoryID = categoryID
		return cur
	})

	return respondEphemeral(r, "Ticket category set to <#"+categoryID+">.")
}

// HandleSetLogs handles the /setlogs command.
func (h *Handlers) HandleSetLogs(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondEphemeral(r, "This command only works in a server.")
	}

	var channelID string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "channel" {
			channelID = opt.ChannelValue(s).ID
		}
	}

	h.settings.Update(guildID, func(cur domain.Settings) domain.Settings {
		cur.LogChannelID = channelID
		return cur
	})

	return respondEphemeral(r, "Ticket log channel set to <#"+channelID+">.")
}

// HandleSendPanel handles the /sendpanel command.
func (h *Handlers) HandleSendPanel(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondEphemeral(r, "This command only works in a server.")
	}

	settings, _ := h.settings.Get(guildID)
	if !settings.Configured() {
		return respondEphemeral(r, "Set a ticket category first with /setup or /setcategory.")
	}

	_, err = s.ChannelMessageSendComplex(i.ChannelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       "Support",
				Description: "Need help? Press the button below to open a ticket.",
				Color:       colorPanel,
			},
		},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Open Ticket",
						Style:    discordgo.PrimaryButton,
						CustomID: customIDOpenTicket,
					},
				},
			},
		},
	})
	if err != nil {
		return respondEphemeral(r, "Couldn't send the panel in this channel.")
	}

	return respondEphemeral(r, "Ticket panel sent.")
}

// HandleClose handles the /close command inside a ticket channel.
func (h *Handlers) HandleClose(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondEphemeral(r, "This command only works in a server.")
	}

	channel, err := s.Channel(i.ChannelID)
	if err != nil {
		return respondEphemeral(r, "Couldn't look up this channel.")
	}
	if !domain.IsTicketChannel(channel.Name) {
		return respondEphemeral(r, "This isn't a ticket channel.")
	}

	if err := respondEphemeral(r, "Closing this ticket."); err != nil {
		return err
	}

	settings, _ := h.settings.Get(guildID)
	if settings.LogChannelID != "" {
		_, err := s.ChannelMessageSendEmbed(settings.LogChannelID, &discordgo.MessageEmbed{
			Description: fmt.Sprintf("Ticket **%s** closed by %s.",
				channel.Name, i.Member.User.Username),
			Color: colorLog,
		})
		if err != nil {
			slog.Warn("failed to log ticket closure",
				"guild_id", i.GuildID, "channel", channel.Name, "error", err)
		}
	}

	if _, err := s.ChannelDelete(i.ChannelID); err != nil {
		slog.Error("failed to delete ticket channel",
			"guild_id", i.GuildID, "channel_id", i.ChannelID, "error", err)
	}

	return nil
}

// HandleComponentInteraction routes select-menu and button interactions
// belonging to this module.
func (h *Handlers) HandleComponentInteraction(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	data := i.MessageComponentData()
	switch {
	case data.CustomID == customIDOpenTicket:
		h.openTicket(s, i)
	case strings.HasPrefix(data.CustomID, customIDSetupCategory):
		h.resolveSetupCategory(s, i, strings.TrimPrefix(data.CustomID, customIDSetupCategory))
	case strings.HasPrefix(data.CustomID, customIDSetupLogs):
		h.resolveSetupLogs(s, i, strings.TrimPrefix(data.CustomID, customIDSetupLogs))
	}
}

func (h *Handlers) resolveSetupCategory(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	correlationID string,
) {
	values := i.MessageComponentData().Values
	if len(values) == 0 {
		return
	}

	if !h.flow.ResolveCategory(correlationID, values[0]) {
		updateMessage(s, i, "This setup prompt expired. Run /setup again.", nil)
		return
	}

	updateMessage(s, i, "Now select the channel ticket activity should be logged to.",
		[]discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.SelectMenu{
						MenuType: discordgo.ChannelSelectMenu,
						CustomID: customIDSetupLogs + correlationID,
						ChannelTypes: []discordgo.ChannelType{
							discordgo.ChannelTypeGuildText,
						},
					},
				},
			},
		})
}

func (h *Handlers) resolveSetupLogs(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	correlationID string,
) {
	values := i.MessageComponentData().Values
	if len(values) == 0 {
		return
	}

	result, ok := h.flow.ResolveLogs(correlationID, values[0])
	if !ok {
		updateMessage(s, i, "This setup prompt expired. Run /setup again.", nil)
		return
	}

	guildID, err := snowflake.Parse(result.GuildID)
	if err != nil {
		slog.Error("failed to parse guild ID from setup flow", "error", err)
		return
	}

	h.settings.Set(guildID, domain.Settings{
		CategoryID:   result.CategoryID,
		LogChannelID: result.LogChannelID,
	})

	updateMessage(s, i, fmt.Sprintf(
		"Tickets configured: category <#%s>, logs <#%s>.",
		result.CategoryID, result.LogChannelID,
	), nil)
}

func (h *Handlers) openTicket(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return
	}

	settings, _ := h.settings.Get(guildID)
	if !settings.Configured() {
		respondComponentEphemeral(s, i, "Tickets aren't configured on this server yet.")
		return
	}

	channel, err := s.GuildChannelCreateComplex(i.GuildID, discordgo.GuildChannelCreateData{
		Name:     domain.ChannelName(i.Member.User.Username),
		Type:     discordgo.ChannelTypeGuildText,
		ParentID: settings.CategoryID,
		PermissionOverwrites: []*discordgo.PermissionOverwrite{
			{
				ID:   i.GuildID, // @everyone role shares the guild id
				Type: discordgo.PermissionOverwriteTypeRole,
				Deny: discordgo.PermissionViewChannel,
			},
			{
				ID:    i.Member.User.ID,
				Type:  discordgo.PermissionOverwriteTypeMember,
				Allow: discordgo.PermissionViewChannel | discordgo.PermissionSendMessages,
			},
		},
	})
	if err != nil {
		slog.Error("failed to create ticket channel",
			"guild_id", i.GuildID, "user_id", i.Member.User.ID, "error", err)
		respondComponentEphemeral(s, i, "Couldn't create a ticket channel. Tell an admin.")
		return
	}

	if settings.LogChannelID != "" {
		_, err := s.ChannelMessageSendEmbed(settings.LogChannelID, &discordgo.MessageEmbed{
			Description: fmt.Sprintf("Ticket <#%s> opened by %s.",
				channel.ID, i.Member.User.Username),
			Color: colorLog,
		})
		if err != nil {
			slog.Warn("failed to log ticket creation",
				"guild_id", i.GuildID, "error", err)
		}
	}

	respondComponentEphemeral(s, i, "Your ticket is ready: <#"+channel.ID+">")
}

func respondEphemeral(r bot.Responder, message string) error {
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func respondComponentEphemeral(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	message string,
) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		slog.Error("failed to respond to component interaction", "error", err)
	}
}

func updateMessage(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	content string,
	components []discordgo.MessageComponent,
) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Components: components,
		},
	})
	if err != nil {
		slog.Error("failed to update setup prompt", "error", err)
	}
}
