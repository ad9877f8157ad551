package presentation

import (
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/harmonia-bot/harmonia/internal/bot"
	"github.com/harmonia-bot/harmonia/internal/modules/welcome/domain"
	"github.com/harmonia-bot/harmonia/internal/store"
)

const colorGreen = 0x2ECC71

// Handlers holds the welcome command and event handlers.
type Handlers struct {
	settings *store.GuildStore[domain.Settings]
}

// NewHandlers creates new Handlers backed by the given settings store.
func NewHandlers(settings *store.GuildStore[domain.Settings]) *Handlers {
	return &Handlers{
		settings: settings,
	}
}

// HandleSetWelcome handles the /setwelcome command.
func (h *Handlers) HandleSetWelcome(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondEphemeral(r, "This command only works in a server.")
	}

	var channelID, message string
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "channel":
			channelID = opt.ChannelValue(s).ID
		case "message":
			message = opt.StringValue()
		}
	}

	h.settings.Set(guildID, domain.Settings{
		ChannelID: channelID,
		Template:  message,
	})

	return respondEphemeral(r, "Welcome channel set to <#"+channelID+"> and message saved.")
}

// HandleMemberAdd sends the configured welcome message when a member joins.
func (h *Handlers) HandleMemberAdd(
	s *discordgo.Session,
	event *discordgo.GuildMemberAdd,
) {
	guildID, err := snowflake.Parse(event.GuildID)
	if err != nil {
		return
	}

	settings, ok := h.settings.Get(guildID)
	if !ok || settings.ChannelID == "" || settings.Template == "" {
		return
	}

	guild, err := s.State.Guild(event.GuildID)
	if err != nil {
		slog.Warn("failed to look up guild for welcome message",
			"guild_id", event.GuildID, "error", err)
		return
	}

	msg := domain.Render(
		settings.Template,
		event.Member.Mention(),
		guild.MemberCount,
		guild.Name,
	)

	// Guilds with an icon get an embed with it as the thumbnail;
	// the rest get a plain message.
	if guild.Icon != "" {
		_, err = s.ChannelMessageSendEmbed(settings.ChannelID, &discordgo.MessageEmbed{
			Description: msg,
			Color:       colorGreen,
			Thumbnail: &discordgo.MessageEmbedThumbnail{
				URL: guild.IconURL(""),
			},
		})
	} else {
		_, err = s.ChannelMessageSend(settings.ChannelID, msg)
	}
	if err != nil {
		slog.Warn("failed to send welcome message",
			"guild_id", event.GuildID, "channel_id", settings.ChannelID, "error", err)
	}
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
