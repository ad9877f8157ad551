package presentation

import (
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/harmonia-bot/harmonia/internal/modules/music/application/usecases"
)

// EventHandlers handles Discord gateway events for the music module.
type EventHandlers struct {
	botID    snowflake.ID
	playback *usecases.PlaybackService
}

// NewEventHandlers creates a new EventHandlers.
func NewEventHandlers(
	botID snowflake.ID,
	playback *usecases.PlaybackService,
) *EventHandlers {
	return &EventHandlers{
		botID:    botID,
		playback: playback,
	}
}

// HandleVoiceStateUpdate resets the guild's session when the bot is
// disconnected from voice by something other than /stop, such as a
// moderator kick or a gateway failure.
func (h *EventHandlers) HandleVoiceStateUpdate(
	_ *discordgo.Session,
	event *discordgo.VoiceStateUpdate,
) {
	// Only handle updates for the bot itself
	if event.UserID != h.botID.String() {
		return
	}

	// Still connected somewhere; nothing to reset
	if event.ChannelID != "" {
		return
	}

	guildID, err := snowflake.Parse(event.GuildID)
	if err != nil {
		slog.Error("failed to parse guild ID in voice state update", "error", err)
		return
	}

	h.playback.HandleExternalDisconnect(guildID)
}
