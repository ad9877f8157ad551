package presentation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/harmonia-bot/harmonia/internal/bot"
	"github.com/harmonia-bot/harmonia/internal/modules/music/application/usecases"
	"github.com/harmonia-bot/harmonia/internal/modules/music/domain"
)

// Embed colors.
const (
	colorSuccess = 0x08c404
	colorError   = 0xE74C3C
)

// Handlers holds all the command handlers.
type Handlers struct {
	playback *usecases.PlaybackService
	suggest  *usecases.SuggestService
}

// NewHandlers creates new Handlers.
func NewHandlers(
	playback *usecases.PlaybackService,
	suggest *usecases.SuggestService,
) *Handlers {
	return &Handlers{
		playback: playback,
		suggest:  suggest,
	}
}

// HandlePlay handles the /play command.
func (h *Handlers) HandlePlay(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	// Acknowledge immediately: joining voice and resolving a stream can take
	// well past the ~3s window before Discord invalidates the interaction.
	if err := r.Defer(); err != nil {
		return fmt.Errorf("failed to send deferred response: %w", err)
	}

	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, "Invalid guild")
	}

	userID, err := snowflake.Parse(i.Member.User.ID)
	if err != nil {
		return respondError(r, "Invalid user")
	}

	var query string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "query" {
			query = opt.StringValue()
		}
	}

	output, err := h.playback.Play(context.Background(), usecases.PlayInput{
		GuildID:  guildID,
		UserID:   userID,
		RawQuery: query,
	})
	if err != nil {
		return respondError(r, playErrorMessage(err))
	}

	return respondNowPlaying(r, output)
}

// HandleStop handles the /stop command.
func (h *Handlers) HandleStop(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, "Invalid guild")
	}

	err = h.playback.Stop(context.Background(), usecases.StopInput{
		GuildID: guildID,
	})
	if err != nil {
		if errors.Is(err, usecases.ErrNotConnected) {
			return respondError(r, "I'm not in a voice channel right now.")
		}
		return respondError(r, "Something went wrong while disconnecting.")
	}

	return respondStopped(r)
}

// HandleSuggest handles the /suggest command.
func (h *Handlers) HandleSuggest(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	// Spotify search plus per-track YouTube enrichment is too slow for a
	// direct response.
	if err := r.Defer(); err != nil {
		return fmt.Errorf("failed to send deferred response: %w", err)
	}

	var query string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "song_name" {
			query = opt.StringValue()
		}
	}

	output, err := h.suggest.Suggest(context.Background(), usecases.SuggestInput{
		Query: query,
	})
	if err != nil {
		return respondError(r, suggestErrorMessage(err, query))
	}

	return respondSuggestions(r, query, output.Suggestions)
}

// playErrorMessage maps a playback failure to its user-facing message.
func playErrorMessage(err error) string {
	switch {
	case errors.Is(err, usecases.ErrUserNotInVoice):
		return "You need to be in a voice channel first."
	case errors.Is(err, usecases.ErrCredentialsMissing):
		return "Music lookup isn't configured on this bot."
	case errors.Is(err, usecases.ErrNoMatch),
		errors.Is(err, usecases.ErrMetadataLookup):
		return "I couldn't find that song. Try a different search."
	case errors.Is(err, usecases.ErrNoPlayableStream):
		return "I found the song but couldn't get a playable stream for it."
	case errors.Is(err, usecases.ErrVoiceConnectTimeout):
		return "I couldn't connect to your voice channel in time."
	case errors.Is(err, usecases.ErrAlreadyConnectedElsewhere):
		return "I'm already busy in another voice channel."
	case errors.Is(err, usecases.ErrTransportDisconnected):
		return "The voice connection dropped. Try /play again."
	default:
		return "Something went wrong while starting playback."
	}
}

// suggestErrorMessage maps a suggestion failure to its user-facing message.
func suggestErrorMessage(err error, query string) string {
	switch {
	case errors.Is(err, usecases.ErrCredentialsMissing):
		return "Song suggestions aren't configured on this bot."
	case errors.Is(err, usecases.ErrNoMatch):
		return fmt.Sprintf("No songs found for **%s**.", query)
	default:
		return "Something went wrong while searching for suggestions."
	}
}

// Response helpers.

func respondError(r bot.Responder, message string) error {
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				{
					Title:       "Error",
					Description: message,
					Color:       colorError,
				},
			},
		},
	})
}

func respondNowPlaying(r bot.Responder, output *usecases.PlayOutput) error {
	description := fmt.Sprintf("**%s**", output.Title)
	if output.Uploader != "" {
		description += fmt.Sprintf(" by %s", output.Uploader)
	}
	description += fmt.Sprintf(" in <#%d>.", output.VoiceChannelID)

	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				{
					Title:       "Now Playing",
					Description: description,
					Color:       colorSuccess,
				},
			},
		},
	})
}

func respondStopped(r bot.Responder) error {
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				{
					Description: "Stopped playback and left the voice channel.",
					Color:       colorSuccess,
				},
			},
		},
	})
}

func respondSuggestions(
	r bot.Responder, query string, suggestions []domain.Suggestion,
) error {
	var sb strings.Builder
	for i, s := range suggestions {
		line := fmt.Sprintf("%d\\. [%s](%s) - %s", i+1, s.Title, s.ExternalURL, s.Artist)
		if s.ExternalURL == "" {
			line = fmt.Sprintf("%d\\. **%s** - %s", i+1, s.Title, s.Artist)
		}
		sb.WriteString(line)
		if s.YouTubeURL != "" {
			fmt.Fprintf(&sb, " ([YouTube](%s))", s.YouTubeURL)
		}
		sb.WriteString("\n")
	}

	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				{
					Title:       fmt.Sprintf("Suggestions for \"%s\"", query),
					Description: sb.String(),
					Color:       colorSuccess,
				},
			},
		},
	})
}
