package music

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/caarlos0/env/v11"
	"github.com/disgoorg/snowflake/v2"
	"github.com/harmonia-bot/harmonia/internal/bot"
	"github.com/harmonia-bot/harmonia/internal/modules/music/application/ports"
	"github.com/harmonia-bot/harmonia/internal/modules/music/application/usecases"
	"github.com/harmonia-bot/harmonia/internal/modules/music/infrastructure"
	"github.com/harmonia-bot/harmonia/internal/modules/music/presentation"
)

func init() {
	bot.Register(&MusicModule{})
}

// Compile-time interface checks.
var _ bot.ConfigurableModule = (*MusicModule)(nil)

// MusicModule provides music request and playback commands.
type MusicModule struct {
	config        *Config
	gateway       *infrastructure.DiscordVoiceGateway
	repo          *infrastructure.MemoryRepository
	playback      *usecases.PlaybackService
	handlers      *presentation.Handlers
	eventHandlers *presentation.EventHandlers
}

// Name returns the module name.
func (m *MusicModule) Name() string {
	return "music"
}

// Commands returns the slash commands for this module.
func (m *MusicModule) Commands() []*discordgo.ApplicationCommand {
	return presentation.Commands()
}

// CommandHandlers returns the command handlers for this module.
func (m *MusicModule) CommandHandlers() map[string]bot.InteractionHandler {
	return map[string]bot.InteractionHandler{
		"play":    m.handlers.HandlePlay,
		"stop":    m.handlers.HandleStop,
		"suggest": m.handlers.HandleSuggest,
	}
}

// EventHandlers returns the event handlers for this module.
func (m *MusicModule) EventHandlers() []bot.EventHandler {
	return []bot.EventHandler{
		func(s *discordgo.Session, event *discordgo.VoiceStateUpdate) {
			if m.eventHandlers != nil {
				m.eventHandlers.HandleVoiceStateUpdate(s, event)
			}
		},
	}
}

// LoadConfig loads module-specific configuration from environment variables.
func (m *MusicModule) LoadConfig() error {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return err
	}
	m.config = cfg
	return nil
}

// Init initializes the module.
func (m *MusicModule) Init(deps bot.ModuleDependencies) error {
	var metadata ports.MetadataSearcher
	var videos usecases.VideoSearcher

	if m.config.HasSpotifyCredentials() {
		searcher, err := infrastructure.NewSpotifyMetadataSearcher(
			context.Background(),
			m.config.SpotifyClientID,
			m.config.SpotifyClientSecret,
		)
		if err != nil {
			return err
		}
		metadata = searcher
		videos = infrastructure.NewYouTubeVideoSearcher()
	} else {
		slog.Warn("Spotify credentials not set, metadata lookup disabled")
	}

	m.repo = infrastructure.NewMemoryRepository()
	m.gateway = infrastructure.NewDiscordVoiceGateway(deps.Session, m.config.FfmpegPath)
	voiceState := infrastructure.NewVoiceStateProvider(deps.Session)

	trackResolver := usecases.NewTrackResolverService(metadata)
	audioResolver := usecases.NewAudioSourceResolverService(infrastructure.NewYtdlpExtractor())
	m.playback = usecases.NewPlaybackService(
		m.repo,
		m.gateway,
		voiceState,
		trackResolver,
		audioResolver,
		m.config.VoiceConnectTimeout,
		m.config.ResolveTimeout,
	)
	m.gateway.OnStreamEnd(m.playback.HandleStreamEnd)
	suggest := usecases.NewSuggestService(metadata, videos)

	botID, err := snowflake.Parse(deps.Session.State.User.ID)
	if err != nil {
		return err
	}

	m.handlers = presentation.NewHandlers(m.playback, suggest)
	m.eventHandlers = presentation.NewEventHandlers(botID, m.playback)

	slog.Info("music module initialized")

	return nil
}

// Shutdown disconnects every active voice session.
func (m *MusicModule) Shutdown() error {
	if m.playback == nil {
		return nil
	}

	ctx := context.Background()
	for _, guildID := range m.repo.GuildIDs() {
		if err := m.playback.Stop(ctx, usecases.StopInput{GuildID: guildID}); err != nil {
			slog.Warn("failed to stop playback on shutdown", "guild_id", guildID, "error", err)
		}
	}

	return nil
}
