package usecases

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/harmonia-bot/harmonia/internal/modules/music/application/ports"
	"github.com/harmonia-bot/harmonia/internal/modules/music/domain"
)

// PlayInput contains the input for the Play use case.
type PlayInput struct {
	GuildID  snowflake.ID
	UserID   snowflake.ID
	RawQuery string
}

// PlayOutput contains the result of a successful Play.
type PlayOutput struct {
	Title          string
	Uploader       string
	VoiceChannelID snowflake.ID
}

// StopInput contains the input for the Stop use case.
type StopInput struct {
	GuildID snowflake.ID
}

// PlaybackService orchestrates a playback request end to end:
// classification, metadata resolution, audio extraction, session
// transition and stream start. Steps are sequential and never retried;
// each failure maps to exactly one user-facing outcome.
type PlaybackService struct {
	repo           domain.SessionRepository
	gateway        ports.VoiceGateway
	voiceState     ports.VoiceStateProvider
	trackResolver  *TrackResolverService
	audioResolver  *AudioSourceResolverService
	connectTimeout time.Duration
	resolveTimeout time.Duration
}

// NewPlaybackService creates a new PlaybackService.
func NewPlaybackService(
	repo domain.SessionRepository,
	gateway ports.VoiceGateway,
	voiceState ports.VoiceStateProvider,
	trackResolver *TrackResolverService,
	audioResolver *AudioSourceResolverService,
	connectTimeout time.Duration,
	resolveTimeout time.Duration,
) *PlaybackService {
	return &PlaybackService{
		repo:           repo,
		gateway:        gateway,
		voiceState:     voiceState,
		trackResolver:  trackResolver,
		audioResolver:  audioResolver,
		connectTimeout: connectTimeout,
		resolveTimeout: resolveTimeout,
	}
}

// Play handles a /play request for a guild member.
func (p *PlaybackService) Play(ctx context.Context, input PlayInput) (*PlayOutput, error) {
	// 1. The requester must already be in a voice channel. Checked before
	// any session is created or mutated.
	targetChannel, err := p.voiceState.GetUserVoiceChannel(input.GuildID, input.UserID)
	if err != nil {
		return nil, ErrTransportDisconnected
	}
	if targetChannel == 0 {
		return nil, ErrUserNotInVoice
	}

	// 2. Join (or move to) the requester's channel. The session lock
	// serializes this with any other command on the same guild.
	session := p.repo.GetOrCreate(input.GuildID)
	session.Lock()
	err = p.ensureJoined(ctx, session, targetChannel)
	epoch := session.Epoch()
	session.Unlock()
	if err != nil {
		return nil, err
	}

	// 3-5. Resolve the request to a playable stream. The lock is not held
	// across this slow path; the epoch taken above detects a /stop that
	// lands in the meantime.
	audio, err := p.resolve(ctx, input.RawQuery)
	if err != nil {
		return nil, err
	}

	// 6. Commit playback, preempting any prior stream.
	session.Lock()
	defer session.Unlock()

	if session.Epoch() != epoch || !session.IsConnected() {
		return nil, ErrTransportDisconnected
	}

	if session.IsPlaying() {
		if err := p.gateway.StopStream(ctx, input.GuildID); err != nil {
			slog.Warn("failed to stop prior stream", "guild_id", input.GuildID, "error", err)
		}
		session.HaltStream()
	}

	if err := p.gateway.PlayStream(ctx, input.GuildID, audio.StreamURL); err != nil {
		slog.Error("failed to start stream", "guild_id", input.GuildID, "error", err)
		return nil, ErrTransportDisconnected
	}

	if err := session.StartStream(); err != nil {
		return nil, ErrNotConnected
	}

	return &PlayOutput{
		Title:          audio.Title,
		Uploader:       audio.Uploader,
		VoiceChannelID: session.ChannelID(),
	}, nil
}

// ensureJoined binds the session to the target channel: a fresh connect
// when disconnected, an atomic move when connected elsewhere, a no-op
// when already there. Caller holds the session lock.
func (p *PlaybackService) ensureJoined(
	ctx context.Context,
	session *domain.VoiceSession,
	targetChannel snowflake.ID,
) error {
	if session.IsConnected() {
		if session.ChannelID() == targetChannel {
			return nil
		}

		if err := p.gateway.Move(ctx, session.GuildID(), targetChannel); err != nil {
			slog.Warn("voice move failed", "guild_id", session.GuildID(), "error", err)
			return ErrTransportDisconnected
		}
		return session.Rebind(targetChannel)
	}

	if err := session.BeginConnect(); err != nil {
		return ErrTransportDisconnected
	}

	joinCtx, cancel := context.WithTimeout(ctx, p.connectTimeout)
	defer cancel()

	if err := p.gateway.Join(joinCtx, session.GuildID(), targetChannel); err != nil {
		session.FailConnect()
		switch {
		case errors.Is(err, ports.ErrJoinTimeout), errors.Is(err, context.DeadlineExceeded):
			return ErrVoiceConnectTimeout
		case errors.Is(err, ports.ErrAlreadyConnected):
			return ErrAlreadyConnectedElsewhere
		default:
			slog.Warn("voice join failed", "guild_id", session.GuildID(), "error", err)
			return ErrTransportDisconnected
		}
	}

	return session.CompleteConnect(targetChannel)
}

// resolve runs classification, conditional metadata lookup and audio
// extraction under a bounded timeout.
func (p *PlaybackService) resolve(
	ctx context.Context,
	rawQuery string,
) (domain.ResolvedAudio, error) {
	resolveCtx, cancel := context.WithTimeout(ctx, p.resolveTimeout)
	defer cancel()

	classified := domain.Classify(rawQuery)

	// Direct video references skip metadata resolution entirely.
	if classified.Kind == domain.KindYouTubeURL {
		return p.audioResolver.Resolve(resolveCtx, classified.VideoID, true)
	}

	metadata, err := p.trackResolver.Resolve(resolveCtx, classified)
	if err != nil {
		return domain.ResolvedAudio{}, err
	}

	return p.audioResolver.Resolve(resolveCtx, metadata.SearchTerms, false)
}

// Stop halts any active stream and always tears the voice connection
// down, not just the stream.
func (p *PlaybackService) Stop(ctx context.Context, input StopInput) error {
	session := p.repo.Get(input.GuildID)
	if session == nil {
		return ErrNotConnected
	}

	session.Lock()
	defer session.Unlock()

	if !session.IsConnected() {
		return ErrNotConnected
	}

	if session.IsPlaying() {
		if err := p.gateway.StopStream(ctx, input.GuildID); err != nil {
			slog.Warn("failed to stop stream", "guild_id", input.GuildID, "error", err)
		}
		session.HaltStream()
	}

	if err := session.BeginDisconnect(); err != nil {
		return ErrNotConnected
	}
	if err := p.gateway.Leave(ctx, input.GuildID); err != nil {
		slog.Warn("voice leave failed", "guild_id", input.GuildID, "error", err)
	}
	session.CompleteDisconnect()

	p.repo.Delete(input.GuildID)

	return nil
}

// HandleStreamEnd moves the session back to idle after a stream ran out
// on its own. Checked against the gateway under the session lock: if a
// newer stream already committed in the meantime, the session is left
// alone.
func (p *PlaybackService) HandleStreamEnd(guildID snowflake.ID) {
	session := p.repo.Get(guildID)
	if session == nil {
		return
	}

	session.Lock()
	defer session.Unlock()

	if session.IsPlaying() && !p.gateway.StreamActive(guildID) {
		session.HaltStream()
		slog.Debug("stream finished, session idle", "guild_id", guildID)
	}
}

// HandleExternalDisconnect resets the session when the transport went
// away without a /stop, e.g. the bot was kicked or the channel deleted.
// Any in-flight stream handle is invalidated.
func (p *PlaybackService) HandleExternalDisconnect(guildID snowflake.ID) {
	session := p.repo.Get(guildID)
	if session == nil {
		return
	}

	session.Lock()
	session.ForceDisconnect()
	session.Unlock()

	p.gateway.Invalidate(guildID)
	p.repo.Delete(guildID)

	slog.Info("voice session reset after external disconnect", "guild_id", guildID)
}
