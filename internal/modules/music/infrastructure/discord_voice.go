package infrastructure

import (
	"context"
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/harmonia-bot/harmonia/internal/modules/music/application/ports"
)

// DiscordVoiceGateway drives voice connections over the Discord gateway.
// It owns one connection handle per guild plus the stream pump feeding it.
type DiscordVoiceGateway struct {
	session    *discordgo.Session
	ffmpegPath string
	streamEnd  func(guildID snowflake.ID)

	mu    sync.Mutex
	conns map[snowflake.ID]*discordgo.VoiceConnection
	pumps map[snowflake.ID]*streamPump
}

// NewDiscordVoiceGateway creates a new DiscordVoiceGateway.
func NewDiscordVoiceGateway(session *discordgo.Session, ffmpegPath string) *DiscordVoiceGateway {
	return &DiscordVoiceGateway{
		session:    session,
		ffmpegPath: ffmpegPath,
		conns:      make(map[snowflake.ID]*discordgo.VoiceConnection),
		pumps:      make(map[snowflake.ID]*streamPump),
	}
}

// OnStreamEnd registers a callback invoked when a guild's stream finishes on
// its own rather than being stopped. Must be set before the gateway is used.
func (g *DiscordVoiceGateway) OnStreamEnd(fn func(guildID snowflake.ID)) {
	g.streamEnd = fn
}

// Join connects to the given voice channel and records the handle.
func (g *DiscordVoiceGateway) Join(
	ctx context.Context, guildID, channelID snowflake.ID,
) error {
	g.mu.Lock()
	if _, ok := g.conns[guildID]; ok {
		g.mu.Unlock()
		return ports.ErrAlreadyConnected
	}
	g.mu.Unlock()

	done := make(chan joinResult, 1)

	go func() {
		vc, err := g.session.ChannelVoiceJoin(
			guildID.String(), channelID.String(), false, true,
		)
		done <- joinResult{vc: vc, err: err}
	}()

	vc, err := awaitJoin(ctx, done, func(vc *discordgo.VoiceConnection) {
		slog.Warn("Voice join completed after deadline, disconnecting", "guild_id", guildID)
		if err := vc.Disconnect(); err != nil {
			slog.Warn("Failed to disconnect late voice join", "guild_id", guildID, "error", err)
		}
	})
	if err != nil {
		return err
	}

	g.mu.Lock()
	g.conns[guildID] = vc
	g.mu.Unlock()
	return nil
}

type joinResult struct {
	vc  *discordgo.VoiceConnection
	err error
}

// awaitJoin waits for the voice handshake or the context deadline, whichever
// comes first. A handshake that still completes after the deadline would leak
// a live connection, so it is drained and torn down via closeLate.
func awaitJoin(
	ctx context.Context,
	done <-chan joinResult,
	closeLate func(*discordgo.VoiceConnection),
) (*discordgo.VoiceConnection, error) {
	select {
	case res := <-done:
		return res.vc, res.err
	case <-ctx.Done():
		go func() {
			if res := <-done; res.err == nil && res.vc != nil {
				closeLate(res.vc)
			}
		}()
		return nil, ports.ErrJoinTimeout
	}
}

// Move rebinds the guild's existing connection to another channel.
func (g *DiscordVoiceGateway) Move(
	ctx context.Context, guildID, channelID snowflake.ID,
) error {
	vc, err := g.connection(guildID)
	if err != nil {
		return err
	}

	return vc.ChangeChannel(channelID.String(), false, true)
}

// Leave stops any active stream and tears down the guild's connection.
func (g *DiscordVoiceGateway) Leave(ctx context.Context, guildID snowflake.ID) error {
	g.stopPump(guildID)

	g.mu.Lock()
	vc, ok := g.conns[guildID]
	delete(g.conns, guildID)
	g.mu.Unlock()

	if !ok {
		return ports.ErrNoConnection
	}

	return vc.Disconnect()
}

// PlayStream starts pumping the audio at streamURL into the guild's
// connection. The caller must have stopped any previous stream first.
func (g *DiscordVoiceGateway) PlayStream(
	ctx context.Context, guildID snowflake.ID, streamURL string,
) error {
	vc, err := g.connection(guildID)
	if err != nil {
		return err
	}

	pump, err := startStreamPump(g.ffmpegPath, streamURL, vc)
	if err != nil {
		return err
	}

	g.mu.Lock()
	g.pumps[guildID] = pump
	g.mu.Unlock()

	go func() {
		pumpErr := pump.wait()
		if pumpErr != nil {
			slog.Warn(
				"Voice stream ended with error",
				"guild_id", guildID,
				"error", pumpErr,
			)
		}
		// A pump stopped through stopPump is already gone from the map;
		// only a stream that ran out on its own is still registered here.
		g.mu.Lock()
		ranOut := g.pumps[guildID] == pump
		if ranOut {
			delete(g.pumps, guildID)
		}
		g.mu.Unlock()

		if ranOut && g.streamEnd != nil {
			g.streamEnd(guildID)
		}
	}()

	return nil
}

// StreamActive reports whether a stream pump is currently registered for the
// guild.
func (g *DiscordVoiceGateway) StreamActive(guildID snowflake.ID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.pumps[guildID]
	return ok
}

// StopStream halts the guild's active stream, if any.
func (g *DiscordVoiceGateway) StopStream(ctx context.Context, guildID snowflake.ID) error {
	g.stopPump(guildID)
	return nil
}

// Invalidate drops the guild's handles without network teardown.
func (g *DiscordVoiceGateway) Invalidate(guildID snowflake.ID) {
	g.stopPump(guildID)

	g.mu.Lock()
	delete(g.conns, guildID)
	g.mu.Unlock()
}

func (g *DiscordVoiceGateway) connection(
	guildID snowflake.ID,
) (*discordgo.VoiceConnection, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	vc, ok := g.conns[guildID]
	if !ok {
		return nil, ports.ErrNoConnection
	}
	return vc, nil
}

func (g *DiscordVoiceGateway) stopPump(guildID snowflake.ID) {
	g.mu.Lock()
	pump, ok := g.pumps[guildID]
	delete(g.pumps, guildID)
	g.mu.Unlock()

	if ok {
		pump.stop()
	}
}

// Ensure DiscordVoiceGateway implements ports.VoiceGateway.
var _ ports.VoiceGateway = (*DiscordVoiceGateway)(nil)
