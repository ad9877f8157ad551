package ports

import (
	"context"
	"errors"

	"github.com/disgoorg/snowflake/v2"
)

// Gateway-level failures surfaced by VoiceGateway implementations.
var (
	// ErrJoinTimeout is returned when the voice handshake does not
	// complete within the configured window.
	ErrJoinTimeout = errors.New("timed out connecting to voice channel")

	// ErrAlreadyConnected is returned when the transport refuses a
	// connection because one already exists elsewhere.
	ErrAlreadyConnected = errors.New("already connected to another voice channel")

	// ErrNoConnection is returned when an operation requires a live
	// voice connection for the guild and none exists.
	ErrNoConnection = errors.New("no voice connection for guild")
)

// VoiceGateway is the transport boundary to the real-time voice system.
// Implementations own the underlying connection handles, keyed by guild;
// callers drive them exclusively through the per-guild VoiceSession.
type VoiceGateway interface {
	// Join connects to the given voice channel.
	Join(ctx context.Context, guildID, channelID snowflake.ID) error

	// Move rebinds an existing connection to another channel without
	// disconnecting.
	Move(ctx context.Context, guildID, channelID snowflake.ID) error

	// Leave tears down the guild's voice connection.
	Leave(ctx context.Context, guildID snowflake.ID) error

	// PlayStream starts streaming the given audio URL on the guild's
	// connection. Any previously playing stream must already be stopped.
	PlayStream(ctx context.Context, guildID snowflake.ID, streamURL string) error

	// StopStream halts the guild's active stream, if any.
	StopStream(ctx context.Context, guildID snowflake.ID) error

	// StreamActive reports whether the guild currently has a live stream.
	StreamActive(guildID snowflake.ID) bool

	// Invalidate drops the guild's connection handle without network
	// teardown, used when the transport already died externally.
	Invalidate(guildID snowflake.ID)
}
