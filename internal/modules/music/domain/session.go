package domain

import (
	"errors"
	"sync"

	"github.com/disgoorg/snowflake/v2"
)

// ErrInvalidTransition is returned when a session operation is attempted
// from a state that does not permit it.
var ErrInvalidTransition = errors.New("invalid voice session transition")

// SessionState is the lifecycle state of a guild's voice session.
type SessionState int

const (
	StateDisconnected SessionState = iota
	StateConnecting
	StateConnectedIdle
	StateConnectedPlaying
	StateDisconnecting
)

// String returns a human-readable name for the state.
func (s SessionState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnectedIdle:
		return "connected_idle"
	case StateConnectedPlaying:
		return "connected_playing"
	case StateDisconnecting:
		return "disconnecting"
	default:
		return "disconnected"
	}
}

// VoiceSession is the per-guild state machine owning the live voice
// connection and its current stream. A guild has at most one session,
// and a session has at most one active stream.
//
// All mutating methods and accessors assume the caller holds the session
// lock; commands touching the same guild serialize on it so two in-flight
// plays can never both observe an idle session.
type VoiceSession struct {
	mu      sync.Mutex
	guildID snowflake.ID

	state     SessionState
	channelID snowflake.ID
	epoch     uint64
}

// NewVoiceSession creates a disconnected session for the guild.
func NewVoiceSession(guildID snowflake.ID) *VoiceSession {
	return &VoiceSession{
		guildID: guildID,
		state:   StateDisconnected,
	}
}

// Lock acquires the session's mutual-exclusion scope.
func (s *VoiceSession) Lock() { s.mu.Lock() }

// Unlock releases the session's mutual-exclusion scope.
func (s *VoiceSession) Unlock() { s.mu.Unlock() }

// GuildID returns the owning guild's ID.
func (s *VoiceSession) GuildID() snowflake.ID { return s.guildID }

// State returns the current lifecycle state.
func (s *VoiceSession) State() SessionState { return s.state }

// ChannelID returns the bound voice channel, or 0 when not connected.
func (s *VoiceSession) ChannelID() snowflake.ID { return s.channelID }

// Epoch returns the session epoch. The epoch is bumped by every
// disconnect, so a caller that released the lock across slow resolution
// work can detect an interleaved /stop before committing playback.
func (s *VoiceSession) Epoch() uint64 { return s.epoch }

// IsConnected reports whether the session is bound to a voice channel.
func (s *VoiceSession) IsConnected() bool {
	return s.state == StateConnectedIdle || s.state == StateConnectedPlaying
}

// IsPlaying reports whether a stream is currently active.
func (s *VoiceSession) IsPlaying() bool {
	return s.state == StateConnectedPlaying
}

// BeginConnect moves Disconnected -> Connecting.
func (s *VoiceSession) BeginConnect() error {
	if s.state != StateDisconnected {
		return ErrInvalidTransition
	}
	s.state = StateConnecting
	return nil
}

// CompleteConnect moves Connecting -> ConnectedIdle, binding the channel.
func (s *VoiceSession) CompleteConnect(channelID snowflake.ID) error {
	if s.state != StateConnecting {
		return ErrInvalidTransition
	}
	s.state = StateConnectedIdle
	s.channelID = channelID
	return nil
}

// FailConnect returns a failed connection attempt to Disconnected.
func (s *VoiceSession) FailConnect() {
	s.state = StateDisconnected
	s.channelID = 0
}

// Rebind atomically moves a connected session to another channel. There
// is no intermediate Disconnected state and the playing/idle distinction
// is preserved.
func (s *VoiceSession) Rebind(channelID snowflake.ID) error {
	if !s.IsConnected() {
		return ErrInvalidTransition
	}
	s.channelID = channelID
	return nil
}

// StartStream marks a stream active. Requires a connected session; a
// prior stream must have been halted by the caller first, starting a new
// stream never overlaps two.
func (s *VoiceSession) StartStream() error {
	if !s.IsConnected() {
		return ErrInvalidTransition
	}
	s.state = StateConnectedPlaying
	return nil
}

// HaltStream marks the active stream stopped, returning to idle.
func (s *VoiceSession) HaltStream() {
	if s.state == StateConnectedPlaying {
		s.state = StateConnectedIdle
	}
}

// BeginDisconnect moves a connected session to Disconnecting and bumps
// the epoch so in-flight resolutions will not commit afterwards.
func (s *VoiceSession) BeginDisconnect() error {
	if !s.IsConnected() {
		return ErrInvalidTransition
	}
	s.state = StateDisconnecting
	s.epoch++
	return nil
}

// CompleteDisconnect finishes teardown, resetting to Disconnected.
func (s *VoiceSession) CompleteDisconnect() {
	s.state = StateDisconnected
	s.channelID = 0
}

// ForceDisconnect resets the session from any state, e.g. when the bot
// was kicked or the channel was deleted. The transport handle is
// invalidated by the caller; the epoch bump voids in-flight work.
func (s *VoiceSession) ForceDisconnect() {
	s.state = StateDisconnected
	s.channelID = 0
	s.epoch++
}
