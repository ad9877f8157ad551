package domain

import "github.com/disgoorg/snowflake/v2"

// SessionRepository owns the map from guild ID to its VoiceSession.
// No other component may hold or mutate a session's transport handle.
type SessionRepository interface {
	// Get returns the guild's session, or nil if none exists.
	Get(guildID snowflake.ID) *VoiceSession

	// GetOrCreate returns the guild's session, lazily creating a
	// disconnected one on first use.
	GetOrCreate(guildID snowflake.ID) *VoiceSession

	// Delete removes the guild's session.
	Delete(guildID snowflake.ID)
}
