package ports

import "github.com/disgoorg/snowflake/v2"

// VoiceStateProvider reports which voice channel a user currently
// occupies, from the gateway's cached state.
type VoiceStateProvider interface {
	// GetUserVoiceChannel returns the user's voice channel ID, or 0 if
	// the user is not in a voice channel.
	GetUserVoiceChannel(guildID, userID snowflake.ID) (snowflake.ID, error)
}
