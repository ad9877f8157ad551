package domain

import "strings"

// Settings holds a guild's ticket configuration.
type Settings struct {
	CategoryID   string
	LogChannelID string
}

// Configured reports whether tickets can be opened for this guild.
func (s Settings) Configured() bool {
	return s.CategoryID != ""
}

// channelPrefix marks ticket channels so /close can tell them apart
// from regular channels.
const channelPrefix = "ticket-"

// ChannelName derives the ticket channel name for a user. Discord
// channel names are lowercase with dashes instead of spaces.
func ChannelName(username string) string {
	name := strings.ToLower(username)
	name = strings.ReplaceAll(name, " ", "-")
	return channelPrefix + name
}

// IsTicketChannel reports whether the given channel name belongs to a
// ticket channel.
func IsTicketChannel(name string) bool {
	return strings.HasPrefix(name, channelPrefix)
}
