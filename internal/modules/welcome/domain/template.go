package domain

import (
	"strconv"
	"strings"
)

// Settings holds a guild's welcome configuration.
type Settings struct {
	ChannelID string
	Template  string
}

// Placeholders recognized in welcome templates.
const (
	PlaceholderMember     = "{member}"
	PlaceholderCount      = "{count}"
	PlaceholderServerName = "{servername}"
)

// Render substitutes the template placeholders with the joining member's
// mention, the guild's member count and the guild name.
func Render(template, memberMention string, memberCount int, guildName string) string {
	msg := strings.ReplaceAll(template, PlaceholderMember, memberMention)
	msg = strings.ReplaceAll(msg, PlaceholderCount, strconv.Itoa(memberCount))
	msg = strings.ReplaceAll(msg, PlaceholderServerName, guildName)
	return msg
}
