package welcome

import (
	"github.com/bwmarrin/discordgo"
	"github.com/harmonia-bot/harmonia/internal/bot"
	"github.com/harmonia-bot/harmonia/internal/modules/welcome/domain"
	"github.com/harmonia-bot/harmonia/internal/modules/welcome/presentation"
	"github.com/harmonia-bot/harmonia/internal/store"
)

func init() {
	bot.Register(&WelcomeModule{})
}

// WelcomeModule greets new members with a configurable message.
type WelcomeModule struct {
	handlers *presentation.Handlers
}

// Name returns the module name.
func (m *WelcomeModule) Name() string {
	return "welcome"
}

// Commands returns the slash commands for this module.
func (m *WelcomeModule) Commands() []*discordgo.ApplicationCommand {
	adminPerms := int64(discordgo.PermissionManageServer)

	return []*discordgo.ApplicationCommand{
		{
			Name:                     "setwelcome",
			Description:              "Set the welcome channel and message template",
			DefaultMemberPermissions: &adminPerms,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionChannel,
					Name:        "channel",
					Description: "The channel to send welcome messages in",
					Required:    true,
					ChannelTypes: []discordgo.ChannelType{
						discordgo.ChannelTypeGuildText,
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "message",
					Description: "The welcome message (use {member}, {count}, {servername})",
					Required:    true,
				},
			},
		},
	}
}

// CommandHandlers returns the command handlers for this module.
func (m *WelcomeModule) CommandHandlers() map[string]bot.InteractionHandler {
	return map[string]bot.InteractionHandler{
		"setwelcome": m.handlers.HandleSetWelcome,
	}
}

// EventHandlers returns the event handlers for this module.
func (m *WelcomeModule) EventHandlers() []bot.EventHandler {
	return []bot.EventHandler{
		m.handlers.HandleMemberAdd,
	}
}

// Init initializes the module.
func (m *WelcomeModule) Init(deps bot.ModuleDependencies) error {
	m.handlers = presentation.NewHandlers(store.NewGuildStore[domain.Settings]())
	return nil
}

// Shutdown cleans up module resources.
func (m *WelcomeModule) Shutdown() error {
	return nil
}
