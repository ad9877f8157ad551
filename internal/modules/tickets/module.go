package tickets

import (
	"github.com/bwmarrin/discordgo"
	"github.com/harmonia-bot/harmonia/internal/bot"
	"github.com/harmonia-bot/harmonia/internal/modules/tickets/application"
	"github.com/harmonia-bot/harmonia/internal/modules/tickets/domain"
	"github.com/harmonia-bot/harmonia/internal/modules/tickets/presentation"
	"github.com/harmonia-bot/harmonia/internal/store"
)

func init() {
	bot.Register(&TicketsModule{})
}

// TicketsModule provides the support-ticket workflow.
type TicketsModule struct {
	handlers *presentation.Handlers
}

// Name returns the module name.
func (m *TicketsModule) Name() string {
	return "tickets"
}

// Commands returns the slash commands for this module.
func (m *TicketsModule) Commands() []*discordgo.ApplicationCommand {
	adminPerms := int64(discordgo.PermissionManageServer)

	return []*discordgo.ApplicationCommand{
		{
			Name:                     "setup",
			Description:              "Configure tickets interactively",
			DefaultMemberPermissions: &adminPerms,
		},
		{
			Name:                     "setcategory",
			Description:              "Set the category for new ticket channels",
			DefaultMemberPermissions: &adminPerms,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionChannel,
					Name:        "category",
					Description: "Category to create ticket channels under",
					Required:    true,
					ChannelTypes: []discordgo.ChannelType{
						discordgo.ChannelTypeGuildCategory,
					},
				},
			},
		},
		{
			Name:                     "setlogs",
			Description:              "Set the channel ticket activity is logged to",
			DefaultMemberPermissions: &adminPerms,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionChannel,
					Name:        "channel",
					Description: "Channel to log ticket activity in",
					Required:    true,
					ChannelTypes: []discordgo.ChannelType{
						discordgo.ChannelTypeGuildText,
					},
				},
			},
		},
		{
			Name:                     "sendpanel",
			Description:              "Send the open-ticket panel in this channel",
			DefaultMemberPermissions: &adminPerms,
		},
		{
			Name:        "close",
			Description: "Close this ticket channel",
		},
	}
}

// CommandHandlers returns the command handlers for this module.
func (m *TicketsModule) CommandHandlers() map[string]bot.InteractionHandler {
	return map[string]bot.InteractionHandler{
		"setup":       m.handlers.HandleSetup,
		"setcategory": m.handlers.HandleSetCategory,
		"setlogs":     m.handlers.HandleSetLogs,
		"sendpanel":   m.handlers.HandleSendPanel,
		"close":       m.handlers.HandleClose,
	}
}

// EventHandlers returns the event handlers for this module.
func (m *TicketsModule) EventHandlers() []bot.EventHandler {
	return []bot.EventHandler{
		m.handlers.HandleComponentInteraction,
	}
}

// Init initializes the module.
func (m *TicketsModule) Init(deps bot.ModuleDependencies) error {
	m.handlers = presentation.NewHandlers(
		store.NewGuildStore[domain.Settings](),
		application.NewSetupFlow(application.DefaultSetupTTL),
	)
	return nil
}

// Shutdown cleans up module resources.
func (m *TicketsModule) Shutdown() error {
	return nil
}
