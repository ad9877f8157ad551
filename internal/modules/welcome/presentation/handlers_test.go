package presentation

import (
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/harmonia-bot/harmonia/internal/bot"
	"github.com/harmonia-bot/harmonia/internal/modules/welcome/domain"
	"github.com/harmonia-bot/harmonia/internal/store"
)

func setWelcomeInteraction(message string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			GuildID: "100",
			Type:    discordgo.InteractionApplicationCommand,
			Data: discordgo.ApplicationCommandInteractionData{
				Name: "setwelcome",
				Resolved: &discordgo.ApplicationCommandInteractionDataResolved{
					Channels: map[string]*discordgo.Channel{
						"555": {ID: "555", Type: discordgo.ChannelTypeGuildText},
					},
				},
				Options: []*discordgo.ApplicationCommandInteractionDataOption{
					{
						Name:  "channel",
						Type:  discordgo.ApplicationCommandOptionChannel,
						Value: "555",
					},
					{
						Name:  "message",
						Type:  discordgo.ApplicationCommandOptionString,
						Value: message,
					},
				},
			},
		},
	}
}

func TestHandleSetWelcome_StoresSettings(t *testing.T) {
	settings := store.NewGuildStore[domain.Settings]()
	handlers := NewHandlers(settings)
	responder := &bot.MockResponder{}

	err := handlers.HandleSetWelcome(nil, setWelcomeInteraction("Welcome {member}!"), responder)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, ok := settings.Get(snowflake.ID(100))
	if !ok {
		t.Fatal("expected settings to be stored")
	}
	if stored.ChannelID != "555" {
		t.Errorf("stored channel = %q, want %q", stored.ChannelID, "555")
	}
	if stored.Template != "Welcome {member}!" {
		t.Errorf("stored template = %q, want %q", stored.Template, "Welcome {member}!")
	}

	if responder.LastResponse == nil || responder.LastResponse.Data == nil {
		t.Fatal("expected a confirmation response")
	}
	if responder.LastResponse.Data.Flags&discordgo.MessageFlagsEphemeral == 0 {
		t.Error("expected confirmation to be ephemeral")
	}
	if !strings.Contains(responder.LastResponse.Data.Content, "<#555>") {
		t.Errorf("expected confirmation to mention channel, got %q",
			responder.LastResponse.Data.Content)
	}
}

func TestHandleSetWelcome_OverwritesPrevious(t *testing.T) {
	settings := store.NewGuildStore[domain.Settings]()
	settings.Set(snowflake.ID(100), domain.Settings{ChannelID: "1", Template: "old"})
	handlers := NewHandlers(settings)

	err := handlers.HandleSetWelcome(nil, setWelcomeInteraction("new"), &bot.MockResponder{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, _ := settings.Get(snowflake.ID(100))
	if stored.Template != "new" || stored.ChannelID != "555" {
		t.Errorf("expected settings to be replaced, got %+v", stored)
	}
}
