package bot

import "github.com/bwmarrin/discordgo"

// Responder provides an abstraction for responding to Discord interactions.
// This interface enables testing handlers without a live Discord connection.
type Responder interface {
	// Respond sends a response to an interaction. After Defer, the
	// response is delivered as a followup message instead.
	Respond(response *discordgo.InteractionResponse) error

	// Defer acknowledges the interaction immediately ("thinking…") so Discord
	// does not invalidate it while a slow handler finishes its work.
	Defer() error
}

// DiscordResponder implements Responder using a live Discord session.
type DiscordResponder struct {
	session     *discordgo.Session
	interaction *discordgo.Interaction
	deferred    bool
}

// NewDiscordResponder creates a new DiscordResponder.
func NewDiscordResponder(s *discordgo.Session, i *discordgo.Interaction) *DiscordResponder {
	return &DiscordResponder{
		session:     s,
		interaction: i,
	}
}

// Defer sends the deferred acknowledgment for the interaction.
func (r *DiscordResponder) Defer() error {
	if r.deferred {
		return nil
	}
	err := r.session.InteractionRespond(r.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		return err
	}
	r.deferred = true
	return nil
}

// Respond sends a response to the interaction via Discord API. When the
// interaction was deferred the payload goes out as a followup message, since
// the initial response slot is already consumed by the acknowledgment.
func (r *DiscordResponder) Respond(response *discordgo.InteractionResponse) error {
	if !r.deferred {
		return r.session.InteractionRespond(r.interaction, response)
	}
	params := &discordgo.WebhookParams{}
	if response.Data != nil {
		params.Content = response.Data.Content
		params.Embeds = response.Data.Embeds
		params.Components = response.Data.Components
		params.Flags = response.Data.Flags
	}
	_, err := r.session.FollowupMessageCreate(r.interaction, true, params)
	return err
}

// MockResponder is a test double for Responder.
type MockResponder struct {
	LastResponse *discordgo.InteractionResponse
	Deferred     bool
	Err          error
	DeferErr     error
}

// Respond records the response for testing.
func (m *MockResponder) Respond(response *discordgo.InteractionResponse) error {
	m.LastResponse = response
	return m.Err
}

// Defer records the acknowledgment for testing.
func (m *MockResponder) Defer() error {
	if m.DeferErr != nil {
		return m.DeferErr
	}
	m.Deferred = true
	return nil
}
