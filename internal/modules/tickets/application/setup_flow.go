package application

import (
	"sync"
	"time"
)

// DefaultSetupTTL is how long a /setup prompt stays answerable.
const DefaultSetupTTL = 2 * time.Minute

// SetupResult is the completed outcome of a setup flow.
type SetupResult struct {
	GuildID      string
	CategoryID   string
	LogChannelID string
}

type setupStage int

const (
	stageCategory setupStage = iota
	stageLogs
)

type pendingSetup struct {
	guildID    string
	categoryID string
	stage      setupStage
	timer      *time.Timer
}

// SetupFlow tracks in-flight /setup conversations. Each prompt is keyed
// by an ephemeral correlation id carried in the component custom id; a
// selection either advances the flow or finds nothing because the
// prompt expired.
type SetupFlow struct {
	mu      sync.Mutex
	pending map[string]*pendingSetup
	ttl     time.Duration
}

// NewSetupFlow creates a SetupFlow whose prompts expire after ttl.
func NewSetupFlow(ttl time.Duration) *SetupFlow {
	if ttl <= 0 {
		ttl = DefaultSetupTTL
	}
	return &SetupFlow{
		pending: make(map[string]*pendingSetup),
		ttl:     ttl,
	}
}

// Begin registers a new flow for the guild under the correlation id.
func (f *SetupFlow) Begin(correlationID, guildID string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p := &pendingSetup{
		guildID: guildID,
		stage:   stageCategory,
	}
	p.timer = time.AfterFunc(f.ttl, func() {
		f.expire(correlationID)
	})
	f.pending[correlationID] = p
}

// ResolveCategory records the category selection and advances the flow
// to the log-channel stage. Returns false when the prompt is unknown,
// expired, or not at the category stage.
func (f *SetupFlow) ResolveCategory(correlationID, categoryID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.pending[correlationID]
	if !ok || p.stage != stageCategory {
		return false
	}

	p.categoryID = categoryID
	p.stage = stageLogs
	p.timer.Reset(f.ttl)
	return true
}

// ResolveLogs records the log-channel selection and completes the flow.
// Returns false when the prompt is unknown, expired, or not at the
// log-channel stage.
func (f *SetupFlow) ResolveLogs(correlationID, logChannelID string) (SetupResult, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.pending[correlationID]
	if !ok || p.stage != stageLogs {
		return SetupResult{}, false
	}

	p.timer.Stop()
	delete(f.pending, correlationID)

	return SetupResult{
		GuildID:      p.guildID,
		CategoryID:   p.categoryID,
		LogChannelID: logChannelID,
	}, true
}

func (f *SetupFlow) expire(correlationID string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.pending, correlationID)
}
