package infrastructure

import (
	"sync"

	"github.com/disgoorg/snowflake/v2"
	"github.com/harmonia-bot/harmonia/internal/modules/music/domain"
)

// MemoryRepository is an in-memory implementation of SessionRepository.
// Sessions are created lazily on first use and never persisted.
type MemoryRepository struct {
	mu       sync.RWMutex
	sessions map[snowflake.ID]*domain.VoiceSession
}

// NewMemoryRepository creates a new MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		sessions: make(map[snowflake.ID]*domain.VoiceSession),
	}
}

// Get returns the guild's session, or nil if none exists.
func (r *MemoryRepository) Get(guildID snowflake.ID) *domain.VoiceSession {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sessions[guildID]
}

// GetOrCreate returns the guild's session, creating a disconnected one
// on first use.
func (r *MemoryRepository) GetOrCreate(guildID snowflake.ID) *domain.VoiceSession {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session, ok := r.sessions[guildID]; ok {
		return session
	}

	session := domain.NewVoiceSession(guildID)
	r.sessions[guildID] = session
	return session
}

// Delete removes the guild's session.
func (r *MemoryRepository) Delete(guildID snowflake.ID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, guildID)
}

// Count returns the number of sessions (for testing/monitoring).
func (r *MemoryRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}

// GuildIDs returns the guilds that currently have a session.
func (r *MemoryRepository) GuildIDs() []snowflake.ID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]snowflake.ID, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	return ids
}

// Ensure MemoryRepository implements SessionRepository.
var _ domain.SessionRepository = (*MemoryRepository)(nil)
