// Package store provides in-memory per-guild settings storage shared by
// modules. Settings live for the lifetime of the process; admin command
// handlers are the only writers.
package store

import (
	"sync"

	"github.com/disgoorg/snowflake/v2"
)

// GuildStore holds one settings value per guild.
type GuildStore[T any] struct {
	mu     sync.RWMutex
	values map[snowflake.ID]T
}

// NewGuildStore creates an empty GuildStore.
func NewGuildStore[T any]() *GuildStore[T] {
	return &GuildStore[T]{
		values: make(map[snowflake.ID]T),
	}
}

// Get returns the guild's settings and whether they have been set.
func (s *GuildStore[T]) Get(guildID snowflake.ID) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[guildID]
	return value, ok
}

// Set replaces the guild's settings.
func (s *GuildStore[T]) Set(guildID snowflake.ID, value T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[guildID] = value
}

// Update applies fn to the guild's current settings (zero value if unset)
// and stores the result.
func (s *GuildStore[T]) Update(guildID snowflake.ID, fn func(T) T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[guildID] = fn(s.values[guildID])
}

// Delete removes the guild's settings.
func (s *GuildStore[T]) Delete(guildID snowflake.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, guildID)
}
