package infrastructure

import (
	"sync"
	"testing"

	"github.com/disgoorg/snowflake/v2"
)

func TestMemoryRepository_GetOrCreate(t *testing.T) {
	repo := NewMemoryRepository()
	guildID := snowflake.ID(123)

	// Get should return nil if no session exists
	if repo.Get(guildID) != nil {
		t.Fatal("expected nil for non-existent session")
	}

	// GetOrCreate should create a session lazily
	session := repo.GetOrCreate(guildID)
	if session == nil {
		t.Fatal("expected session to be created")
	}
	if session.GuildID() != guildID {
		t.Errorf("guild = %v, expected %v", session.GuildID(), guildID)
	}

	// Subsequent calls return the same instance
	if repo.GetOrCreate(guildID) != session {
		t.Error("expected same session instance")
	}
	if repo.Get(guildID) != session {
		t.Error("expected Get to return the created session")
	}

	// Different guild gets its own session
	other := repo.GetOrCreate(snowflake.ID(456))
	if other == session {
		t.Error("expected distinct session per guild")
	}
}

func TestMemoryRepository_Delete(t *testing.T) {
	repo := NewMemoryRepository()
	guildID := snowflake.ID(123)

	repo.GetOrCreate(guildID)
	repo.Delete(guildID)

	if repo.Get(guildID) != nil {
		t.Error("expected nil after delete")
	}
	if repo.Count() != 0 {
		t.Errorf("count = %d, expected 0", repo.Count())
	}

	// Deleting a missing guild is a no-op
	repo.Delete(snowflake.ID(456))
}

func TestMemoryRepository_ConcurrentAccess(t *testing.T) {
	repo := NewMemoryRepository()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			guildID := snowflake.ID(i % 5)
			repo.GetOrCreate(guildID)
			repo.Get(guildID)
		}()
	}
	wg.Wait()

	if repo.Count() != 5 {
		t.Errorf("count = %d, expected 5", repo.Count())
	}
}
