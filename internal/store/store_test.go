package store

import (
	"sync"
	"testing"

	"github.com/disgoorg/snowflake/v2"
)

type testSettings struct {
	ChannelID snowflake.ID
	Message   string
}

func TestGuildStore_GetUnset(t *testing.T) {
	s := NewGuildStore[testSettings]()

	_, ok := s.Get(snowflake.ID(1))
	if ok {
		t.Error("expected unset guild to report not found")
	}
}

func TestGuildStore_SetAndGet(t *testing.T) {
	s := NewGuildStore[testSettings]()
	want := testSettings{ChannelID: snowflake.ID(42), Message: "hello"}

	s.Set(snowflake.ID(1), want)

	got, ok := s.Get(snowflake.ID(1))
	if !ok {
		t.Fatal("expected settings to be found")
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestGuildStore_PerGuildIsolation(t *testing.T) {
	s := NewGuildStore[testSettings]()

	s.Set(snowflake.ID(1), testSettings{Message: "one"})
	s.Set(snowflake.ID(2), testSettings{Message: "two"})

	got, _ := s.Get(snowflake.ID(1))
	if got.Message != "one" {
		t.Errorf("guild 1 got %q, want %q", got.Message, "one")
	}
	got, _ = s.Get(snowflake.ID(2))
	if got.Message != "two" {
		t.Errorf("guild 2 got %q, want %q", got.Message, "two")
	}
}

func TestGuildStore_Update(t *testing.T) {
	s := NewGuildStore[testSettings]()
	s.Set(snowflake.ID(1), testSettings{ChannelID: snowflake.ID(42)})

	s.Update(snowflake.ID(1), func(cur testSettings) testSettings {
		cur.Message = "updated"
		return cur
	})

	got, _ := s.Get(snowflake.ID(1))
	if got.ChannelID != snowflake.ID(42) || got.Message != "updated" {
		t.Errorf("unexpected settings after update: %+v", got)
	}
}

func TestGuildStore_Delete(t *testing.T) {
	s := NewGuildStore[testSettings]()
	s.Set(snowflake.ID(1), testSettings{Message: "gone"})

	s.Delete(snowflake.ID(1))

	if _, ok := s.Get(snowflake.ID(1)); ok {
		t.Error("expected settings to be deleted")
	}
}

func TestGuildStore_ConcurrentAccess(t *testing.T) {
	s := NewGuildStore[int]()
	var wg sync.WaitGroup

	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			guildID := snowflake.ID(i % 5)
			s.Set(guildID, i)
			s.Get(guildID)
		}()
	}

	wg.Wait()

	for i := range 5 {
		if _, ok := s.Get(snowflake.ID(i)); !ok {
			t.Errorf("expected guild %d to have a value", i)
		}
	}
}
