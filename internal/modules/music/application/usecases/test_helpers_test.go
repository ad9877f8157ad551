package usecases

import (
	"context"
	"sync"

	"github.com/disgoorg/snowflake/v2"
	"github.com/harmonia-bot/harmonia/internal/modules/music/application/ports"
	"github.com/harmonia-bot/harmonia/internal/modules/music/domain"
)

type mockRepository struct {
	mu       sync.Mutex
	sessions map[snowflake.ID]*domain.VoiceSession
	deleted  []snowflake.ID
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		sessions: make(map[snowflake.ID]*domain.VoiceSession),
	}
}

func (m *mockRepository) Get(guildID snowflake.ID) *domain.VoiceSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[guildID]
}

func (m *mockRepository) GetOrCreate(guildID snowflake.ID) *domain.VoiceSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[guildID]; ok {
		return s
	}
	s := domain.NewVoiceSession(guildID)
	m.sessions[guildID] = s
	return s
}

func (m *mockRepository) Delete(guildID snowflake.ID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, guildID)
	delete(m.sessions, guildID)
}

// createConnectedSession seeds a session already bound to the channel.
func (m *mockRepository) createConnectedSession(
	guildID, channelID snowflake.ID,
) *domain.VoiceSession {
	s := m.GetOrCreate(guildID)
	_ = s.BeginConnect()
	_ = s.CompleteConnect(channelID)
	return s
}

type mockVoiceGateway struct {
	mu sync.Mutex

	joinErr  error
	moveErr  error
	leaveErr error
	playErr  error
	stopErr  error

	streamActive bool

	joins       []snowflake.ID
	moves       []snowflake.ID
	leaves      []snowflake.ID
	played      []string
	stops       int
	invalidated []snowflake.ID
}

func (m *mockVoiceGateway) Join(_ context.Context, _ snowflake.ID, channelID snowflake.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.joinErr != nil {
		return m.joinErr
	}
	m.joins = append(m.joins, channelID)
	return nil
}

func (m *mockVoiceGateway) Move(_ context.Context, _ snowflake.ID, channelID snowflake.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.moveErr != nil {
		return m.moveErr
	}
	m.moves = append(m.moves, channelID)
	return nil
}

func (m *mockVoiceGateway) Leave(_ context.Context, guildID snowflake.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.leaveErr != nil {
		return m.leaveErr
	}
	m.leaves = append(m.leaves, guildID)
	return nil
}

func (m *mockVoiceGateway) PlayStream(_ context.Context, _ snowflake.ID, streamURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.playErr != nil {
		return m.playErr
	}
	m.played = append(m.played, streamURL)
	return nil
}

func (m *mockVoiceGateway) StopStream(_ context.Context, _ snowflake.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopErr != nil {
		return m.stopErr
	}
	m.stops++
	return nil
}

func (m *mockVoiceGateway) StreamActive(_ snowflake.ID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.streamActive
}

func (m *mockVoiceGateway) Invalidate(guildID snowflake.ID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invalidated = append(m.invalidated, guildID)
}

type mockVoiceStateProvider struct {
	channels map[snowflake.ID]snowflake.ID
	err      error
}

func (m *mockVoiceStateProvider) GetUserVoiceChannel(
	_, userID snowflake.ID,
) (snowflake.ID, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.channels[userID], nil
}

type mockMetadataSearcher struct {
	searchResults []ports.TrackResult
	searchErr     error
	tracks        map[string]ports.TrackResult
	byIDErr       error

	searchCalls []string
}

func (m *mockMetadataSearcher) SearchTracks(
	_ context.Context,
	query string,
	_ int,
) ([]ports.TrackResult, error) {
	m.searchCalls = append(m.searchCalls, query)
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.searchResults, nil
}

func (m *mockMetadataSearcher) TrackByID(
	_ context.Context,
	id string,
) (*ports.TrackResult, error) {
	if m.byIDErr != nil {
		return nil, m.byIDErr
	}
	track, ok := m.tracks[id]
	if !ok {
		return nil, ports.ErrTrackNotFound
	}
	return &track, nil
}

type mockAudioExtractor struct {
	result *ports.ExtractedAudio
	err    error

	calls []extractorCall
}

type extractorCall struct {
	queryOrRef string
	searchMode bool
}

func (m *mockAudioExtractor) Resolve(
	_ context.Context,
	queryOrRef string,
	searchMode bool,
) (*ports.ExtractedAudio, error) {
	m.calls = append(m.calls, extractorCall{queryOrRef: queryOrRef, searchMode: searchMode})
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

type mockVideoSearcher struct {
	url string
	err error
}

func (m *mockVideoSearcher) SearchVideoURL(_ context.Context, _ string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.url, nil
}
