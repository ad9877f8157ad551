package usecases

import (
	"context"
	"log/slog"

	"github.com/harmonia-bot/harmonia/internal/modules/music/application/ports"
	"github.com/harmonia-bot/harmonia/internal/modules/music/domain"
	"golang.org/x/sync/errgroup"
)

// DefaultSuggestionLimit is how many ranked hits /suggest returns.
const DefaultSuggestionLimit = 5

// VideoSearcher finds a best-effort video link for a track, used to
// enrich suggestions. Lookups are optional; failures only leave the
// enrichment empty.
type VideoSearcher interface {
	SearchVideoURL(ctx context.Context, query string) (string, error)
}

// SuggestInput contains the input for the Suggest use case.
type SuggestInput struct {
	Query string
	Limit int
}

// SuggestOutput contains the ranked suggestions.
type SuggestOutput struct {
	Suggestions []domain.Suggestion
}

// SuggestService returns ranked track metadata for a free-text query.
// It never touches the voice session.
type SuggestService struct {
	metadata ports.MetadataSearcher
	videos   VideoSearcher
}

// NewSuggestService creates a new SuggestService. A nil metadata searcher
// means credentials are missing and Suggest reports the feature as
// unavailable.
func NewSuggestService(metadata ports.MetadataSearcher, videos VideoSearcher) *SuggestService {
	return &SuggestService{
		metadata: metadata,
		videos:   videos,
	}
}

// Suggest searches the metadata collaborator and enriches each hit with
// a video link concurrently. Ranking is the collaborator's; no reordering.
func (s *SuggestService) Suggest(ctx context.Context, input SuggestInput) (*SuggestOutput, error) {
	if s.metadata == nil {
		return nil, ErrCredentialsMissing
	}

	limit := input.Limit
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	results, err := s.metadata.SearchTracks(ctx, input.Query, limit)
	if err != nil {
		slog.Warn("suggestion search failed", "query", input.Query, "error", err)
		return nil, ErrMetadataLookup
	}
	if len(results) == 0 {
		return nil, ErrNoMatch
	}

	suggestions := make([]domain.Suggestion, len(results))
	for i, r := range results {
		suggestions[i] = domain.Suggestion{
			Title:       r.Title,
			Artist:      r.Artist,
			ExternalURL: r.ExternalURL,
		}
	}

	if s.videos != nil {
		s.enrich(ctx, suggestions)
	}

	return &SuggestOutput{Suggestions: suggestions}, nil
}

// enrich fills YouTubeURL for each suggestion concurrently. Best effort:
// individual lookup failures are ignored.
func (s *SuggestService) enrich(ctx context.Context, suggestions []domain.Suggestion) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for i := range suggestions {
		g.Go(func() error {
			url, err := s.videos.SearchVideoURL(gctx, suggestions[i].Title+" "+suggestions[i].Artist)
			if err == nil {
				suggestions[i].YouTubeURL = url
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		slog.Debug("suggestion enrichment interrupted", "error", err)
	}
}
