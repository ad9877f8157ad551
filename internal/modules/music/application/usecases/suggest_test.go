package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/harmonia-bot/harmonia/internal/modules/music/application/ports"
)

func TestSuggestService_Suggest(t *testing.T) {
	metadata := &mockMetadataSearcher{
		searchResults: []ports.TrackResult{
			{Title: "First", Artist: "A", ExternalURL: "https://open.spotify.com/track/1"},
			{Title: "Second", Artist: "B", ExternalURL: "https://open.spotify.com/track/2"},
		},
	}
	videos := &mockVideoSearcher{url: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"}
	svc := NewSuggestService(metadata, videos)

	out, err := svc.Suggest(context.Background(), SuggestInput{Query: "some song"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(out.Suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(out.Suggestions))
	}
	// Collaborator ranking is preserved as-is.
	if out.Suggestions[0].Title != "First" {
		t.Errorf("first suggestion = %q, expected %q", out.Suggestions[0].Title, "First")
	}
	if out.Suggestions[0].YouTubeURL == "" {
		t.Error("expected video enrichment to be filled")
	}
}

func TestSuggestService_Suggest_EnrichmentFailureIsIgnored(t *testing.T) {
	metadata := &mockMetadataSearcher{
		searchResults: []ports.TrackResult{{Title: "Only", Artist: "A"}},
	}
	videos := &mockVideoSearcher{err: errors.New("search down")}
	svc := NewSuggestService(metadata, videos)

	out, err := svc.Suggest(context.Background(), SuggestInput{Query: "some song"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Suggestions[0].YouTubeURL != "" {
		t.Errorf("YouTubeURL = %q, expected empty", out.Suggestions[0].YouTubeURL)
	}
}

func TestSuggestService_Suggest_NoResults(t *testing.T) {
	svc := NewSuggestService(&mockMetadataSearcher{}, nil)

	_, err := svc.Suggest(context.Background(), SuggestInput{Query: "nothing"})
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("err = %v, expected ErrNoMatch", err)
	}
}

func TestSuggestService_Suggest_SearchError(t *testing.T) {
	svc := NewSuggestService(&mockMetadataSearcher{searchErr: errors.New("boom")}, nil)

	_, err := svc.Suggest(context.Background(), SuggestInput{Query: "some song"})
	if !errors.Is(err, ErrMetadataLookup) {
		t.Fatalf("err = %v, expected ErrMetadataLookup", err)
	}
}

func TestSuggestService_Suggest_MissingCredentials(t *testing.T) {
	svc := NewSuggestService(nil, nil)

	_, err := svc.Suggest(context.Background(), SuggestInput{Query: "some song"})
	if !errors.Is(err, ErrCredentialsMissing) {
		t.Fatalf("err = %v, expected ErrCredentialsMissing", err)
	}
}
