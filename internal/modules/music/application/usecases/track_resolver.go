package usecases

import (
	"context"
	"log/slog"

	"github.com/harmonia-bot/harmonia/internal/modules/music/application/ports"
	"github.com/harmonia-bot/harmonia/internal/modules/music/domain"
)

// TrackResolverService turns a classified request into canonical track
// metadata via the metadata search collaborator. YouTube URLs bypass it
// entirely; the caller feeds them straight to audio resolution.
type TrackResolverService struct {
	metadata ports.MetadataSearcher
}

// NewTrackResolverService creates a new TrackResolverService. A nil
// searcher means metadata credentials are missing and Spotify-URL and
// free-text resolution report the feature as unavailable.
func NewTrackResolverService(metadata ports.MetadataSearcher) *TrackResolverService {
	return &TrackResolverService{metadata: metadata}
}

// Resolve produces the (title, artist, search terms) tuple for a request
// that needs metadata lookup.
func (s *TrackResolverService) Resolve(
	ctx context.Context,
	request domain.ClassifiedRequest,
) (domain.TrackMetadata, error) {
	if s.metadata == nil {
		return domain.TrackMetadata{}, ErrCredentialsMissing
	}

	switch request.Kind {
	case domain.KindSpotifyTrack:
		return s.resolveByID(ctx, request.TrackID)
	case domain.KindPlainQuery:
		return s.resolveBySearch(ctx, request.Query)
	default:
		// Direct video references carry no metadata to resolve.
		return domain.TrackMetadata{}, ErrMetadataLookup
	}
}

func (s *TrackResolverService) resolveByID(
	ctx context.Context,
	trackID string,
) (domain.TrackMetadata, error) {
	track, err := s.metadata.TrackByID(ctx, trackID)
	if err != nil {
		slog.Warn("metadata lookup failed", "track_id", trackID, "error", err)
		return domain.TrackMetadata{}, ErrMetadataLookup
	}

	return domain.NewTrackMetadata(track.Title, track.Artist), nil
}

func (s *TrackResolverService) resolveBySearch(
	ctx context.Context,
	query string,
) (domain.TrackMetadata, error) {
	results, err := s.metadata.SearchTracks(ctx, query, 1)
	if err != nil {
		slog.Warn("metadata search failed", "query", query, "error", err)
		return domain.TrackMetadata{}, ErrMetadataLookup
	}
	if len(results) == 0 {
		return domain.TrackMetadata{}, ErrNoMatch
	}

	top := results[0]
	return domain.NewTrackMetadata(top.Title, top.Artist), nil
}
