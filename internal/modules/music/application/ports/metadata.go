package ports

import (
	"context"
	"errors"
)

// ErrTrackNotFound is returned by TrackByID for an unknown track ID.
var ErrTrackNotFound = errors.New("track not found")

// TrackResult is a single hit from the metadata search collaborator.
type TrackResult struct {
	Title       string
	Artist      string
	ExternalURL string
}

// MetadataSearcher is the external track-metadata search service.
type MetadataSearcher interface {
	// SearchTracks returns up to limit ranked hits for a free-text query.
	SearchTracks(ctx context.Context, query string, limit int) ([]TrackResult, error)

	// TrackByID looks up a single track by its provider ID.
	TrackByID(ctx context.Context, id string) (*TrackResult, error)
}
