package infrastructure

import (
	"context"
	"fmt"

	"github.com/harmonia-bot/harmonia/internal/modules/music/application/ports"
	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"
)

// SpotifyMetadataSearcher looks up track metadata through the Spotify
// Web API using the client-credentials flow.
type SpotifyMetadataSearcher struct {
	client *spotify.Client
}

// NewSpotifyMetadataSearcher creates a new SpotifyMetadataSearcher
// authenticated with the given application credentials.
func NewSpotifyMetadataSearcher(
	ctx context.Context, clientID, clientSecret string,
) (*SpotifyMetadataSearcher, error) {
	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}

	token, err := config.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate with Spotify: %w", err)
	}

	httpClient := spotifyauth.New().Client(ctx, token)

	return &SpotifyMetadataSearcher{
		client: spotify.New(httpClient),
	}, nil
}

// SearchTracks returns up to limit tracks matching the query, in the
// order Spotify ranks them.
func (s *SpotifyMetadataSearcher) SearchTracks(
	ctx context.Context, query string, limit int,
) ([]ports.TrackResult, error) {
	result, err := s.client.Search(
		ctx, query, spotify.SearchTypeTrack, spotify.Limit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search tracks: %w", err)
	}

	if result.Tracks == nil {
		return nil, nil
	}

	tracks := make([]ports.TrackResult, 0, len(result.Tracks.Tracks))
	for _, track := range result.Tracks.Tracks {
		tracks = append(tracks, toTrackResult(track))
	}

	return tracks, nil
}

// TrackByID fetches a single track by its Spotify track ID.
func (s *SpotifyMetadataSearcher) TrackByID(
	ctx context.Context, id string,
) (*ports.TrackResult, error) {
	track, err := s.client.GetTrack(ctx, spotify.ID(id))
	if err != nil {
		return nil, ports.ErrTrackNotFound
	}

	result := toTrackResult(*track)
	return &result, nil
}

func toTrackResult(track spotify.FullTrack) ports.TrackResult {
	artist := ""
	if len(track.Artists) > 0 {
		artist = track.Artists[0].Name
	}

	return ports.TrackResult{
		Title:       track.Name,
		Artist:      artist,
		ExternalURL: track.ExternalURLs["spotify"],
	}
}

// Ensure SpotifyMetadataSearcher implements ports.MetadataSearcher.
var _ ports.MetadataSearcher = (*SpotifyMetadataSearcher)(nil)
