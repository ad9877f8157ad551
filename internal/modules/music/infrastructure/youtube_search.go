package infrastructure

import (
	"context"
	"errors"

	"github.com/ppalone/ytsearch"
)

// YouTubeVideoSearcher finds video links through the YouTube search
// endpoint, without an API key.
type YouTubeVideoSearcher struct {
	client *ytsearch.Client
}

// NewYouTubeVideoSearcher creates a new YouTubeVideoSearcher.
func NewYouTubeVideoSearcher() *YouTubeVideoSearcher {
	return &YouTubeVideoSearcher{
		client: ytsearch.NewClient(nil),
	}
}

// SearchVideoURL returns the watch URL of the top search result.
func (y *YouTubeVideoSearcher) SearchVideoURL(
	ctx context.Context, query string,
) (string, error) {
	res, err := y.client.Search(ctx, query)
	if err != nil {
		return "", err
	}

	if len(res.Results) == 0 {
		return "", errors.New("no video results")
	}

	return "https://www.youtube.com/watch?v=" + res.Results[0].VideoID, nil
}
