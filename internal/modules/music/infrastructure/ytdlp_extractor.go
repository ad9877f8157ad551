package infrastructure

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/harmonia-bot/harmonia/internal/modules/music/application/ports"
	"github.com/lrstanley/go-ytdlp"
)

const audioFormatChain = "bestaudio[ext=webm]/bestaudio[ext=m4a]/bestaudio/best"

// YtdlpExtractor resolves playable audio streams through yt-dlp.
type YtdlpExtractor struct{}

// NewYtdlpExtractor creates a new YtdlpExtractor.
func NewYtdlpExtractor() *YtdlpExtractor {
	return &YtdlpExtractor{}
}

// Resolve extracts a direct audio stream URL for the given input. In
// search mode the input is treated as a free-text query and the top
// YouTube result is used; otherwise it is a video ID or URL resolved
// directly.
func (e *YtdlpExtractor) Resolve(
	ctx context.Context, queryOrRef string, searchMode bool,
) (*ports.ExtractedAudio, error) {
	target := queryOrRef
	if searchMode {
		target = "ytsearch1:" + queryOrRef
	} else if !strings.Contains(queryOrRef, "://") {
		target = "https://www.youtube.com/watch?v=" + queryOrRef
	}

	res, err := ytdlp.New().
		Format(audioFormatChain).
		Print("%(url)s\t%(title)s\t%(uploader)s\t%(duration)s").
		NoWarnings().
		IgnoreConfig().
		Run(ctx, "--skip-download", target)
	if err != nil {
		return nil, fmt.Errorf("failed to extract audio: %w", err)
	}

	for _, line := range strings.Split(strings.TrimSpace(res.Stdout), "\n") {
		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			continue
		}

		extracted := &ports.ExtractedAudio{
			StreamURL: fields[0],
			Title:     fields[1],
			Uploader:  fields[2],
		}
		if len(fields) >= 4 {
			if d, err := time.ParseDuration(fields[3] + "s"); err == nil {
				extracted.Duration = d
			}
		}
		return extracted, nil
	}

	return nil, ports.ErrNoExtraction
}

// Ensure YtdlpExtractor implements ports.AudioExtractor.
var _ ports.AudioExtractor = (*YtdlpExtractor)(nil)
