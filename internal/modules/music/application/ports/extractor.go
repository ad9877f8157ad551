package ports

import (
	"context"
	"errors"
	"time"
)

// ErrNoExtraction is returned when the extractor yields no usable entry.
var ErrNoExtraction = errors.New("no extractable audio")

// ExtractedAudio is the audio-extraction collaborator's result: a direct
// audio byte-stream URL plus display metadata.
type ExtractedAudio struct {
	StreamURL string
	Title     string
	Uploader  string
	Duration  time.Duration
}

// AudioExtractor is the external audio-extraction subsystem. Given a
// direct video reference or a search term it returns the best-available
// audio-only format, never expanding playlists.
type AudioExtractor interface {
	// Resolve extracts audio for queryOrRef. In search mode the
	// collaborator's top-ranked entry is returned; in direct mode the
	// reference is resolved as-is.
	Resolve(ctx context.Context, queryOrRef string, searchMode bool) (*ExtractedAudio, error)
}
