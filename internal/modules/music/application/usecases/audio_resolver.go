package usecases

import (
	"context"
	"log/slog"

	"github.com/harmonia-bot/harmonia/internal/modules/music/application/ports"
	"github.com/harmonia-bot/harmonia/internal/modules/music/domain"
)

// AudioSourceResolverService turns search terms or a direct video
// reference into a playable stream URL via the audio-extraction
// collaborator. All collaborator failures are normalized here.
type AudioSourceResolverService struct {
	extractor ports.AudioExtractor
}

// NewAudioSourceResolverService creates a new AudioSourceResolverService.
func NewAudioSourceResolverService(extractor ports.AudioExtractor) *AudioSourceResolverService {
	return &AudioSourceResolverService{extractor: extractor}
}

// Resolve extracts a playable audio source. In search mode the first
// entry of the collaborator's ranking is taken deterministically; in
// direct-reference mode the single entry is used as-is.
func (s *AudioSourceResolverService) Resolve(
	ctx context.Context,
	queryOrRef string,
	directReference bool,
) (domain.ResolvedAudio, error) {
	extracted, err := s.extractor.Resolve(ctx, queryOrRef, !directReference)
	if err != nil {
		slog.Warn("audio extraction failed",
			"query", queryOrRef,
			"direct", directReference,
			"error", err,
		)
		return domain.ResolvedAudio{}, ErrNoPlayableStream
	}
	if extracted == nil {
		return domain.ResolvedAudio{}, ErrNoPlayableStream
	}

	audio := domain.ResolvedAudio{
		StreamURL: extracted.StreamURL,
		Title:     extracted.Title,
		Uploader:  extracted.Uploader,
	}
	if !audio.IsPlayable() {
		return domain.ResolvedAudio{}, ErrNoPlayableStream
	}

	return audio, nil
}
