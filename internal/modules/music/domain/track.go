package domain

// TrackMetadata is the canonical title/artist tuple produced by metadata
// resolution. SearchTerms feeds the audio source lookup when the original
// request was not already a direct video reference.
type TrackMetadata struct {
	Title       string
	Artist      string
	SearchTerms string
}

// NewTrackMetadata builds TrackMetadata with "<title> <artist>" search terms.
func NewTrackMetadata(title, artist string) TrackMetadata {
	return TrackMetadata{
		Title:       title,
		Artist:      artist,
		SearchTerms: title + " " + artist,
	}
}

// ResolvedAudio is a directly streamable audio reference plus display
// metadata. It is consumed once by the voice session and then discarded.
type ResolvedAudio struct {
	StreamURL string
	Title     string
	Uploader  string
}

// IsPlayable reports whether the resolved entry carries a stream URL.
func (a ResolvedAudio) IsPlayable() bool {
	return a.StreamURL != ""
}

// Suggestion is a ranked metadata hit returned by /suggest; no playback.
type Suggestion struct {
	Title       string
	Artist      string
	ExternalURL string
	YouTubeURL  string // best-effort enrichment, may be empty
}
