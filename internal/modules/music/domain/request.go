package domain

import (
	"regexp"
	"strings"
)

// RequestKind discriminates the variants of a classified playback request.
type RequestKind int

const (
	// KindPlainQuery is free text to be searched by title/artist.
	KindPlainQuery RequestKind = iota
	// KindSpotifyTrack is a Spotify track URL carrying a track ID.
	KindSpotifyTrack
	// KindYouTubeURL is a YouTube URL carrying an 11-character video ID.
	KindYouTubeURL
)

// String returns a human-readable name for the request kind.
func (k RequestKind) String() string {
	switch k {
	case KindSpotifyTrack:
		return "spotify_track"
	case KindYouTubeURL:
		return "youtube_url"
	default:
		return "plain_query"
	}
}

// ClassifiedRequest is the determined intent of a raw playback query.
// Exactly one of TrackID / VideoID / Query is meaningful, selected by Kind.
type ClassifiedRequest struct {
	Kind    RequestKind
	TrackID string // Spotify track ID when Kind is KindSpotifyTrack
	VideoID string // YouTube video ID when Kind is KindYouTubeURL
	Query   string // Original text when Kind is KindPlainQuery
}

// Spotify track URLs carry an opaque alphanumeric ID; a trailing query
// string (e.g. ?si=...) is ignored. YouTube IDs are exactly 11 characters
// across the watch?v=, embed/, v/ and youtu.be path forms.
var (
	spotifyTrackPattern = regexp.MustCompile(`https?://open\.spotify\.com/track/([a-zA-Z0-9]+)(?:\?.*)?`)
	youtubePattern      = regexp.MustCompile(`(?:https?://)?(?:www\.)?(?:youtube\.com|youtu\.be)/(?:watch\?v=|embed/|v/|)([\w-]{11})(?:\S+)?`)
)

// Classify pattern-matches a raw request into exactly one variant.
// Spotify is tried before YouTube; anything else, including malformed
// URLs, falls open to a plain query so playback is never blocked on a
// false negative.
func Classify(raw string) ClassifiedRequest {
	trimmed := strings.TrimSpace(raw)

	if m := spotifyTrackPattern.FindStringSubmatch(trimmed); m != nil {
		return ClassifiedRequest{Kind: KindSpotifyTrack, TrackID: m[1]}
	}

	if m := youtubePattern.FindStringSubmatch(trimmed); m != nil {
		return ClassifiedRequest{Kind: KindYouTubeURL, VideoID: m[1]}
	}

	return ClassifiedRequest{Kind: KindPlainQuery, Query: trimmed}
}
