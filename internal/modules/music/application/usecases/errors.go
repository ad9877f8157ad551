package usecases

import "errors"

// Error taxonomy for the music module. Every collaborator failure is
// normalized into one of these at the resolver boundary; raw collaborator
// errors never reach the presentation layer.
var (
	// ErrUserNotInVoice is returned when the requester is not in a voice channel.
	ErrUserNotInVoice = errors.New("you must be in a voice channel")

	// ErrMetadataLookup is returned when the metadata collaborator fails
	// or does not know the requested track ID.
	ErrMetadataLookup = errors.New("track metadata lookup failed")

	// ErrNoMatch is returned when a free-text search yields no tracks.
	ErrNoMatch = errors.New("no matching track found")

	// ErrNoPlayableStream is returned when extraction yields no entry
	// with a resolvable stream URL.
	ErrNoPlayableStream = errors.New("no playable audio stream")

	// ErrVoiceConnectTimeout is returned when the voice handshake times out.
	ErrVoiceConnectTimeout = errors.New("timed out joining the voice channel")

	// ErrAlreadyConnectedElsewhere is returned when the session is held
	// by another channel and cannot be claimed.
	ErrAlreadyConnectedElsewhere = errors.New("already connected to a different voice channel")

	// ErrNotConnected is returned when an operation requires an active
	// voice session.
	ErrNotConnected = errors.New("not connected to a voice channel")

	// ErrCredentialsMissing is returned when metadata credentials are not
	// configured; the feature is unavailable, not broken.
	ErrCredentialsMissing = errors.New("track search is not configured")

	// ErrTransportDisconnected is returned when the voice transport went
	// away while a request was in flight.
	ErrTransportDisconnected = errors.New("voice connection was lost")
)
