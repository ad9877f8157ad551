package music

import "time"

// Config holds the music module configuration. Spotify credentials are
// optional; without them /play only accepts direct YouTube links and
// /suggest reports the feature as unavailable.
type Config struct {
	SpotifyClientID     string        `env:"SPOTIFY_CLIENT_ID"`
	SpotifyClientSecret string        `env:"SPOTIFY_CLIENT_SECRET"`
	VoiceConnectTimeout time.Duration `env:"VOICE_CONNECT_TIMEOUT" envDefault:"10s"`
	ResolveTimeout      time.Duration `env:"RESOLVE_TIMEOUT"       envDefault:"30s"`
	FfmpegPath          string        `env:"FFMPEG_PATH"           envDefault:"ffmpeg"`
}

// HasSpotifyCredentials reports whether both Spotify credentials are set.
func (c *Config) HasSpotifyCredentials() bool {
	return c.SpotifyClientID != "" && c.SpotifyClientSecret != ""
}
