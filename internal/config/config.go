package config

import (
	"os"
	"strconv"
)

// Defaults applied when the corresponding environment variable is
// unset or unparsable.
const (
	DefaultRedirectURI = "http://localhost:8888/callback"
	DefaultDownloadDir = "./downloads"
	DefaultAudioFormat = "mp3"
	DefaultBitrateKbps = 320
	DefaultJobs        = 1
	DefaultFFmpegBin   = "ffmpeg"
	DefaultFFprobeBin  = "ffprobe"
	DefaultPythonBin   = "python3"
)

// MaxJobs caps the conversion worker count.
const MaxJobs = 8

// Config holds all process-wide settings. It is read once from the
// environment at startup and passed to constructors; nothing mutates
// it afterwards.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string

	DownloadDir string
	AudioFormat string
	BitrateKbps int
	Jobs        int

	FFmpegBin  string
	FFprobeBin string
	PythonBin  string
}

// FromEnv builds a Config from the environment, falling back to
// defaults for anything unset.
func FromEnv() Config {
	return Config{
		ClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
		ClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),
		RedirectURI:  getenv("SPOTIFY_REDIRECT_URI", DefaultRedirectURI),
		DownloadDir:  getenv("TUNE432_DOWNLOAD_DIR", DefaultDownloadDir),
		AudioFormat:  getenv("TUNE432_AUDIO_FORMAT", DefaultAudioFormat),
		BitrateKbps:  getenvInt("TUNE432_BITRATE", DefaultBitrateKbps),
		Jobs:         clampJobs(getenvInt("TUNE432_JOBS", DefaultJobs)),
		FFmpegBin:    getenv("TUNE432_FFMPEG", DefaultFFmpegBin),
		FFprobeBin:   getenv("TUNE432_FFPROBE", DefaultFFprobeBin),
		PythonBin:    getenv("TUNE432_PYTHON", DefaultPythonBin),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func clampJobs(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxJobs {
		return MaxJobs
	}
	return n
}
