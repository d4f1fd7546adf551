package config

import "testing"

func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"SPOTIFY_CLIENT_ID", "SPOTIFY_CLIENT_SECRET", "SPOTIFY_REDIRECT_URI",
		"TUNE432_DOWNLOAD_DIR", "TUNE432_AUDIO_FORMAT", "TUNE432_BITRATE",
		"TUNE432_JOBS", "TUNE432_FFMPEG", "TUNE432_FFPROBE", "TUNE432_PYTHON",
	}
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	cfg := FromEnv()

	if cfg.RedirectURI != DefaultRedirectURI {
		t.Errorf("RedirectURI = %q, want %q", cfg.RedirectURI, DefaultRedirectURI)
	}
	if cfg.DownloadDir != DefaultDownloadDir {
		t.Errorf("DownloadDir = %q, want %q", cfg.DownloadDir, DefaultDownloadDir)
	}
	if cfg.AudioFormat != DefaultAudioFormat {
		t.Errorf("AudioFormat = %q, want %q", cfg.AudioFormat, DefaultAudioFormat)
	}
	if cfg.BitrateKbps != DefaultBitrateKbps {
		t.Errorf("BitrateKbps = %d, want %d", cfg.BitrateKbps, DefaultBitrateKbps)
	}
	if cfg.Jobs != DefaultJobs {
		t.Errorf("Jobs = %d, want %d", cfg.Jobs, DefaultJobs)
	}
	if cfg.FFmpegBin != DefaultFFmpegBin || cfg.FFprobeBin != DefaultFFprobeBin {
		t.Errorf("binaries = %q/%q, want defaults", cfg.FFmpegBin, cfg.FFprobeBin)
	}
	if cfg.ClientID != "" || cfg.ClientSecret != "" {
		t.Errorf("credentials should be empty by default")
	}
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SPOTIFY_CLIENT_ID", "abc123")
	t.Setenv("SPOTIFY_CLIENT_SECRET", "shh")
	t.Setenv("TUNE432_DOWNLOAD_DIR", "/tmp/music")
	t.Setenv("TUNE432_BITRATE", "192")
	t.Setenv("TUNE432_JOBS", "4")
	t.Setenv("TUNE432_FFMPEG", "/opt/ffmpeg/bin/ffmpeg")

	cfg := FromEnv()

	if cfg.ClientID != "abc123" || cfg.ClientSecret != "shh" {
		t.Errorf("credentials not picked up: %q/%q", cfg.ClientID, cfg.ClientSecret)
	}
	if cfg.DownloadDir != "/tmp/music" {
		t.Errorf("DownloadDir = %q", cfg.DownloadDir)
	}
	if cfg.BitrateKbps != 192 {
		t.Errorf("BitrateKbps = %d, want 192", cfg.BitrateKbps)
	}
	if cfg.Jobs != 4 {
		t.Errorf("Jobs = %d, want 4", cfg.Jobs)
	}
	if cfg.FFmpegBin != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("FFmpegBin = %q", cfg.FFmpegBin)
	}
}

func TestFromEnvBadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("TUNE432_BITRATE", "lots")
	t.Setenv("TUNE432_JOBS", "-3")

	cfg := FromEnv()

	if cfg.BitrateKbps != DefaultBitrateKbps {
		t.Errorf("BitrateKbps = %d, want default on bad value", cfg.BitrateKbps)
	}
	if cfg.Jobs != DefaultJobs {
		t.Errorf("Jobs = %d, want default on bad value", cfg.Jobs)
	}
}

func TestFromEnvJobsClamped(t *testing.T) {
	clearEnv(t)
	t.Setenv("TUNE432_JOBS", "64")

	if cfg := FromEnv(); cfg.Jobs != MaxJobs {
		t.Errorf("Jobs = %d, want clamp to %d", cfg.Jobs, MaxJobs)
	}
}
