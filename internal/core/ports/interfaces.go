package ports

import (
	"context"

	"tune432/internal/core/domain"
)

// TrackDownloader defines the contract for fetching audio matching a
// streaming-service URL into a directory. The URL is passed through
// unmodified; the downloader decides what it resolves to (track, album
// or playlist) and is expected to skip unavailable items on its own.
type TrackDownloader interface {
	Download(ctx context.Context, url, outputDir string) error
}

// DownloaderTool exposes the downloader's own lifecycle for the
// dependency check: version probing and a one-shot install attempt.
type DownloaderTool interface {
	Version(ctx context.Context) (string, error)
	Install(ctx context.Context) error
}

// PitchShifter defines the contract for re-pitching one file. The
// implementation must preserve playback duration (tempo-preserving
// shift, not a playback-speed change) and write job.OutputPath.
type PitchShifter interface {
	Shift(ctx context.Context, job domain.ConversionJob) error
}

// DurationProber defines the contract for reading a file's media
// metadata without decoding audio samples. Implementations return
// domain.ErrNoDuration (possibly wrapped) when no duration is
// reported.
type DurationProber interface {
	Probe(ctx context.Context, path string) (*domain.AudioInfo, error)
}
