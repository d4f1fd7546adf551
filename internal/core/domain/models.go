package domain

import (
	"errors"
	"time"
)

// Tuning constants. The A4 reference moves from 440Hz to 432Hz; every
// conversion applies exactly this ratio.
const (
	SourceFrequency = 440
	TargetFrequency = 432
	PitchRatio      = float64(TargetFrequency) / float64(SourceFrequency)
)

// TempoTolerance bounds how far the converted/original duration ratio
// may drift from 1.0 before verification flags it. The check is against
// 1.0, not against PitchRatio: a correct tempo-preserving shift leaves
// the duration unchanged.
const TempoTolerance = 0.02

// ErrNoDuration is reported when a media probe returns no usable
// duration (missing or corrupt file).
var ErrNoDuration = errors.New("no duration reported by probe")

// ConversionJob describes one pitch-shift of a single file.
type ConversionJob struct {
	ID         string    `json:"job_id"`
	InputPath  string    `json:"input_path"`
	OutputPath string    `json:"output_path"`
	Ratio      float64   `json:"ratio"`
	CreatedAt  time.Time `json:"created_at"`
}

// ConversionResult holds the outcome of a single conversion job.
type ConversionResult struct {
	Job          ConversionJob
	Success      bool
	ErrorMessage string
	CompletedAt  time.Time
}

// BatchSummary reports a directory-wide conversion run.
type BatchSummary struct {
	ID        string
	Dir       string
	Scanned   int
	Converted int
	Skipped   int
	Failed    int
}

// DownloadJob represents a single download run.
type DownloadJob struct {
	ID        string    `json:"job_id"`
	URL       string    `json:"url"`
	OutputDir string    `json:"output_dir"`
	CreatedAt time.Time `json:"created_at"`
}

// DownloadResult holds the outcome of a completed download job.
type DownloadResult struct {
	Job          DownloadJob
	Success      bool
	ErrorMessage string
	CompletedAt  time.Time
}

// AudioInfo is the metadata a duration probe returns for one file.
type AudioInfo struct {
	Path       string
	Codec      string
	FormatName string
	Duration   float64 // seconds
	SampleRate int
	Channels   int
	BitRate    int64 // bits per second
	SizeBytes  int64
}

// DurationReport compares an original file against its converted
// counterpart. TempoPreserved is true when the duration ratio is within
// TempoTolerance of 1.0.
type DurationReport struct {
	Original       AudioInfo
	Converted      AudioInfo
	Ratio          float64
	TempoPreserved bool
}

// DependencyStatus describes one external prerequisite.
type DependencyStatus struct {
	Name          string
	Found         bool
	Version       string
	AutoInstalled bool
	Remedy        string
}
