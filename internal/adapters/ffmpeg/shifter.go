package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"tune432/internal/core/domain"
)

const (
	shiftTimeout = 10 * time.Minute

	// MP3 output is assumed CD-rate. asetrate needs a concrete number,
	// and probing it first would cost a second process per file.
	defaultSampleRate = 44100
)

// Shifter re-pitches files through a single ffmpeg invocation per
// file. The filter chain lowers the reference pitch by exactly 432/440
// via asetrate, resamples back to the original rate, and compensates
// the tempo with atempo so the output duration matches the input.
type Shifter struct {
	binaryPath  string
	bitrateKbps int
	sampleRate  int
}

// NewShifter creates a Shifter using the given ffmpeg binary.
func NewShifter(binaryPath string, bitrateKbps int) *Shifter {
	if binaryPath == "" {
		binaryPath = "ffmpeg"
	}
	return &Shifter{
		binaryPath:  binaryPath,
		bitrateKbps: bitrateKbps,
		sampleRate:  defaultSampleRate,
	}
}

// Shift runs the pitch-shift for one job. Exactly one external process
// is started per call.
func (s *Shifter) Shift(ctx context.Context, job domain.ConversionJob) error {
	ctx, cancel := context.WithTimeout(ctx, shiftTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, s.binaryPath, shiftArgs(job, s.sampleRate, s.bitrateKbps)...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg failed: %w, stderr: %s", err, stderrTail(stderr.String()))
	}
	return nil
}

// shiftArgs builds the ffmpeg argument list for one conversion job.
// The 432/440 and 440/432 terms are written as rationals so ffmpeg
// evaluates the exact ratio.
func shiftArgs(job domain.ConversionJob, sampleRate, bitrateKbps int) []string {
	filter := fmt.Sprintf(
		"asetrate=%d*%d/%d,aresample=%d,atempo=%d/%d",
		sampleRate, domain.TargetFrequency, domain.SourceFrequency,
		sampleRate,
		domain.SourceFrequency, domain.TargetFrequency,
	)
	return []string{
		"-y",
		"-i", job.InputPath,
		"-af", filter,
		"-map_metadata", "0",
		"-b:a", fmt.Sprintf("%dk", bitrateKbps),
		job.OutputPath,
	}
}

// stderrTail keeps error messages readable; ffmpeg prints its whole
// banner before the actual failure line.
func stderrTail(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) <= 5 {
		return strings.Join(lines, "\n")
	}
	return strings.Join(lines[len(lines)-5:], "\n")
}
