package service

import (
	"context"
	"fmt"
	"math"

	"tune432/internal/core/domain"
	"tune432/internal/core/ports"
)

// Verifier compares playback durations between an original file and
// its converted counterpart. It is a duration-only heuristic: it can
// tell whether tempo survived the shift, not whether pitch actually
// changed.
type Verifier struct {
	prober ports.DurationProber
}

// NewVerifier creates a Verifier.
func NewVerifier(prober ports.DurationProber) *Verifier {
	return &Verifier{prober: prober}
}

// Compare probes both files and classifies the duration ratio against
// 1.0 within domain.TempoTolerance.
func (v *Verifier) Compare(ctx context.Context, originalPath, convertedPath string) (*domain.DurationReport, error) {
	original, err := v.probe(ctx, originalPath)
	if err != nil {
		return nil, err
	}
	converted, err := v.probe(ctx, convertedPath)
	if err != nil {
		return nil, err
	}

	ratio := converted.Duration / original.Duration
	return &domain.DurationReport{
		Original:       *original,
		Converted:      *converted,
		Ratio:          ratio,
		TempoPreserved: math.Abs(ratio-1.0) < domain.TempoTolerance,
	}, nil
}

// Inspect returns the metadata for a single file.
func (v *Verifier) Inspect(ctx context.Context, path string) (*domain.AudioInfo, error) {
	return v.probe(ctx, path)
}

func (v *Verifier) probe(ctx context.Context, path string) (*domain.AudioInfo, error) {
	info, err := v.prober.Probe(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("probe failed for %s: %w", path, err)
	}
	if info.Duration <= 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoDuration, path)
	}
	return info, nil
}
