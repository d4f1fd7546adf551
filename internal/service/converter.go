package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"tune432/internal/adapters/localstorage"
	"tune432/internal/core/domain"
	"tune432/internal/core/ports"
)

var (
	ErrFileNotFound      = errors.New("file not found")
	ErrDirectoryNotFound = errors.New("directory not found")
)

// Converter coordinates pitch-shift jobs: one file at a time or a
// whole directory with a bounded worker pool.
type Converter struct {
	shifter  ports.PitchShifter
	library  *localstorage.Library
	audioExt string
	jobs     int
	logger   *log.Logger
}

// NewConverter creates a Converter. jobs bounds how many files convert
// concurrently in directory mode; 1 keeps the strict sequential order.
func NewConverter(
	shifter ports.PitchShifter,
	library *localstorage.Library,
	audioExt string,
	jobs int,
	logger *log.Logger,
) *Converter {
	if jobs < 1 {
		jobs = 1
	}
	return &Converter{
		shifter:  shifter,
		library:  library,
		audioExt: audioExt,
		jobs:     jobs,
		logger:   logger,
	}
}

// ConvertFile pitch-shifts a single existing file. The returned result
// carries the job either way; the error reports what failed.
func (c *Converter) ConvertFile(ctx context.Context, inputPath, outputDir string) (*domain.ConversionResult, error) {
	if _, err := os.Stat(inputPath); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, inputPath)
	}

	if outputDir != "" {
		if err := c.library.EnsureDir(outputDir); err != nil {
			return nil, err
		}
	}

	job := domain.ConversionJob{
		ID:         uuid.New().String(),
		InputPath:  inputPath,
		OutputPath: c.library.ConvertedPath(inputPath, outputDir),
		Ratio:      domain.PitchRatio,
		CreatedAt:  time.Now().UTC(),
	}
	result := &domain.ConversionResult{Job: job}

	c.logger.Printf("[JOB %s] Converting %s -> %s", job.ID, job.InputPath, job.OutputPath)

	if err := c.shifter.Shift(ctx, job); err != nil {
		result.ErrorMessage = fmt.Sprintf("pitch shift failed: %v", err)
		c.logger.Printf("[JOB %s] ERROR: %s", job.ID, result.ErrorMessage)
		return result, err
	}

	result.Success = true
	result.CompletedAt = time.Now().UTC()
	c.logger.Printf("[JOB %s] Done", job.ID)
	return result, nil
}

// ConvertDir converts every matching file in dir. The scan is flat.
// A failing file is logged and counted; it never aborts the siblings.
// Files already carrying the converted marker are skipped.
func (c *Converter) ConvertDir(ctx context.Context, dir, outputDir string) (*domain.BatchSummary, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
	}

	files, err := c.library.ListAudioFiles(dir, c.audioExt)
	if err != nil {
		return nil, err
	}

	summary := &domain.BatchSummary{
		ID:      uuid.New().String(),
		Dir:     dir,
		Scanned: len(files),
	}
	c.logger.Printf("[BATCH %s] %d %s file(s) in %s", summary.ID, len(files), c.audioExt, dir)

	var mu sync.Mutex
	g := new(errgroup.Group)
	g.SetLimit(c.jobs)

	for _, file := range files {
		file := file
		if c.library.IsConvertedName(filepath.Base(file)) {
			summary.Skipped++
			c.logger.Printf("[BATCH %s] SKIP already converted: %s", summary.ID, file)
			continue
		}

		g.Go(func() error {
			_, convErr := c.ConvertFile(ctx, file, outputDir)

			mu.Lock()
			defer mu.Unlock()
			if convErr != nil {
				summary.Failed++
				c.logger.Printf("[BATCH %s] FAIL %s: %v", summary.ID, file, convErr)
			} else {
				summary.Converted++
			}
			// Failures stay per-file; never cancel the group.
			return nil
		})
	}
	_ = g.Wait()

	c.logger.Printf("[BATCH %s] Converted %d, skipped %d, failed %d",
		summary.ID, summary.Converted, summary.Skipped, summary.Failed)
	return summary, nil
}
