package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"tune432/internal/adapters/localstorage"
	"tune432/internal/core/domain"
	"tune432/internal/core/ports"
)

// DownloadService runs download jobs: it prepares the output directory
// and hands the URL to the external downloader unchanged. With
// convertAfter set, freshly downloaded files are converted to 432Hz in
// the same run.
type DownloadService struct {
	downloader ports.TrackDownloader
	converter  *Converter
	library    *localstorage.Library
	logger     *log.Logger
}

// NewDownloadService creates a DownloadService.
func NewDownloadService(
	downloader ports.TrackDownloader,
	converter *Converter,
	library *localstorage.Library,
	logger *log.Logger,
) *DownloadService {
	return &DownloadService{
		downloader: downloader,
		converter:  converter,
		library:    library,
		logger:     logger,
	}
}

// Download executes one download job for the given URL.
func (s *DownloadService) Download(ctx context.Context, url, outputDir string, convertAfter bool) (*domain.DownloadResult, error) {
	job := domain.DownloadJob{
		ID:        uuid.New().String(),
		URL:       url,
		OutputDir: outputDir,
		CreatedAt: time.Now().UTC(),
	}
	result := &domain.DownloadResult{Job: job}

	s.logger.Printf("[JOB %s] Downloading %s into %s", job.ID, url, outputDir)

	if err := s.library.EnsureDir(outputDir); err != nil {
		result.ErrorMessage = err.Error()
		return result, err
	}

	if err := s.downloader.Download(ctx, url, outputDir); err != nil {
		result.ErrorMessage = fmt.Sprintf("download failed: %v", err)
		s.logger.Printf("[JOB %s] ERROR: %s", job.ID, result.ErrorMessage)
		return result, err
	}

	result.Success = true
	result.CompletedAt = time.Now().UTC()
	s.logger.Printf("[JOB %s] Download finished", job.ID)

	if convertAfter {
		s.logger.Printf("[JOB %s] Auto-converting downloads to 432Hz", job.ID)
		summary, err := s.converter.ConvertDir(ctx, outputDir, "")
		if err != nil {
			s.logger.Printf("[JOB %s] auto-conversion failed: %v", job.ID, err)
		} else {
			s.logger.Printf("[JOB %s] Auto-conversion: %d converted, %d skipped, %d failed",
				job.ID, summary.Converted, summary.Skipped, summary.Failed)
		}
	}

	return result, nil
}
