package service

import (
	"context"
	"log"
	"os/exec"

	"tune432/internal/core/domain"
	"tune432/internal/core/ports"
)

// DependencyChecker probes the external prerequisites: the ffmpeg and
// ffprobe binaries, the Python runtime, and the spotdl module. A
// missing spotdl gets one automatic pip install attempt; missing
// binaries only get remediation instructions.
type DependencyChecker struct {
	ffmpegBin  string
	ffprobeBin string
	pythonBin  string
	downloader ports.DownloaderTool
	lookPath   func(string) (string, error)
	logger     *log.Logger
}

// NewDependencyChecker creates a DependencyChecker.
func NewDependencyChecker(
	ffmpegBin, ffprobeBin, pythonBin string,
	downloader ports.DownloaderTool,
	logger *log.Logger,
) *DependencyChecker {
	return &DependencyChecker{
		ffmpegBin:  ffmpegBin,
		ffprobeBin: ffprobeBin,
		pythonBin:  pythonBin,
		downloader: downloader,
		lookPath:   exec.LookPath,
		logger:     logger,
	}
}

// Check probes every prerequisite and returns the statuses plus an
// overall ok flag. It never terminates the process itself; the caller
// decides what a failed check means.
func (c *DependencyChecker) Check(ctx context.Context) ([]domain.DependencyStatus, bool) {
	statuses := []domain.DependencyStatus{
		c.checkBinary("ffmpeg", c.ffmpegBin,
			"install FFmpeg and put it on PATH (apt install ffmpeg / brew install ffmpeg / winget install FFmpeg)"),
		c.checkBinary("ffprobe", c.ffprobeBin,
			"ffprobe ships with FFmpeg; install FFmpeg and put it on PATH"),
	}

	python := c.checkBinary("python3", c.pythonBin, "install Python 3 from python.org or your package manager")
	statuses = append(statuses, python)
	statuses = append(statuses, c.checkDownloader(ctx, python.Found))

	ok := true
	for _, s := range statuses {
		if !s.Found {
			ok = false
		}
	}
	return statuses, ok
}

func (c *DependencyChecker) checkBinary(name, bin, remedy string) domain.DependencyStatus {
	status := domain.DependencyStatus{Name: name, Remedy: remedy}
	if path, err := c.lookPath(bin); err == nil {
		status.Found = true
		status.Version = path
	}
	return status
}

func (c *DependencyChecker) checkDownloader(ctx context.Context, pythonFound bool) domain.DependencyStatus {
	status := domain.DependencyStatus{Name: "spotdl", Remedy: "pip install spotdl"}

	version, err := c.downloader.Version(ctx)
	if err == nil {
		status.Found = true
		status.Version = version
		return status
	}
	if !pythonFound {
		// No runtime to install into.
		return status
	}

	c.logger.Printf("spotdl not found, attempting pip install...")
	if err := c.downloader.Install(ctx); err != nil {
		c.logger.Printf("automatic install failed: %v", err)
		return status
	}

	version, err = c.downloader.Version(ctx)
	if err != nil {
		c.logger.Printf("spotdl still unavailable after install: %v", err)
		return status
	}

	status.Found = true
	status.Version = version
	status.AutoInstalled = true
	return status
}
