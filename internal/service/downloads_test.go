package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"tune432/internal/adapters/localstorage"
)

// fakeDownloader records calls; optionally drops files into the
// output dir the way the real tool would.
type fakeDownloader struct {
	err       error
	dropFiles []string
	calls     []string
}

func (f *fakeDownloader) Download(_ context.Context, url, outputDir string) error {
	f.calls = append(f.calls, url+" -> "+outputDir)
	if f.err != nil {
		return f.err
	}
	for _, name := range f.dropFiles {
		if err := os.WriteFile(filepath.Join(outputDir, name), []byte("audio"), 0644); err != nil {
			return err
		}
	}
	return nil
}

func newTestDownloadService(dl *fakeDownloader, shifter *fakeShifter) *DownloadService {
	lib := localstorage.NewLibrary()
	conv := NewConverter(shifter, lib, "mp3", 1, testLogger())
	return NewDownloadService(dl, conv, lib, testLogger())
}

func TestDownloadCreatesDirAndDelegates(t *testing.T) {
	out := filepath.Join(t.TempDir(), "downloads")
	dl := &fakeDownloader{}
	svc := newTestDownloadService(dl, &fakeShifter{})

	result, err := svc.Download(context.Background(), "https://open.spotify.com/track/abc", out, false)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if !result.Success {
		t.Error("result not marked successful")
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("output dir not created: %v", err)
	}
	if len(dl.calls) != 1 || dl.calls[0] != "https://open.spotify.com/track/abc -> "+out {
		t.Errorf("unexpected downloader calls: %v", dl.calls)
	}
}

func TestDownloadFailurePropagates(t *testing.T) {
	out := filepath.Join(t.TempDir(), "downloads")
	dl := &fakeDownloader{err: errors.New("404 from the service")}
	svc := newTestDownloadService(dl, &fakeShifter{})

	result, err := svc.Download(context.Background(), "https://open.spotify.com/track/bad", out, false)
	if err == nil {
		t.Fatal("expected error from failing downloader")
	}
	if result.Success {
		t.Error("result must not be marked successful")
	}
	if result.ErrorMessage == "" {
		t.Error("failure must be recorded on the result")
	}
}

func TestDownloadAutoConvert(t *testing.T) {
	out := filepath.Join(t.TempDir(), "downloads")
	dl := &fakeDownloader{dropFiles: []string{"one.mp3", "two.mp3"}}
	shifter := &fakeShifter{}
	svc := newTestDownloadService(dl, shifter)

	if _, err := svc.Download(context.Background(), "https://open.spotify.com/album/x", out, true); err != nil {
		t.Fatalf("Download: %v", err)
	}
	if shifter.calls() != 2 {
		t.Errorf("auto-convert ran shifter %d times, want 2", shifter.calls())
	}
}
