package spotdl

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const (
	downloadTimeout = 30 * time.Minute
	installTimeout  = 5 * time.Minute
	versionTimeout  = 30 * time.Second
)

// Options configures the spotdl invocation.
type Options struct {
	PythonBin    string
	Format       string
	BitrateKbps  int
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Stdout       io.Writer
	Stderr       io.Writer
}

// Downloader shells out to the spotdl module (python -m spotdl) to
// resolve and download Spotify URLs. spotdl owns the OAuth handshake,
// its token cache, search/matching, and per-track skip behavior; this
// adapter only passes the URL and output directory through.
type Downloader struct {
	pythonBin   string
	format      string
	bitrateKbps int
	env         []string
	stdout      io.Writer
	stderr      io.Writer
}

// New creates a Downloader. Spotify credentials, when configured, are
// handed to spotdl through its SPOTIPY_* environment variables.
func New(opts Options) *Downloader {
	python := opts.PythonBin
	if python == "" {
		python = "python3"
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	return &Downloader{
		pythonBin:   python,
		format:      opts.Format,
		bitrateKbps: opts.BitrateKbps,
		env:         credentialEnv(opts.ClientID, opts.ClientSecret, opts.RedirectURI),
		stdout:      stdout,
		stderr:      stderr,
	}
}

// Download runs spotdl for one URL. Tool output streams through to the
// configured writers so skip/unavailable diagnostics reach the user
// unchanged.
func (d *Downloader) Download(ctx context.Context, url, outputDir string) error {
	ctx, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, d.pythonBin, downloadArgs(url, outputDir, d.format, d.bitrateKbps)...)
	cmd.Stdout = d.stdout
	cmd.Stderr = d.stderr
	if len(d.env) > 0 {
		cmd.Env = append(os.Environ(), d.env...)
	}

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("spotdl failed: %w", err)
	}
	return nil
}

// Version reports the installed spotdl version, or an error when the
// module is not importable.
func (d *Downloader) Version(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, d.pythonBin, "-m", "spotdl", "--version")

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("spotdl not available: %w, stderr: %s", err, strings.TrimSpace(stderr.String()))
	}

	version := strings.TrimSpace(out.String())
	if version == "" {
		return "", fmt.Errorf("spotdl reported no version")
	}
	return version, nil
}

// Install attempts a pip install of spotdl.
func (d *Downloader) Install(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, installTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, d.pythonBin, "-m", "pip", "install", "spotdl")
	cmd.Stdout = d.stdout
	cmd.Stderr = d.stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("pip install spotdl failed: %w", err)
	}
	return nil
}

func downloadArgs(url, outputDir, format string, bitrateKbps int) []string {
	args := []string{"-m", "spotdl", url, "--output", outputDir}
	if format != "" {
		args = append(args, "--format", format)
	}
	if bitrateKbps > 0 {
		args = append(args, "--bitrate", fmt.Sprintf("%dk", bitrateKbps))
	}
	return args
}

func credentialEnv(clientID, clientSecret, redirectURI string) []string {
	if clientID == "" || clientSecret == "" {
		return nil
	}
	env := []string{
		"SPOTIPY_CLIENT_ID=" + clientID,
		"SPOTIPY_CLIENT_SECRET=" + clientSecret,
	}
	if redirectURI != "" {
		env = append(env, "SPOTIPY_REDIRECT_URI="+redirectURI)
	}
	return env
}

// TokenCachePath is where spotdl keeps its OAuth token blob. Deleting
// it and re-running the download is the remedy for stuck
// authentication.
func TokenCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".spotdl", ".spotipy")
	}
	return filepath.Join(home, ".spotdl", ".spotipy")
}
