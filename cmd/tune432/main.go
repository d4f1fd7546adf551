package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"tune432/internal/adapters/ffmpeg"
	"tune432/internal/adapters/localstorage"
	"tune432/internal/adapters/spotdl"
	"tune432/internal/cli"
	"tune432/internal/config"
	"tune432/internal/service"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	jobs := pflag.IntP("jobs", "j", 0, "Concurrent conversion workers for convert-dir (default TUNE432_JOBS or 1)")
	bitrate := pflag.Int("bitrate", 0, "Audio bitrate in kbps (default TUNE432_BITRATE or 320)")
	format := pflag.String("format", "", "Audio format for downloads (default TUNE432_AUDIO_FORMAT or mp3)")
	autoConvert := pflag.Bool("convert", false, "Convert downloads to 432Hz after the download finishes")
	ffmpegBin := pflag.String("ffmpeg", "", "Path to ffmpeg (default TUNE432_FFMPEG or PATH lookup)")
	ffprobeBin := pflag.String("ffprobe", "", "Path to ffprobe (default TUNE432_FFPROBE or PATH lookup)")
	pflag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: tune432 [flags] <command> [args]")
		fmt.Fprintln(os.Stderr, "Run 'tune432 help' for the command list.")
		fmt.Fprintln(os.Stderr)
		pflag.PrintDefaults()
	}
	pflag.Parse()

	cfg := config.FromEnv()
	if *jobs > 0 {
		cfg.Jobs = *jobs
	}
	if *bitrate > 0 {
		cfg.BitrateKbps = *bitrate
	}
	if *format != "" {
		cfg.AudioFormat = *format
	}
	if *ffmpegBin != "" {
		cfg.FFmpegBin = *ffmpegBin
	}
	if *ffprobeBin != "" {
		cfg.FFprobeBin = *ffprobeBin
	}

	logger := log.New(os.Stdout, "", log.LstdFlags)

	// Wire adapters
	library := localstorage.NewLibrary()
	shifter := ffmpeg.NewShifter(cfg.FFmpegBin, cfg.BitrateKbps)
	prober := ffmpeg.NewProber(cfg.FFprobeBin)
	downloader := spotdl.New(spotdl.Options{
		PythonBin:    cfg.PythonBin,
		Format:       cfg.AudioFormat,
		BitrateKbps:  cfg.BitrateKbps,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURI:  cfg.RedirectURI,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
	})

	// Wire services
	converter := service.NewConverter(shifter, library, cfg.AudioFormat, cfg.Jobs, logger)
	downloads := service.NewDownloadService(downloader, converter, library, logger)
	verifier := service.NewVerifier(prober)
	checker := service.NewDependencyChecker(cfg.FFmpegBin, cfg.FFprobeBin, cfg.PythonBin, downloader, logger)

	app := cli.New(cfg, downloads, converter, verifier, checker, *autoConvert, os.Stdin, os.Stdout)

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Println("\nReceived interrupt signal, cancelling...")
		cancel()
	}()

	os.Exit(app.Run(ctx, pflag.Args()))
}
