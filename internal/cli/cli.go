package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"tune432/internal/adapters/spotdl"
	"tune432/internal/config"
	"tune432/internal/service"
)

// Exit codes. Usage problems (unknown command, missing argument) exit
// with 2; handler failures with 1.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// App routes command tokens to handlers. The same dispatch table
// serves direct invocation and the interactive menu, so argument
// validation lives in one place.
type App struct {
	cfg       config.Config
	downloads *service.DownloadService
	converter *service.Converter
	verifier  *service.Verifier
	checker   *service.DependencyChecker

	autoConvert bool

	in  io.Reader
	out io.Writer
}

// New creates the App.
func New(
	cfg config.Config,
	downloads *service.DownloadService,
	converter *service.Converter,
	verifier *service.Verifier,
	checker *service.DependencyChecker,
	autoConvert bool,
	in io.Reader,
	out io.Writer,
) *App {
	return &App{
		cfg:         cfg,
		downloads:   downloads,
		converter:   converter,
		verifier:    verifier,
		checker:     checker,
		autoConvert: autoConvert,
		in:          in,
		out:         out,
	}
}

// command is one entry in the dispatch table. args lists the
// positional arguments in order; entries ending in "?" are optional.
type command struct {
	name    string
	args    []string
	summary string
	run     func(ctx context.Context, args []string) error
}

func (c command) minArgs() int {
	n := 0
	for _, a := range c.args {
		if !strings.HasSuffix(a, "?") {
			n++
		}
	}
	return n
}

func (c command) usage() string {
	parts := []string{c.name}
	for _, a := range c.args {
		if strings.HasSuffix(a, "?") {
			parts = append(parts, "["+strings.TrimSuffix(a, "?")+"]")
		} else {
			parts = append(parts, "<"+a+">")
		}
	}
	return strings.Join(parts, " ")
}

func (a *App) commands() []command {
	return []command{
		{
			name:    "download",
			args:    []string{"url", "output_dir?"},
			summary: "Download a Spotify playlist/album/track via spotdl",
			run:     a.runDownload,
		},
		{
			name:    "convert",
			args:    []string{"file", "output_dir?"},
			summary: "Re-pitch one audio file from 440Hz to 432Hz",
			run:     a.runConvert,
		},
		{
			name:    "convert-dir",
			args:    []string{"folder", "output_dir?"},
			summary: "Re-pitch every audio file in a directory",
			run:     a.runConvertDir,
		},
		{
			name:    "verify",
			args:    []string{"original", "converted"},
			summary: "Compare durations of an original and its converted file",
			run:     a.runVerify,
		},
		{
			name:    "info",
			args:    []string{"file"},
			summary: "Show audio metadata for one file",
			run:     a.runInfo,
		},
		{
			name:    "check",
			summary: "Check external dependencies (ffmpeg, ffprobe, python, spotdl)",
			run:     a.runCheck,
		},
		{
			name:    "menu",
			summary: "Interactive menu",
			run:     a.runMenu,
		},
		{
			name:    "help",
			summary: "Show this help",
			run: func(context.Context, []string) error {
				a.printUsage()
				return nil
			},
		},
	}
}

// Run dispatches one invocation and returns the process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		a.printUsage()
		return ExitUsage
	}

	name := args[0]
	for _, cmd := range a.commands() {
		if cmd.name != name {
			continue
		}
		rest := args[1:]
		if len(rest) < cmd.minArgs() {
			fmt.Fprintf(a.out, "Usage: tune432 %s\n", cmd.usage())
			return ExitUsage
		}
		if err := cmd.run(ctx, rest); err != nil {
			color.New(color.FgRed).Fprintf(a.out, "Error: %v\n", err)
			return ExitError
		}
		return ExitOK
	}

	fmt.Fprintf(a.out, "Unknown command: %s\n\n", name)
	a.printUsage()
	return ExitUsage
}

func (a *App) printUsage() {
	fmt.Fprintln(a.out, "tune432 - download Spotify audio and re-pitch it to a 432Hz reference")
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "Usage: tune432 [flags] <command> [args]")
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "Commands:")
	for _, cmd := range a.commands() {
		fmt.Fprintf(a.out, "  %-36s %s\n", cmd.usage(), cmd.summary)
	}
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "Authentication problems? Delete the spotdl token cache and retry:")
	fmt.Fprintf(a.out, "  rm %s\n", spotdl.TokenCachePath())
}

func (a *App) runDownload(ctx context.Context, args []string) error {
	outputDir := a.cfg.DownloadDir
	if len(args) > 1 {
		outputDir = args[1]
	}
	_, err := a.downloads.Download(ctx, args[0], outputDir, a.autoConvert)
	if err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintf(a.out, "Download complete: %s\n", outputDir)
	return nil
}

func (a *App) runConvert(ctx context.Context, args []string) error {
	outputDir := ""
	if len(args) > 1 {
		outputDir = args[1]
	}
	result, err := a.converter.ConvertFile(ctx, args[0], outputDir)
	if err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintf(a.out, "Converted: %s\n", result.Job.OutputPath)
	return nil
}

func (a *App) runConvertDir(ctx context.Context, args []string) error {
	outputDir := ""
	if len(args) > 1 {
		outputDir = args[1]
	}
	summary, err := a.converter.ConvertDir(ctx, args[0], outputDir)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(a.out)
	table.SetHeader([]string{"Scanned", "Converted", "Skipped", "Failed"})
	table.Append([]string{
		strconv.Itoa(summary.Scanned),
		strconv.Itoa(summary.Converted),
		strconv.Itoa(summary.Skipped),
		strconv.Itoa(summary.Failed),
	})
	table.Render()

	if summary.Failed > 0 {
		return fmt.Errorf("%d file(s) failed to convert", summary.Failed)
	}
	return nil
}

func (a *App) runVerify(ctx context.Context, args []string) error {
	report, err := a.verifier.Compare(ctx, args[0], args[1])
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(a.out)
	table.SetHeader([]string{"File", "Duration (s)", "Codec", "Sample Rate", "Channels"})
	table.Append(audioRow("original", report.Original.Duration, report.Original.Codec, report.Original.SampleRate, report.Original.Channels))
	table.Append(audioRow("converted", report.Converted.Duration, report.Converted.Codec, report.Converted.SampleRate, report.Converted.Channels))
	table.Render()

	fmt.Fprintf(a.out, "Duration ratio: %.6f (expected ~1.000000)\n", report.Ratio)
	if report.TempoPreserved {
		color.New(color.FgGreen).Fprintln(a.out, "Tempo preserved: durations match within 2%")
	} else {
		color.New(color.FgYellow).Fprintln(a.out, "Warning: duration ratio differs from 1.0 beyond the 2% tolerance")
	}

	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "This check compares durations only; it cannot confirm the pitch change.")
	fmt.Fprintln(a.out, "To verify the pitch by hand:")
	fmt.Fprintln(a.out, "  1. Play both files back-to-back; the converted one sounds slightly lower.")
	fmt.Fprintln(a.out, "  2. Both must play at the same speed.")
	fmt.Fprintln(a.out, "  3. A tuning app on a sustained note should read A4 = 432Hz.")
	return nil
}

func (a *App) runInfo(ctx context.Context, args []string) error {
	info, err := a.verifier.Inspect(ctx, args[0])
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(a.out)
	table.SetHeader([]string{"Field", "Value"})
	table.Append([]string{"Path", info.Path})
	table.Append([]string{"Format", info.FormatName})
	table.Append([]string{"Codec", info.Codec})
	table.Append([]string{"Duration", fmt.Sprintf("%.3fs", info.Duration)})
	table.Append([]string{"Sample rate", fmt.Sprintf("%d Hz", info.SampleRate)})
	table.Append([]string{"Channels", strconv.Itoa(info.Channels)})
	table.Append([]string{"Bit rate", fmt.Sprintf("%d kb/s", info.BitRate/1000)})
	table.Append([]string{"Size", fmt.Sprintf("%d bytes", info.SizeBytes)})
	table.Render()
	return nil
}

func (a *App) runCheck(ctx context.Context, _ []string) error {
	statuses, ok := a.checker.Check(ctx)

	table := tablewriter.NewWriter(a.out)
	table.SetHeader([]string{"Dependency", "Status", "Version / Path", "Remedy"})
	for _, s := range statuses {
		state := "MISSING"
		remedy := s.Remedy
		if s.Found {
			state = "ok"
			remedy = ""
			if s.AutoInstalled {
				state = "ok (installed now)"
			}
		}
		table.Append([]string{s.Name, state, s.Version, remedy})
	}
	table.Render()

	if !ok {
		return fmt.Errorf("missing dependencies, see remedies above")
	}
	color.New(color.FgGreen).Fprintln(a.out, "All dependencies present")
	return nil
}

func audioRow(label string, duration float64, codec string, sampleRate, channels int) []string {
	return []string{
		label,
		fmt.Sprintf("%.3f", duration),
		codec,
		strconv.Itoa(sampleRate),
		strconv.Itoa(channels),
	}
}
