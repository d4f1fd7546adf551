package ffmpeg

import (
	"errors"
	"strings"
	"testing"

	"tune432/internal/core/domain"
)

func TestShiftArgs(t *testing.T) {
	job := domain.ConversionJob{
		InputPath:  "in/song.mp3",
		OutputPath: "out/song (432Hz).mp3",
		Ratio:      domain.PitchRatio,
	}

	args := shiftArgs(job, 44100, 320)

	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "asetrate=44100*432/440") {
		t.Errorf("filter missing exact pitch ratio: %s", joined)
	}
	if !strings.Contains(joined, "atempo=440/432") {
		t.Errorf("filter missing tempo compensation: %s", joined)
	}
	if !strings.Contains(joined, "aresample=44100") {
		t.Errorf("filter missing resample back to source rate: %s", joined)
	}
	if !strings.Contains(joined, "-b:a 320k") {
		t.Errorf("bitrate not applied: %s", joined)
	}
	if args[len(args)-1] != job.OutputPath {
		t.Errorf("output path must be last arg, got %q", args[len(args)-1])
	}

	// The ratio is fixed regardless of job contents.
	other := shiftArgs(domain.ConversionJob{InputPath: "a.mp3", OutputPath: "b.mp3"}, 44100, 320)
	if !strings.Contains(strings.Join(other, " "), "432/440") {
		t.Error("pitch ratio must not depend on the job")
	}
}

func TestParseProbeOutput(t *testing.T) {
	raw := []byte(`{
		"streams": [
			{"codec_type": "video", "codec_name": "mjpeg"},
			{"codec_type": "audio", "codec_name": "mp3", "sample_rate": "44100", "channels": 2}
		],
		"format": {"format_name": "mp3", "duration": "217.443265", "bit_rate": "320000"}
	}`)

	info, err := parseProbeOutput(raw, "song.mp3")
	if err != nil {
		t.Fatalf("parseProbeOutput: %v", err)
	}
	if info.Duration != 217.443265 {
		t.Errorf("Duration = %v", info.Duration)
	}
	if info.Codec != "mp3" {
		t.Errorf("Codec = %q, want audio stream codec", info.Codec)
	}
	if info.SampleRate != 44100 || info.Channels != 2 {
		t.Errorf("SampleRate/Channels = %d/%d", info.SampleRate, info.Channels)
	}
	if info.BitRate != 320000 {
		t.Errorf("BitRate = %d", info.BitRate)
	}
}

func TestParseProbeOutputNoDuration(t *testing.T) {
	for _, raw := range []string{`{}`, `{"format": {"duration": "0"}}`, `not json`} {
		_, err := parseProbeOutput([]byte(raw), "x.mp3")
		if !errors.Is(err, domain.ErrNoDuration) {
			t.Errorf("parseProbeOutput(%q) err = %v, want ErrNoDuration", raw, err)
		}
	}
}

func TestStderrTail(t *testing.T) {
	long := "a\nb\nc\nd\ne\nf\ng"
	tail := stderrTail(long)
	if strings.Contains(tail, "a\n") {
		t.Errorf("tail should drop leading lines, got %q", tail)
	}
	if !strings.HasSuffix(tail, "g") {
		t.Errorf("tail should keep the last line, got %q", tail)
	}
	if got := stderrTail("only line"); got != "only line" {
		t.Errorf("short input should pass through, got %q", got)
	}
}
