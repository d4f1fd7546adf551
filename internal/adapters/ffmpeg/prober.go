package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/tidwall/gjson"

	"tune432/internal/core/domain"
)

const probeTimeout = 30 * time.Second

// Prober reads media metadata via ffprobe's JSON output. Duration
// comes from the container; no audio samples are decoded.
type Prober struct {
	binaryPath string
}

// NewProber creates a Prober using the given ffprobe binary.
func NewProber(binaryPath string) *Prober {
	if binaryPath == "" {
		binaryPath = "ffprobe"
	}
	return &Prober{binaryPath: binaryPath}
}

// Probe returns the audio metadata for one file.
func (p *Prober) Probe(ctx context.Context, path string) (*domain.AudioInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, p.binaryPath,
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffprobe failed for %s: %w, stderr: %s", path, err, stderr.String())
	}

	info, err := parseProbeOutput(out.Bytes(), path)
	if err != nil {
		return nil, err
	}

	if st, statErr := os.Stat(path); statErr == nil {
		info.SizeBytes = st.Size()
	}
	return info, nil
}

// parseProbeOutput extracts the fields we care about from ffprobe's
// JSON. ffprobe reports numbers like duration and sample_rate as JSON
// strings; gjson converts them.
func parseProbeOutput(raw []byte, path string) (*domain.AudioInfo, error) {
	duration := gjson.GetBytes(raw, "format.duration").Float()
	if duration <= 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoDuration, path)
	}

	info := &domain.AudioInfo{
		Path:       path,
		FormatName: gjson.GetBytes(raw, "format.format_name").String(),
		Duration:   duration,
		BitRate:    gjson.GetBytes(raw, "format.bit_rate").Int(),
	}

	gjson.GetBytes(raw, "streams").ForEach(func(_, stream gjson.Result) bool {
		if stream.Get("codec_type").String() != "audio" {
			return true
		}
		info.Codec = stream.Get("codec_name").String()
		info.SampleRate = int(stream.Get("sample_rate").Int())
		info.Channels = int(stream.Get("channels").Int())
		return false
	})

	return info, nil
}
