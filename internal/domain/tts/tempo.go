package tts

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/go-mp3"

	platformerrors "github.com/JOHAALETRADER/bot-traductor-audio/internal/platform/errors"
	"github.com/JOHAALETRADER/bot-traductor-audio/internal/platform/logging"
)

const (
	minTempoFactor = 0.5
	maxTempoFactor = 2.0
)

// ClampTempo forces the factor into the single-filter atempo range.
func ClampTempo(factor float64) float64 {
	if factor < minTempoFactor {
		return minTempoFactor
	}
	if factor > maxTempoFactor {
		return maxTempoFactor
	}
	return factor
}

// Normalizer adjusts playback speed of synthesized audio by re-encoding it
// through ffmpeg's atempo filter. It never fails a request: any tool error
// degrades to returning the input unchanged.
type Normalizer struct {
	factor float64
	ffmpeg string
	logger *logging.Logger
}

func NewNormalizer(factor float64, ffmpegPath string, logger *logging.Logger) *Normalizer {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &Normalizer{
		factor: ClampTempo(factor),
		ffmpeg: ffmpegPath,
		logger: logger,
	}
}

// Apply re-times audio by the configured factor. A factor within 0.001 of
// 1.0 returns the input bytes untouched, as does any ffmpeg failure.
func (n *Normalizer) Apply(ctx context.Context, audio []byte) []byte {
	if len(audio) == 0 {
		return audio
	}
	if math.Abs(n.factor-1.0) <= 0.001 {
		return audio
	}

	out, err := n.run(ctx, audio)
	if err != nil {
		n.logger.WarnTag("TTS", "%v (%v), keeping original audio", platformerrors.ErrTranscodeUnavailable, err)
		return audio
	}
	return out
}

func (n *Normalizer) run(ctx context.Context, audio []byte) ([]byte, error) {
	dir, err := os.MkdirTemp("", "tempo-")
	if err != nil {
		return nil, fmt.Errorf("tempo workdir: %w", err)
	}
	defer os.RemoveAll(dir)

	src := filepath.Join(dir, "in.mp3")
	dst := filepath.Join(dir, "out.mp3")
	if err := os.WriteFile(src, audio, 0644); err != nil {
		return nil, fmt.Errorf("tempo input: %w", err)
	}

	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", src,
		"-filter:a", fmt.Sprintf("atempo=%.3f", n.factor),
		"-vn",
		dst,
	}
	cmd := exec.CommandContext(ctx, n.ffmpeg, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("ffmpeg atempo: %w: %s", err, strings.TrimSpace(string(output)))
	}

	out, err := os.ReadFile(dst)
	if err != nil {
		return nil, fmt.Errorf("tempo output: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("ffmpeg atempo produced no output")
	}

	if before, errB := Duration(audio); errB == nil {
		if after, errA := Duration(out); errA == nil {
			n.logger.DebugTag("TTS", "tempo %.3f applied: %v -> %v", n.factor, before, after)
		}
	}
	return out, nil
}

// Duration decodes an MP3 stream far enough to report its play time.
func Duration(audio []byte) (time.Duration, error) {
	decoder, err := mp3.NewDecoder(bytes.NewReader(audio))
	if err != nil {
		return 0, fmt.Errorf("mp3 decode: %w", err)
	}

	// Length is in bytes of 16-bit stereo PCM at the stream sample rate.
	samples := decoder.Length() / 4
	rate := decoder.SampleRate()
	if rate <= 0 {
		return 0, fmt.Errorf("mp3 sample rate unknown")
	}

	seconds := float64(samples) / float64(rate)
	return time.Duration(seconds * float64(time.Second)), nil
}
