package speech

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// WhisperLocal runs whisper-cli against an ffmpeg-converted wav. It is the
// last element of the chain: slower, no phrase boost, but no network.
type WhisperLocal struct {
	workDir string
	maxClip time.Duration
}

func NewWhisperLocal(workDir string, maxClip time.Duration) *WhisperLocal {
	return &WhisperLocal{
		workDir: workDir,
		maxClip: maxClip,
	}
}

func (w *WhisperLocal) Name() string               { return "whisper-local" }
func (w *WhisperLocal) MaxDuration() time.Duration { return w.maxClip }
func (w *WhisperLocal) SupportsPhraseBoost() bool  { return false }

func (w *WhisperLocal) Transcribe(ctx context.Context, audio []byte, language string, _ []Phrase) (string, error) {
	if err := os.MkdirAll(w.workDir, 0755); err != nil {
		return "", err
	}

	base := filepath.Join(w.workDir, uuid.NewString())
	ogg := base + ".ogg"
	wav := base + ".wav"
	defer os.Remove(ogg)
	defer os.Remove(wav)

	if err := os.WriteFile(ogg, audio, 0644); err != nil {
		return "", err
	}

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y", // overwrite output file without asking
		"-i", ogg,
		"-ac", "1", // 1 channel
		"-ar", "16000", // 16 kHz
		"-acodec", "pcm_s16le", // 16-bit little-endian PCM
		wav)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("ffmpeg error: %w, output: %s", err, string(output))
	}

	cmd = exec.CommandContext(ctx,
		"whisper-cli",
		"-f", wav,
		"-l", language,
		"-otxt",
		"-of", "-",
	)
	output, err = cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("whisper-cli error: %w, output: %s", err, string(output))
	}

	return string(output), nil
}
