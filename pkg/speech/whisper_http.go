package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// WhisperHTTP recognizes speech via an OpenAI-compatible audio transcription
// endpoint (Groq whisper-large-v3 in production). Accepts opus directly, so
// Telegram voice clips go up without transcoding. Phrase boost is delivered
// through the prompt field.
type WhisperHTTP struct {
	endpoint string
	token    string
	model    string
	maxClip  time.Duration
	hc       *http.Client
}

func NewWhisperHTTP(endpoint, token, model string, maxClip time.Duration, timeout time.Duration) *WhisperHTTP {
	return &WhisperHTTP{
		endpoint: endpoint,
		token:    token,
		model:    model,
		maxClip:  maxClip,
		hc:       &http.Client{Timeout: timeout},
	}
}

func (w *WhisperHTTP) Name() string { return "whisper-http" }

func (w *WhisperHTTP) MaxDuration() time.Duration { return w.maxClip }

func (w *WhisperHTTP) SupportsPhraseBoost() bool { return true }

type transcriptionResponse struct {
	Text string `json:"text"`
}

func (w *WhisperHTTP) Transcribe(ctx context.Context, audio []byte, language string, boost []Phrase) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", "voice.ogg")
	if err != nil {
		return "", err
	}
	if _, err := part.Write(audio); err != nil {
		return "", err
	}

	_ = mw.WriteField("model", w.model)
	_ = mw.WriteField("language", language)
	if len(boost) > 0 {
		_ = mw.WriteField("prompt", boostPrompt(boost))
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.endpoint, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+w.token)

	resp, err := w.hc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("api error: %s", string(body))
	}

	var result transcriptionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse transcription response: %w", err)
	}

	return result.Text, nil
}

// boostPrompt folds the vocabulary into a priming prompt, highest weight first.
func boostPrompt(boost []Phrase) string {
	words := make([]string, 0, len(boost))
	for _, p := range boost {
		words = append(words, p.Text)
	}
	return strings.Join(words, ", ")
}
