package speech

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/vmkteam/embedlog"
)

// ErrNoTranscript means every provider in the chain failed or returned empty.
var ErrNoTranscript = errors.New("no transcript")

// Phrase is a domain word with a recognition boost weight.
type Phrase struct {
	Text  string
	Boost float64
}

// Provider is one speech-recognition backend with its capability set.
type Provider interface {
	Name() string
	// MaxDuration is the longest opus clip the provider accepts.
	MaxDuration() time.Duration
	// SupportsPhraseBoost reports whether the provider takes a vocabulary hint.
	SupportsPhraseBoost() bool
	// Transcribe recognizes an opus-encoded clip in the given language.
	// An empty transcript is a negative result, not an error.
	Transcribe(ctx context.Context, audio []byte, language string, boost []Phrase) (string, error)
}

// Transcriber tries an ordered provider chain until one returns a non-empty
// transcript. For each provider every language code is attempted in order.
// Provider errors and timeouts are logged, never surfaced; only the
// all-providers-failed condition yields ErrNoTranscript.
type Transcriber struct {
	providers []Provider
	languages []string
	boost     []Phrase
	log       embedlog.Logger
}

func NewTranscriber(providers []Provider, languages []string, log embedlog.Logger) *Transcriber {
	return &Transcriber{
		providers: providers,
		languages: languages,
		boost:     DomainPhrases(),
		log:       log,
	}
}

// Transcribe converts audio bytes to text. duration gates providers whose
// capability caps clip length.
func (t *Transcriber) Transcribe(ctx context.Context, audio []byte, duration time.Duration) (string, error) {
	for _, p := range t.providers {
		if duration > p.MaxDuration() {
			t.log.Print(ctx, "provider skipped, clip too long", "provider", p.Name(), "duration", duration)
			continue
		}

		var boost []Phrase
		if p.SupportsPhraseBoost() {
			boost = t.boost
		}

		for _, lang := range t.languages {
			text, err := p.Transcribe(ctx, audio, lang, boost)
			if err != nil {
				t.log.Error(ctx, "transcription attempt failed", "provider", p.Name(), "lang", lang, "err", err)
				continue
			}

			text = strings.TrimSpace(text)
			if text != "" {
				return text, nil
			}
		}
	}

	return "", ErrNoTranscript
}
