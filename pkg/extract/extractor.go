package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/vmkteam/embedlog"
)

// Extractor turns a transcript into candidate transactions via a primary
// low-cost model with a secondary fallback. Both receive identical prompts.
// Parse failures never escape as errors: the result is an empty candidate
// list and the host routes it as "nothing financial".
type Extractor struct {
	primary   Completer
	secondary Completer
	log       embedlog.Logger
}

func NewExtractor(primary, secondary Completer, log embedlog.Logger) *Extractor {
	return &Extractor{
		primary:   primary,
		secondary: secondary,
		log:       log,
	}
}

// Extract runs the normal extraction pass.
func (e *Extractor) Extract(ctx context.Context, transcript string, now time.Time) Result {
	return e.run(ctx, systemPrompt, transcript, now)
}

// ExtractForced runs the second pass with a prompt that forbids empty output.
func (e *Extractor) ExtractForced(ctx context.Context, transcript string, now time.Time) Result {
	return e.run(ctx, forcingPrompt, transcript, now)
}

func (e *Extractor) run(ctx context.Context, prompt, transcript string, now time.Time) Result {
	userPrompt := buildUserPrompt(transcript, now)

	for _, client := range []Completer{e.primary, e.secondary} {
		if client == nil {
			continue
		}

		raw, err := client.Complete(ctx, prompt, userPrompt)
		if err != nil {
			e.log.Error(ctx, "llm call failed", "err", err)
			continue
		}

		res, err := parseResponse(raw)
		if err != nil {
			e.log.Error(ctx, "llm response malformed", "err", err, "response", raw)
			continue
		}

		return res
	}

	return Result{}
}

func buildUserPrompt(transcript string, now time.Time) string {
	return fmt.Sprintf("Bugungi sana: %s\n\nMatn: %s", now.Format("2006-01-02"), transcript)
}

// parseResponse enforces the output discipline: code fences stripped, input
// trimmed to the first balanced JSON object, extra objects ignored.
func parseResponse(raw string) (Result, error) {
	doc := firstJSONObject(stripFences(raw))
	if doc == "" {
		return Result{}, fmt.Errorf("no JSON object in response")
	}

	var mr modelResponse
	if err := json.Unmarshal([]byte(doc), &mr); err != nil {
		return Result{}, fmt.Errorf("decode transactions: %w", err)
	}

	res := Result{
		Candidates: mr.Transactions,
		Confidence: mr.Confidence,
	}

	for i := range res.Candidates {
		c := &res.Candidates[i]
		c.Currency = normalizeCurrencyCode(c.Currency)
		c.Counterparty = strings.TrimSpace(c.Counterparty)
		c.DueDateRaw = strings.TrimSpace(c.DueDateRaw)
	}

	return res, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// firstJSONObject returns the first balanced {...} in s, respecting strings.
func firstJSONObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}

	return ""
}
