package normalize

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vmkteam/embedlog"

	"maqsad/pkg/extract"
)

// extractor is the slice of the LLM extractor the disambiguator needs.
type extractor interface {
	Extract(ctx context.Context, transcript string, now time.Time) extract.Result
	ExtractForced(ctx context.Context, transcript string, now time.Time) extract.Result
}

// Disambiguator runs the extraction, validates, buckets drafts by confidence
// and picks the UX path. An empty validation result triggers a second forcing
// extraction pass; if that also yields nothing valid but the model produced
// something, a low-confidence placeholder is shown instead of rejecting.
type Disambiguator struct {
	ex  extractor
	nm  *Normalizer
	log embedlog.Logger
}

func NewDisambiguator(ex extractor, nm *Normalizer, log embedlog.Logger) *Disambiguator {
	return &Disambiguator{ex: ex, nm: nm, log: log}
}

// Decide runs the full text pipeline for one transcript.
func (d *Disambiguator) Decide(ctx context.Context, transcript string, now time.Time) Decision {
	res := d.ex.Extract(ctx, transcript, now)

	// Explicit did-not-understand from the model: empty list, zero confidence.
	// Salutations and substance-less inputs land here.
	if res.Empty() && res.Confidence == 0 {
		return Decision{Route: RouteReject}
	}

	nr := d.nm.Normalize(res, transcript, now)
	if len(nr.Valid) == 0 {
		d.log.Print(ctx, "validation emptied candidates, forcing second pass", "transcript", transcript)

		forced := d.ex.ExtractForced(ctx, transcript, now)
		nr = d.nm.Normalize(forced, transcript, now)
		if len(nr.Valid) == 0 {
			if forced.Empty() {
				return Decision{Route: RouteReject}
			}
			return placeholderDecision(d.nm.baseCurrency)
		}
	}

	return route(nr.Valid)
}

// DecideFromResult buckets an already-extracted result; used when the host
// holds the extraction (tests, replays).
func (d *Disambiguator) DecideFromResult(ctx context.Context, res extract.Result, transcript string, now time.Time) Decision {
	if res.Empty() && res.Confidence == 0 {
		return Decision{Route: RouteReject}
	}

	nr := d.nm.Normalize(res, transcript, now)
	if len(nr.Valid) == 0 {
		return Decision{Route: RouteReject}
	}

	return route(nr.Valid)
}

func route(drafts []Draft) Decision {
	buckets := make([]Bucket, len(drafts))
	allHigh := true
	for i, d := range drafts {
		buckets[i] = BucketFor(d.Confidence)
		if buckets[i] != BucketHigh {
			allHigh = false
		}
	}

	dec := Decision{Drafts: drafts, Buckets: buckets}
	switch {
	case allHigh && len(drafts) == 1:
		dec.Route = RouteAutoCommit
	case allHigh:
		dec.Route = RouteConfirmAll
	default:
		dec.Route = RoutePreview
	}

	return dec
}

// placeholderDecision emits one low-confidence draft with no amount. It is
// shown to the user but never auto-saved.
func placeholderDecision(currency string) Decision {
	d := Draft{
		Amount:      decimal.Zero,
		Kind:        extract.KindExpense,
		Category:    CategoryOther,
		Currency:    currency,
		Confidence:  0.1,
		Placeholder: true,
	}
	d.Description = "aniqlanmagan tranzaksiya"

	return Decision{
		Drafts:  []Draft{d},
		Buckets: []Bucket{BucketLow},
		Route:   RoutePreview,
	}
}
