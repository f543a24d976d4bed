package normalize

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmkteam/embedlog"

	"maqsad/pkg/extract"
)

type stubExtractor struct {
	normal extract.Result
	forced extract.Result

	forcedCalls int
}

func (s *stubExtractor) Extract(_ context.Context, _ string, _ time.Time) extract.Result {
	return s.normal
}

func (s *stubExtractor) ExtractForced(_ context.Context, _ string, _ time.Time) extract.Result {
	s.forcedCalls++
	return s.forced
}

func candidate(amount int64, kind extract.Kind, confidence float64) extract.Candidate {
	return extract.Candidate{
		Amount:     extract.Amount{Decimal: decimal.NewFromInt(amount)},
		Kind:       kind,
		Currency:   "UZS",
		Confidence: confidence,
	}
}

func newTestDisambiguator(ex extractor) *Disambiguator {
	return NewDisambiguator(ex, newTestNormalizer(), embedlog.NewLogger(false, true))
}

func TestDecideReject(t *testing.T) {
	// salutation: model returns empty with zero confidence
	ex := &stubExtractor{}
	d := newTestDisambiguator(ex)

	dec := d.Decide(context.Background(), "assalomu alaykum", testNow)

	assert.Equal(t, RouteReject, dec.Route)
	assert.Empty(t, dec.Drafts)
	assert.Zero(t, ex.forcedCalls, "explicit rejection skips the forcing pass")
}

func TestDecideAutoCommit(t *testing.T) {
	ex := &stubExtractor{normal: extract.Result{
		Candidates: []extract.Candidate{candidate(50_000, extract.KindExpense, 0.9)},
		Confidence: 0.9,
	}}
	d := newTestDisambiguator(ex)

	dec := d.Decide(context.Background(), "50 ming somsa oldim", testNow)

	assert.Equal(t, RouteAutoCommit, dec.Route)
	require.Len(t, dec.Drafts, 1)
	assert.Equal(t, []Bucket{BucketHigh}, dec.Buckets)
}

func TestDecideConfirmAll(t *testing.T) {
	ex := &stubExtractor{normal: extract.Result{
		Candidates: []extract.Candidate{
			candidate(50_000, extract.KindExpense, 0.9),
			candidate(20_000, extract.KindExpense, 0.8),
		},
		Confidence: 0.9,
	}}
	d := newTestDisambiguator(ex)

	dec := d.Decide(context.Background(), "somsa 50 ming, taksi 20 ming", testNow)

	assert.Equal(t, RouteConfirmAll, dec.Route)
	assert.Len(t, dec.Drafts, 2)
}

func TestDecidePreviewOnMixedConfidence(t *testing.T) {
	ex := &stubExtractor{normal: extract.Result{
		Candidates: []extract.Candidate{
			candidate(50_000, extract.KindExpense, 0.9),
			candidate(20_000, extract.KindExpense, 0.5),
		},
		Confidence: 0.9,
	}}
	d := newTestDisambiguator(ex)

	dec := d.Decide(context.Background(), "somsa va yana nimadir", testNow)

	assert.Equal(t, RoutePreview, dec.Route)
	assert.Equal(t, []Bucket{BucketHigh, BucketMedium}, dec.Buckets)
}

func TestDecideForcingPassRecovers(t *testing.T) {
	// first pass yields only an invalid candidate, forcing pass recovers
	ex := &stubExtractor{
		normal: extract.Result{
			Candidates: []extract.Candidate{candidate(0, extract.KindExpense, 0.5)},
			Confidence: 0.5,
		},
		forced: extract.Result{
			Candidates: []extract.Candidate{candidate(50_000, extract.KindExpense, 0.5)},
			Confidence: 0.5,
		},
	}
	d := newTestDisambiguator(ex)

	dec := d.Decide(context.Background(), "ellik ming ketdi", testNow)

	assert.Equal(t, 1, ex.forcedCalls)
	assert.Equal(t, RoutePreview, dec.Route)
	require.Len(t, dec.Drafts, 1)
	assert.False(t, dec.Drafts[0].Placeholder)
}

func TestDecideForcingPassPlaceholder(t *testing.T) {
	// forcing pass produces candidates, but validation drops them all:
	// a zero-amount placeholder is previewed instead of a hard reject
	ex := &stubExtractor{
		normal: extract.Result{
			Candidates: []extract.Candidate{candidate(0, extract.KindExpense, 0.3)},
			Confidence: 0.3,
		},
		forced: extract.Result{
			Candidates: []extract.Candidate{candidate(0, extract.KindExpense, 0.3)},
			Confidence: 0.3,
		},
	}
	d := newTestDisambiguator(ex)

	dec := d.Decide(context.Background(), "nimadir oldim", testNow)

	assert.Equal(t, RoutePreview, dec.Route)
	require.Len(t, dec.Drafts, 1)
	assert.True(t, dec.Drafts[0].Placeholder)
	assert.True(t, dec.Drafts[0].Amount.IsZero())
	assert.Equal(t, "UZS", dec.Drafts[0].Currency)
	assert.Equal(t, []Bucket{BucketLow}, dec.Buckets)
}

func TestDecideForcingPassStillEmpty(t *testing.T) {
	ex := &stubExtractor{
		normal: extract.Result{
			Candidates: []extract.Candidate{candidate(0, extract.KindExpense, 0.3)},
			Confidence: 0.3,
		},
		forced: extract.Result{},
	}
	d := newTestDisambiguator(ex)

	dec := d.Decide(context.Background(), "hmm", testNow)

	assert.Equal(t, RouteReject, dec.Route)
}

func TestBucketFor(t *testing.T) {
	assert.Equal(t, BucketHigh, BucketFor(0.7))
	assert.Equal(t, BucketHigh, BucketFor(1))
	assert.Equal(t, BucketMedium, BucketFor(0.4))
	assert.Equal(t, BucketMedium, BucketFor(0.69))
	assert.Equal(t, BucketLow, BucketFor(0.39))
	assert.Equal(t, BucketLow, BucketFor(0))
}
