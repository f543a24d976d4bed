package normalize

import (
	"time"

	"github.com/shopspring/decimal"

	"maqsad/pkg/extract"
)

// Draft is a validated transaction ready for commit or confirmation.
type Draft struct {
	Amount        decimal.Decimal
	Kind          extract.Kind
	Category      string
	Currency      string
	Counterparty  string
	DueDate       *time.Time
	Description   string
	Confidence    float64
	MissingFields []string
	Placeholder   bool
}

// IsDebt reports whether the draft is a debt-side transaction.
func (d Draft) IsDebt() bool {
	return d.Kind == extract.KindDebtLent || d.Kind == extract.KindDebtBorrowed
}

// Result is the validator output.
type Result struct {
	Valid          []Draft
	RejectedReason string
}

// Bucket is the confidence tier driving the UX path.
type Bucket int

const (
	BucketLow Bucket = iota
	BucketMedium
	BucketHigh
)

// BucketFor maps confidence to a tier: >= 0.7 high, 0.4..0.7 medium, < 0.4 low.
func BucketFor(confidence float64) Bucket {
	switch {
	case confidence >= 0.7:
		return BucketHigh
	case confidence >= 0.4:
		return BucketMedium
	default:
		return BucketLow
	}
}

// Route is the UX path chosen for a decision.
type Route int

const (
	// RouteReject: nothing financial recognized, show examples hint.
	RouteReject Route = iota
	// RouteAutoCommit: single high-confidence draft, shown and saved at once.
	RouteAutoCommit
	// RouteConfirmAll: several high-confidence drafts, combined confirmation card.
	RouteConfirmAll
	// RoutePreview: mixed confidence, per-draft save/discard controls.
	RoutePreview
)

// Decision is the disambiguator output for one utterance.
type Decision struct {
	Drafts  []Draft
	Buckets []Bucket
	Route   Route
}
