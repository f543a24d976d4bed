package extract

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind is the transaction kind as the extractor reports it. Debt kinds keep
// their direction here; the ledger collapses them on write.
type Kind string

const (
	KindIncome       Kind = "income"
	KindExpense      Kind = "expense"
	KindDebtLent     Kind = "debt-lent"
	KindDebtBorrowed Kind = "debt-borrowed"
)

// KnownKinds is the extractor-level whitelist.
var KnownKinds = map[Kind]bool{
	KindIncome:       true,
	KindExpense:      true,
	KindDebtLent:     true,
	KindDebtBorrowed: true,
}

// Amount accepts both JSON numbers and shorthand strings ("80k", "1.2 mln")
// from model output.
type Amount struct {
	decimal.Decimal
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		a.Decimal = decimal.Zero
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		d, err := ParseAmount(s)
		if err != nil {
			a.Decimal = decimal.Zero
			return nil
		}
		a.Decimal = d
		return nil
	}

	return a.Decimal.UnmarshalJSON(data)
}

// Candidate is one transaction the model extracted from an utterance.
type Candidate struct {
	Amount       Amount  `json:"amount"`
	Kind         Kind    `json:"kind"`
	Category     string  `json:"category"`
	Currency     string  `json:"currency"`
	Description  string  `json:"description,omitempty"`
	Counterparty string  `json:"counterparty,omitempty"`
	DueDateRaw   string  `json:"due_date,omitempty"`
	Confidence   float64 `json:"confidence"`
}

// Result is the extractor output for one utterance.
type Result struct {
	Candidates []Candidate
	Confidence float64
}

// Empty reports whether nothing financial was extracted.
func (r Result) Empty() bool {
	return len(r.Candidates) == 0
}

// modelResponse is the strict JSON document the system prompt demands.
type modelResponse struct {
	Transactions []Candidate `json:"transactions"`
	Confidence   float64     `json:"confidence"`
}

func normalizeCurrencyCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
