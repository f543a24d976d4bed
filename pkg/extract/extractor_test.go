package extract

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmkteam/embedlog"
)

type stubCompleter struct {
	resp  string
	err   error
	calls int
}

func (s *stubCompleter) Complete(_ context.Context, _, _ string) (string, error) {
	s.calls++
	return s.resp, s.err
}

const validResponse = `{"transactions":[{"amount":"50 ming","kind":"expense","category":"oziq-ovqat","currency":"UZS","confidence":0.9}],"confidence":0.9}`

func testLogger() embedlog.Logger {
	return embedlog.NewLogger(false, true)
}

func TestExtractPrimary(t *testing.T) {
	primary := &stubCompleter{resp: validResponse}
	secondary := &stubCompleter{resp: `{"transactions":[],"confidence":0}`}

	e := NewExtractor(primary, secondary, testLogger())
	res := e.Extract(context.Background(), "50 ming somsa oldim", time.Now())

	require.Len(t, res.Candidates, 1)
	assert.Equal(t, int64(50_000), res.Candidates[0].Amount.IntPart())
	assert.Equal(t, KindExpense, res.Candidates[0].Kind)
	assert.Equal(t, 0.9, res.Confidence)
	assert.Zero(t, secondary.calls, "secondary must not be called when primary succeeds")
}

func TestExtractFallsBackOnError(t *testing.T) {
	primary := &stubCompleter{err: errors.New("rate limited")}
	secondary := &stubCompleter{resp: validResponse}

	e := NewExtractor(primary, secondary, testLogger())
	res := e.Extract(context.Background(), "50 ming somsa oldim", time.Now())

	require.Len(t, res.Candidates, 1)
	assert.Equal(t, 1, secondary.calls)
}

func TestExtractFallsBackOnGarbage(t *testing.T) {
	primary := &stubCompleter{resp: "kechirasiz, tushunmadim"}
	secondary := &stubCompleter{resp: validResponse}

	e := NewExtractor(primary, secondary, testLogger())
	res := e.Extract(context.Background(), "50 ming somsa oldim", time.Now())

	require.Len(t, res.Candidates, 1)
}

func TestExtractAllFail(t *testing.T) {
	primary := &stubCompleter{err: errors.New("down")}
	secondary := &stubCompleter{err: errors.New("down")}

	e := NewExtractor(primary, secondary, testLogger())
	res := e.Extract(context.Background(), "50 ming somsa oldim", time.Now())

	assert.True(t, res.Empty())
	assert.Zero(t, res.Confidence)
}

func TestParseResponseFenced(t *testing.T) {
	raw := "```json\n" + validResponse + "\n```"
	res, err := parseResponse(raw)
	require.NoError(t, err)
	assert.Len(t, res.Candidates, 1)
}

func TestParseResponseChatter(t *testing.T) {
	raw := "Mana natija:\n" + validResponse + "\nYana savol bormi?"
	res, err := parseResponse(raw)
	require.NoError(t, err)
	require.Len(t, res.Candidates, 1)
	assert.Equal(t, "UZS", res.Candidates[0].Currency)
}

func TestParseResponseNoJSON(t *testing.T) {
	_, err := parseResponse("hech narsa topilmadi")
	assert.Error(t, err)
}

func TestFirstJSONObject(t *testing.T) {
	assert.Equal(t, `{"a":{"b":1}}`, firstJSONObject(`x {"a":{"b":1}} y`))
	assert.Equal(t, `{"a":"}"}`, firstJSONObject(`{"a":"}"}`))
	assert.Equal(t, "", firstJSONObject(`{"a":1`))
	assert.Equal(t, "", firstJSONObject("no braces"))
}

func TestAmountUnmarshal(t *testing.T) {
	var c Candidate
	require.NoError(t, json.Unmarshal([]byte(`{"amount":125000,"kind":"income"}`), &c))
	assert.Equal(t, int64(125_000), c.Amount.IntPart())

	require.NoError(t, json.Unmarshal([]byte(`{"amount":"1.2 mln","kind":"income"}`), &c))
	assert.Equal(t, int64(1_200_000), c.Amount.IntPart())

	// unparsable shorthand degrades to zero instead of failing the document
	require.NoError(t, json.Unmarshal([]byte(`{"amount":"ko'p","kind":"income"}`), &c))
	assert.True(t, c.Amount.IsZero())
}
