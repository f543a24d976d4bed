package speech

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmkteam/embedlog"
)

type stubProvider struct {
	name     string
	max      time.Duration
	boost    bool
	text     string
	err      error
	attempts int
	gotBoost []Phrase
}

func (s *stubProvider) Name() string               { return s.name }
func (s *stubProvider) MaxDuration() time.Duration { return s.max }
func (s *stubProvider) SupportsPhraseBoost() bool  { return s.boost }

func (s *stubProvider) Transcribe(_ context.Context, _ []byte, _ string, boost []Phrase) (string, error) {
	s.attempts++
	s.gotBoost = boost
	return s.text, s.err
}

func newChain(providers ...Provider) *Transcriber {
	return NewTranscriber(providers, []string{"uz", "ru"}, embedlog.NewLogger(false, true))
}

func TestTranscribeFirstProviderWins(t *testing.T) {
	first := &stubProvider{name: "cloud", max: time.Hour, boost: true, text: "50 ming somsa oldim"}
	second := &stubProvider{name: "local", max: time.Hour, text: "unused"}

	got, err := newChain(first, second).Transcribe(context.Background(), []byte("opus"), 10*time.Second)
	require.NoError(t, err)
	assert.Equal(t, "50 ming somsa oldim", got)
	assert.Zero(t, second.attempts)
	assert.NotEmpty(t, first.gotBoost, "boost-capable provider receives the domain vocabulary")
}

func TestTranscribeFallsThroughErrors(t *testing.T) {
	first := &stubProvider{name: "cloud", max: time.Hour, err: errors.New("quota")}
	second := &stubProvider{name: "local", max: time.Hour, text: "oylik keldi"}

	got, err := newChain(first, second).Transcribe(context.Background(), []byte("opus"), 10*time.Second)
	require.NoError(t, err)
	assert.Equal(t, "oylik keldi", got)
	// first provider was tried for every language before falling through
	assert.Equal(t, 2, first.attempts)
}

func TestTranscribeSkipsTooLong(t *testing.T) {
	short := &stubProvider{name: "cloud", max: time.Minute, text: "unused"}
	long := &stubProvider{name: "local", max: time.Hour, text: "uzun xabar matni"}

	got, err := newChain(short, long).Transcribe(context.Background(), []byte("opus"), 5*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "uzun xabar matni", got)
	assert.Zero(t, short.attempts)
	assert.Empty(t, long.gotBoost, "provider without boost support gets none")
}

func TestTranscribeEmptyIsNegative(t *testing.T) {
	blank := &stubProvider{name: "cloud", max: time.Hour, text: "   "}
	backup := &stubProvider{name: "local", max: time.Hour, text: "matn"}

	got, err := newChain(blank, backup).Transcribe(context.Background(), []byte("opus"), time.Second)
	require.NoError(t, err)
	assert.Equal(t, "matn", got)
}

func TestTranscribeAllFail(t *testing.T) {
	p := &stubProvider{name: "cloud", max: time.Hour, err: errors.New("down")}

	_, err := newChain(p).Transcribe(context.Background(), []byte("opus"), time.Second)
	assert.ErrorIs(t, err, ErrNoTranscript)
}
