package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maqsad/pkg/normalize"
)

func TestStorePutGet(t *testing.T) {
	st := NewStore(time.Minute)

	sess := st.Put(7, "50 ming somsa", "", normalize.Decision{Route: normalize.RouteConfirmAll})
	require.NotEmpty(t, sess.ID)

	got := st.Get(sess.ID)
	require.NotNil(t, got)
	assert.Equal(t, 7, got.UserID)
	assert.Equal(t, "50 ming somsa", got.Utterance)
	assert.Equal(t, normalize.RouteConfirmAll, got.Decision.Route)

	assert.Nil(t, st.Get("unknown"))
}

func TestStoreExpiry(t *testing.T) {
	st := NewStore(10 * time.Millisecond)

	sess := st.Put(1, "oylik keldi", "", normalize.Decision{})
	sess.CreatedAt = time.Now().Add(-time.Second)

	assert.Nil(t, st.Get(sess.ID))
	// expired lookup also evicts
	st.mu.RLock()
	_, ok := st.sessions[sess.ID]
	st.mu.RUnlock()
	assert.False(t, ok)
}

func TestStoreDelete(t *testing.T) {
	st := NewStore(time.Minute)

	sess := st.Put(1, "qarz berdim", "", normalize.Decision{})
	st.Delete(sess.ID)
	assert.Nil(t, st.Get(sess.ID))
}

func TestStoreSweep(t *testing.T) {
	st := NewStore(time.Minute)

	stale := st.Put(1, "eski", "", normalize.Decision{})
	stale.CreatedAt = time.Now().Add(-2 * time.Minute)
	fresh := st.Put(2, "yangi", "", normalize.Decision{})

	assert.Equal(t, 1, st.Sweep())
	assert.Nil(t, st.Get(stale.ID))
	assert.NotNil(t, st.Get(fresh.ID))
}
