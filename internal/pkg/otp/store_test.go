package otp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore() (*Store, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	return NewStore(3 * time.Minute).WithClock(clock.Now), clock
}

func TestStore_IssueAndVerify(t *testing.T) {
	store, clock := newTestStore()

	code, expiresAt, err := store.Issue("INNO1001")
	require.NoError(t, err)
	assert.Len(t, code, 6)
	assert.Equal(t, clock.t.Add(3*time.Minute), expiresAt)

	require.NoError(t, store.Verify("INNO1001", code))

	// single use
	assert.ErrorIs(t, store.Verify("INNO1001", code), ErrNotFound)
}

func TestStore_Mismatch(t *testing.T) {
	store, _ := newTestStore()

	code, _, err := store.Issue("INNO1001")
	require.NoError(t, err)

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	assert.ErrorIs(t, store.Verify("INNO1001", wrong), ErrMismatch)
	assert.NoError(t, store.Verify("INNO1001", code))
}

func TestStore_Expired(t *testing.T) {
	store, clock := newTestStore()

	code, _, err := store.Issue("INNO1001")
	require.NoError(t, err)

	clock.Advance(3 * time.Minute)
	assert.ErrorIs(t, store.Verify("INNO1001", code), ErrExpired)
	assert.Equal(t, 0, store.Len())
}

func TestStore_ReissueReplacesCode(t *testing.T) {
	store, _ := newTestStore()

	first, _, err := store.Issue("INNO1001")
	require.NoError(t, err)
	second, _, err := store.Issue("INNO1001")
	require.NoError(t, err)

	assert.Equal(t, 1, store.Len())
	if first != second {
		assert.ErrorIs(t, store.Verify("INNO1001", first), ErrMismatch)
	}
	assert.NoError(t, store.Verify("INNO1001", second))
}

func TestStore_PurgeExpired(t *testing.T) {
	store, clock := newTestStore()

	_, _, err := store.Issue("A")
	require.NoError(t, err)
	clock.Advance(2 * time.Minute)
	_, _, err = store.Issue("B")
	require.NoError(t, err)

	clock.Advance(90 * time.Second)
	assert.Equal(t, 1, store.PurgeExpired())
	assert.Equal(t, 1, store.Len())
}
