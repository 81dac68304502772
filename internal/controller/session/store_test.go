package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreGetPut(t *testing.T) {
	store := NewMemoryStore()

	_, ok := store.Get(100)
	assert.False(t, ok)

	store.Put(&Session{ChatID: 100, State: StateAwaitingContact})
	s, ok := store.Get(100)
	require.True(t, ok)
	assert.Equal(t, StateAwaitingContact, s.State)
	assert.False(t, s.Authenticated())

	s.TutorID = 7
	s, _ = store.Get(100)
	assert.True(t, s.Authenticated())

	store.Delete(100)
	_, ok = store.Get(100)
	assert.False(t, ok)
}

func TestMemoryStoreSweep(t *testing.T) {
	store := NewMemoryStore()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Put(&Session{ChatID: 1})
	store.Put(&Session{ChatID: 2})

	// One chat stays active, the other goes idle past the cutoff.
	now = now.Add(25 * time.Hour)
	store.Get(1)

	removed := store.Sweep(24 * time.Hour)
	assert.Equal(t, 1, removed)
	_, ok := store.Get(1)
	assert.True(t, ok)
	_, ok = store.Get(2)
	assert.False(t, ok)
}

func TestCapturedField(t *testing.T) {
	field, ok := AwaitingField("name").CapturedField()
	require.True(t, ok)
	assert.Equal(t, "name", field)

	_, ok = StateMainMenu.CapturedField()
	assert.False(t, ok)

	_, ok = State("awaiting_").CapturedField()
	assert.False(t, ok)
}

func TestPostingStore(t *testing.T) {
	store := NewPostingStore()
	assert.Nil(t, store.Get(5))

	store.Put(&PostingSession{ChatID: 5, Step: StepTitle})
	require.NotNil(t, store.Get(5))

	store.Delete(5)
	assert.Nil(t, store.Get(5))
}
