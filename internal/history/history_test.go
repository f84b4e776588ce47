package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAppendAndRecent(t *testing.T) {
	s := openTestStore(t)

	base := time.Now()
	for i, prompt := range []string{"first", "second", "third"} {
		_, err := s.Append(&Delivery{
			Timestamp:   base.Add(time.Duration(i) * time.Second),
			SessionID:   "s1",
			TargetTitle: "Windows Terminal",
			Prompt:      prompt,
			Outcome:     OutcomeDelivered,
		})
		require.NoError(t, err)
	}

	got, err := s.Recent(2)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "third", got[0].Prompt)
	assert.Equal(t, "second", got[1].Prompt)
	assert.Equal(t, OutcomeDelivered, got[0].Outcome)
	assert.Equal(t, "Windows Terminal", got[0].TargetTitle)
}

func TestAppendDefaultsTimestamp(t *testing.T) {
	s := openTestStore(t)

	before := time.Now()
	_, err := s.Append(&Delivery{Prompt: "p", Outcome: OutcomeFailed})
	require.NoError(t, err)

	got, err := s.Recent(1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.False(t, got[0].Timestamp.Before(before.Add(-time.Second)),
		"timestamp should default to now")
}

func TestPrune(t *testing.T) {
	s := openTestStore(t)

	base := time.Now()
	for i := 0; i < 10; i++ {
		_, err := s.Append(&Delivery{
			Timestamp: base.Add(time.Duration(i) * time.Second),
			Prompt:    "p",
			Outcome:   OutcomeDelivered,
		})
		require.NoError(t, err)
	}

	deleted, err := s.Prune(3)
	require.NoError(t, err)
	assert.Equal(t, int64(7), deleted)

	got, err := s.Recent(100)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestRecentOnEmptyStore(t *testing.T) {
	s := openTestStore(t)

	got, err := s.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
