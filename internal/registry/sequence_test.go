package registry

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Rethinkk/pam-registry/internal/models"
	"github.com/Rethinkk/pam-registry/internal/storage"
)

func newTestSequence(t *testing.T, now time.Time) (*Sequence, *storage.MemoryKV) {
	t.Helper()
	kv := storage.NewMemoryKV()
	seq := NewSequence(kv, "PAM", zap.NewNop())
	seq.now = func() time.Time { return now }
	return seq, kv
}

func TestSequenceMonotonicWithinDay(t *testing.T) {
	day := time.Date(2025, 9, 26, 8, 0, 0, 0, time.UTC)
	seq, _ := newTestSequence(t, day)

	for i := 1; i <= 12; i++ {
		num, err := seq.Next("ITM")
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("PAM-ITM-20250926-%04d", i), num)
	}
}

func TestSequencePerTypeCode(t *testing.T) {
	seq, _ := newTestSequence(t, time.Date(2025, 9, 26, 8, 0, 0, 0, time.UTC))

	a, err := seq.Next("ITM")
	require.NoError(t, err)
	b, err := seq.Next("VEH")
	require.NoError(t, err)

	assert.Equal(t, "PAM-ITM-20250926-0001", a)
	assert.Equal(t, "PAM-VEH-20250926-0001", b, "each type code counts independently")
}

func TestSequenceResetsPerDay(t *testing.T) {
	kv := storage.NewMemoryKV()
	seq := NewSequence(kv, "PAM", zap.NewNop())

	seq.now = func() time.Time { return time.Date(2025, 9, 26, 23, 59, 0, 0, time.UTC) }
	a, err := seq.Next("DOC")
	require.NoError(t, err)
	assert.Equal(t, "PAM-DOC-20250926-0001", a)

	seq.now = func() time.Time { return time.Date(2025, 9, 27, 0, 1, 0, 0, time.UTC) }
	b, err := seq.Next("DOC")
	require.NoError(t, err)
	assert.Equal(t, "PAM-DOC-20250927-0001", b)
}

func TestSequenceSurvivesCorruptCounterSlot(t *testing.T) {
	day := time.Date(2025, 9, 26, 8, 0, 0, 0, time.UTC)
	seq, kv := newTestSequence(t, day)

	require.NoError(t, kv.Put(models.CounterSlotKey, []byte(`not json`)))

	num, err := seq.Next("ITM")
	require.NoError(t, err)
	assert.Equal(t, "PAM-ITM-20250926-0001", num)
}

func TestSequencePersistsCounters(t *testing.T) {
	day := time.Date(2025, 9, 26, 8, 0, 0, 0, time.UTC)
	seq, kv := newTestSequence(t, day)

	_, err := seq.Next("ITM")
	require.NoError(t, err)

	// a fresh generator over the same store continues, not restarts
	seq2 := NewSequence(kv, "PAM", zap.NewNop())
	seq2.now = func() time.Time { return day }
	num, err := seq2.Next("ITM")
	require.NoError(t, err)
	assert.Equal(t, "PAM-ITM-20250926-0002", num)
}
