package storage

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Rethinkk/pam-registry/internal/models"
)

func newTestStore(t *testing.T) (*SlotStore, *MemoryKV) {
	t.Helper()
	kv := NewMemoryKV()
	return NewSlotStore(kv, zap.NewNop()), kv
}

func TestReadSlotMissing(t *testing.T) {
	store, _ := newTestStore(t)
	records, err := store.ReadSlot(models.KindAsset)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestReadSlotShapes(t *testing.T) {
	tests := []struct {
		name    string
		kind    models.Kind
		payload string
		want    int
	}{
		{
			name:    "canonical wrapper",
			kind:    models.KindAsset,
			payload: `{"assets":[{"id":"a1"},{"id":"a2"}]}`,
			want:    2,
		},
		{
			name:    "legacy bare array",
			kind:    models.KindAsset,
			payload: `[{"id":"x","name":"Old"}]`,
			want:    1,
		},
		{
			name:    "legacy documents wrapper",
			kind:    models.KindDocument,
			payload: `{"documents":[{"id":"d1"}]}`,
			want:    1,
		},
		{
			name:    "legacy items wrapper",
			kind:    models.KindDocument,
			payload: `{"items":[{"id":"d1"},{"id":"d2"},{"id":"d3"}]}`,
			want:    3,
		},
		{
			name:    "corrupt json treated as empty",
			kind:    models.KindPerson,
			payload: `{"people": [truncated`,
			want:    0,
		},
		{
			name:    "unrecognized wrapper treated as empty",
			kind:    models.KindPerson,
			payload: `{"something":"else"}`,
			want:    0,
		},
		{
			name:    "non-object entries skipped",
			kind:    models.KindAsset,
			payload: `{"assets":[{"id":"a1"},"junk",42]}`,
			want:    1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, kv := newTestStore(t)
			require.NoError(t, kv.Put(tt.kind.SlotKey(), []byte(tt.payload)))

			records, err := store.ReadSlot(tt.kind)
			require.NoError(t, err)
			assert.Len(t, records, tt.want)
		})
	}
}

func TestWriteSlotCanonicalShape(t *testing.T) {
	store, kv := newTestStore(t)

	// seed the legacy bare-array shape
	require.NoError(t, kv.Put(models.KindAsset.SlotKey(), []byte(`[{"id":"x","name":"Old"}]`)))
	records, err := store.ReadSlot(models.KindAsset)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "x", records[0]["id"])

	// the next write produces the canonical wrapper
	require.NoError(t, store.WriteSlot(models.KindAsset, records))

	raw, ok, err := kv.Get(models.KindAsset.SlotKey())
	require.NoError(t, err)
	require.True(t, ok)

	var wrapper map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &wrapper))
	assert.Contains(t, wrapper, "assets")
	assert.Len(t, wrapper, 1)
}

func TestSlotRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)

	in := []RawRecord{
		{"id": "p1", "name": "Jan Jansen"},
		{"id": "p2", "name": "Piet Peters"},
	}
	require.NoError(t, store.WriteSlot(models.KindPerson, in))

	out, err := store.ReadSlot(models.KindPerson)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "p1", out[0]["id"])
	assert.Equal(t, "Jan Jansen", out[0]["name"])
	assert.Equal(t, "p2", out[1]["id"])
}
