package storage

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/Rethinkk/pam-registry/internal/models"
)

// RawRecord is one stored record before normalization.
type RawRecord = map[string]any

// SlotStore reads and writes whole entity slots. Reads tolerate every
// historical slot shape; writes always produce the canonical
// {<pluralKey>: [...]} wrapper in a single Put.
type SlotStore struct {
	kv     KV
	logger *zap.Logger
}

func NewSlotStore(kv KV, log *zap.Logger) *SlotStore {
	return &SlotStore{kv: kv, logger: log}
}

// KV exposes the underlying store, for collaborators that keep their own
// slots (the number counters).
func (s *SlotStore) KV() KV {
	return s.kv
}

// ReadSlot loads all raw records of the kind. A missing slot yields an empty
// list. Unparseable content also yields an empty list: corrupt data is
// logged and treated as absent, never surfaced to the caller.
func (s *SlotStore) ReadSlot(kind models.Kind) ([]RawRecord, error) {
	raw, ok, err := s.kv.Get(kind.SlotKey())
	if err != nil {
		return nil, err
	}
	if !ok || len(raw) == 0 {
		return nil, nil
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		s.logger.Warn("Slot content unparseable, treating as empty",
			zap.String("slot", kind.SlotKey()),
			zap.Error(err),
		)
		return nil, nil
	}

	switch v := parsed.(type) {
	case []any:
		// legacy bare-array shape
		return coerceRecords(v), nil
	case map[string]any:
		if list, ok := v[kind.PluralKey()].([]any); ok {
			return coerceRecords(list), nil
		}
		for _, legacy := range kind.LegacyKeys() {
			if list, ok := v[legacy].([]any); ok {
				s.logger.Info("Slot read through legacy wrapper key",
					zap.String("slot", kind.SlotKey()),
					zap.String("key", legacy),
				)
				return coerceRecords(list), nil
			}
		}
	}

	s.logger.Warn("Slot content has no recognizable shape, treating as empty",
		zap.String("slot", kind.SlotKey()),
	)
	return nil, nil
}

// WriteSlot persists the record list in the canonical wrapper shape. records
// may be any JSON-marshalable list (typed or raw).
func (s *SlotStore) WriteSlot(kind models.Kind, records any) error {
	payload, err := json.Marshal(map[string]any{kind.PluralKey(): records})
	if err != nil {
		return fmt.Errorf("marshal slot %q: %w", kind.SlotKey(), err)
	}
	return s.kv.Put(kind.SlotKey(), payload)
}

func coerceRecords(list []any) []RawRecord {
	out := make([]RawRecord, 0, len(list))
	for _, item := range list {
		if rec, ok := item.(map[string]any); ok {
			out = append(out, rec)
		}
	}
	return out
}
