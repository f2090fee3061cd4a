package registry

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Rethinkk/pam-registry/internal/models"
	"github.com/Rethinkk/pam-registry/internal/storage"
)

// Sequence hands out human-readable display numbers of the form
// PREFIX-TYPECODE-YYYYMMDD-NNNN. The counter map is persisted per
// (typeCode, day) and resets each calendar day. Numbers are monotonic and
// gap-tolerant: a failed creation simply skips its number.
//
// The read-modify-write on the counter slot is serialized in-process by the
// mutex. Two separate processes sharing the store can still race; uniqueness
// is only guaranteed for a single writer.
type Sequence struct {
	kv     storage.KV
	prefix string
	logger *zap.Logger
	now    func() time.Time

	mu sync.Mutex
}

func NewSequence(kv storage.KV, prefix string, log *zap.Logger) *Sequence {
	return &Sequence{
		kv:     kv,
		prefix: prefix,
		logger: log,
		now:    time.Now,
	}
}

// Next reserves and returns the next display number for the type code.
func (s *Sequence) Next(typeCode string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := s.now().Format("20060102")
	key := typeCode + ":" + day

	counters := s.readCounters()
	n := counters[key] + 1
	counters[key] = n

	payload, err := json.Marshal(counters)
	if err != nil {
		return "", fmt.Errorf("marshal counters: %w", err)
	}
	if err := s.kv.Put(models.CounterSlotKey, payload); err != nil {
		return "", fmt.Errorf("persist counters: %w", err)
	}
	return fmt.Sprintf("%s-%s-%s-%04d", s.prefix, typeCode, day, n), nil
}

func (s *Sequence) readCounters() map[string]int {
	counters := make(map[string]int)
	raw, ok, err := s.kv.Get(models.CounterSlotKey)
	if err != nil || !ok {
		if err != nil {
			s.logger.Warn("Counter slot unreadable, starting fresh", zap.Error(err))
		}
		return counters
	}
	if err := json.Unmarshal(raw, &counters); err != nil {
		s.logger.Warn("Counter slot unparseable, starting fresh", zap.Error(err))
		return make(map[string]int)
	}
	return counters
}
