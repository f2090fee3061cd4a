// Package registry is the CRUD and query core: load-all, upsert, delete and
// lookup over normalized entities of one kind, backed by the slot store.
package registry

import (
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Rethinkk/pam-registry/internal/models"
	"github.com/Rethinkk/pam-registry/internal/notify"
	"github.com/Rethinkk/pam-registry/internal/storage"
)

// Entity is what a registry manages: an identified, timestamped record.
type Entity[T any] interface {
	EntityID() string
	CreatedTime() time.Time
	WithTimestamps(created, updated time.Time) T
}

// Registry provides CRUD over one entity kind. Callers validate records at
// the form boundary before Upsert; the registry only applies structural
// normalization.
type Registry[T Entity[T]] struct {
	kind      models.Kind
	store     *storage.SlotStore
	bus       *notify.Bus
	logger    *zap.Logger
	normalize func(storage.RawRecord, time.Time) T
	now       func() time.Time
}

func newRegistry[T Entity[T]](
	kind models.Kind,
	store *storage.SlotStore,
	bus *notify.Bus,
	log *zap.Logger,
	normalize func(storage.RawRecord, time.Time) T,
	now func() time.Time,
) *Registry[T] {
	return &Registry[T]{
		kind:      kind,
		store:     store,
		bus:       bus,
		logger:    log,
		normalize: normalize,
		now:       now,
	}
}

// QueryAll loads every record of the kind, normalized. The normalized result
// is not written back; the slot self-heals on the next mutation.
func (r *Registry[T]) QueryAll() ([]T, error) {
	raws, err := r.store.ReadSlot(r.kind)
	if err != nil {
		return nil, err
	}
	now := r.now()
	out := make([]T, 0, len(raws))
	for _, raw := range raws {
		out = append(out, r.normalize(raw, now))
	}
	return out, nil
}

// FindByID returns the record with the id, if any.
func (r *Registry[T]) FindByID(id string) (T, bool, error) {
	var zero T
	list, err := r.QueryAll()
	if err != nil {
		return zero, false, err
	}
	for _, rec := range list {
		if rec.EntityID() == id {
			return rec, true, nil
		}
	}
	return zero, false, nil
}

// Upsert normalizes the record and replaces the stored record with the same
// id, or appends it. The replace is whole-record; only createdAt is carried
// over from the existing record and updatedAt is always refreshed. The write
// is persisted before the change broadcast goes out.
func (r *Registry[T]) Upsert(rec T) (T, error) {
	var zero T
	raw, err := toRaw(rec)
	if err != nil {
		return zero, fmt.Errorf("normalize %s record: %w", r.kind, err)
	}
	now := r.now()
	rec = r.normalize(raw, now)
	rec = rec.WithTimestamps(rec.CreatedTime(), now)

	list, err := r.QueryAll()
	if err != nil {
		return zero, err
	}
	replaced := false
	for i := range list {
		if list[i].EntityID() == rec.EntityID() {
			rec = rec.WithTimestamps(list[i].CreatedTime(), now)
			list[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		list = append(list, rec)
	}

	if err := r.store.WriteSlot(r.kind, list); err != nil {
		r.logger.Error("Failed to persist upsert",
			zap.String("kind", r.kind.String()),
			zap.String("id", rec.EntityID()),
			zap.Error(err),
		)
		return zero, err
	}
	r.bus.Publish(notify.Event{Kind: r.kind, Op: notify.OpUpsert, ID: rec.EntityID(), At: now})
	return rec, nil
}

// DeleteByID removes the record and reports whether anything was removed.
// Cascades across kinds live on Service, not here.
func (r *Registry[T]) DeleteByID(id string) (bool, error) {
	list, err := r.QueryAll()
	if err != nil {
		return false, err
	}
	kept := make([]T, 0, len(list))
	removed := false
	for _, rec := range list {
		if rec.EntityID() == id {
			removed = true
			continue
		}
		kept = append(kept, rec)
	}
	if !removed {
		return false, nil
	}
	if err := r.store.WriteSlot(r.kind, kept); err != nil {
		r.logger.Error("Failed to persist delete",
			zap.String("kind", r.kind.String()),
			zap.String("id", id),
			zap.Error(err),
		)
		return false, err
	}
	r.bus.Publish(notify.Event{Kind: r.kind, Op: notify.OpDelete, ID: id, At: r.now()})
	return true, nil
}

func toRaw(v any) (storage.RawRecord, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var raw storage.RawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
