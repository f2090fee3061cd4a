package registry

import (
	"time"

	"go.uber.org/zap"

	"github.com/Rethinkk/pam-registry/internal/models"
	"github.com/Rethinkk/pam-registry/internal/notify"
	"github.com/Rethinkk/pam-registry/internal/storage"
)

// DocNumberCode is the type code used in document display numbers.
const DocNumberCode = "DOC"

// Service composes the three registries over one slot store and owns the
// behavior that crosses kinds: display-number assignment at creation and the
// deletion cascades.
type Service struct {
	Assets    *Registry[models.Asset]
	Documents *Registry[models.Document]
	People    *Registry[models.Person]

	seq    *Sequence
	logger *zap.Logger
}

func NewService(store *storage.SlotStore, bus *notify.Bus, seq *Sequence, log *zap.Logger) *Service {
	s := &Service{seq: seq, logger: log}

	resolveAssetNumber := func(num string) (string, bool) {
		raws, err := store.ReadSlot(models.KindAsset)
		if err != nil {
			return "", false
		}
		for _, raw := range raws {
			if n, ok := raw["assetNumber"].(string); ok && n == num {
				if id, ok := raw["id"].(string); ok {
					return id, true
				}
			}
		}
		return "", false
	}

	s.Assets = newRegistry(models.KindAsset, store, bus, log, NormalizeAsset, utcNow)
	s.Documents = newRegistry(models.KindDocument, store, bus, log,
		func(raw storage.RawRecord, now time.Time) models.Document {
			return NormalizeDocument(raw, now, resolveAssetNumber)
		}, utcNow)
	s.People = newRegistry(models.KindPerson, store, bus, log, NormalizePerson, utcNow)
	return s
}

func utcNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// CreateAsset assigns a display number if the asset has none yet and
// persists it. The caller has already validated the record.
func (s *Service) CreateAsset(a models.Asset) (models.Asset, error) {
	if a.AssetNumber == "" {
		num, err := s.seq.Next(a.TypeCode)
		if err != nil {
			return models.Asset{}, err
		}
		a.AssetNumber = num
	}
	saved, err := s.Assets.Upsert(a)
	if err != nil {
		return models.Asset{}, err
	}
	s.logger.Info("Asset created",
		zap.String("id", saved.ID),
		zap.String("assetNumber", saved.AssetNumber),
		zap.String("typeCode", saved.TypeCode),
	)
	return saved, nil
}

// CreateDocument assigns a document number if missing and persists the
// document.
func (s *Service) CreateDocument(d models.Document) (models.Document, error) {
	if d.DocNumber == "" {
		num, err := s.seq.Next(DocNumberCode)
		if err != nil {
			return models.Document{}, err
		}
		d.DocNumber = num
	}
	saved, err := s.Documents.Upsert(d)
	if err != nil {
		return models.Document{}, err
	}
	s.logger.Info("Document created",
		zap.String("id", saved.ID),
		zap.String("docNumber", saved.DocNumber),
		zap.String("fileName", saved.FileName),
	)
	return saved, nil
}

// DeleteAsset removes the asset and strips its id from every document's
// asset links.
func (s *Service) DeleteAsset(id string) (bool, error) {
	removed, err := s.Assets.DeleteByID(id)
	if err != nil || !removed {
		return removed, err
	}
	docs, err := s.Documents.QueryAll()
	if err != nil {
		return true, err
	}
	for _, d := range docs {
		if !d.HasAsset(id) {
			continue
		}
		d.AssetIDs = without(d.AssetIDs, id)
		if _, err := s.Documents.Upsert(d); err != nil {
			return true, err
		}
	}
	s.logger.Info("Asset deleted with document link cascade", zap.String("id", id))
	return true, nil
}

// DeletePerson removes the person and strips their id from asset links and
// from document uploader/recipient fields.
func (s *Service) DeletePerson(id string) (bool, error) {
	removed, err := s.People.DeleteByID(id)
	if err != nil || !removed {
		return removed, err
	}

	assets, err := s.Assets.QueryAll()
	if err != nil {
		return true, err
	}
	for _, a := range assets {
		if !a.HasPerson(id) {
			continue
		}
		a.PersonIDs = without(a.PersonIDs, id)
		if _, err := s.Assets.Upsert(a); err != nil {
			return true, err
		}
	}

	docs, err := s.Documents.QueryAll()
	if err != nil {
		return true, err
	}
	for _, d := range docs {
		if !d.ReferencesPerson(id) {
			continue
		}
		if d.UploadedByID == id {
			d.UploadedByID = ""
		}
		d.RecipientIDs = without(d.RecipientIDs, id)
		if _, err := s.Documents.Upsert(d); err != nil {
			return true, err
		}
	}
	s.logger.Info("Person deleted with link cascade", zap.String("id", id))
	return true, nil
}

// DeleteDocument removes the document. Nothing references document ids, so
// no cascade is needed.
func (s *Service) DeleteDocument(id string) (bool, error) {
	return s.Documents.DeleteByID(id)
}

func without(list []string, v string) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		if item != v {
			out = append(out, item)
		}
	}
	return out
}
