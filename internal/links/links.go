// Package links maintains the relations between assets, documents and
// people. Links are id arrays on the owning record: the document owns its
// asset links, the asset owns its person links, the document owns its
// uploader and recipients. Every mutation goes through the registry so
// updatedAt and change broadcasts keep working; nothing here writes to
// storage directly.
package links

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Rethinkk/pam-registry/internal/models"
	"github.com/Rethinkk/pam-registry/internal/registry"
)

// PersonRelation names the two ways a person can be attached to a document.
type PersonRelation string

const (
	RelationUploadedBy PersonRelation = "uploadedBy" // single-valued, overwrites
	RelationRecipient  PersonRelation = "recipient"  // multi-valued, adds to the set
)

// Manager implements the link and unlink operations. All of them are
// idempotent, and linking against a missing record is a no-op rather than an
// error.
type Manager struct {
	svc    *registry.Service
	logger *zap.Logger
}

func NewManager(svc *registry.Service, log *zap.Logger) *Manager {
	return &Manager{svc: svc, logger: log}
}

// LinkAssetDocument adds the asset to the document's asset links. No-op when
// either side does not exist or the link is already present.
func (m *Manager) LinkAssetDocument(assetID, docID string) error {
	if _, ok, err := m.svc.Assets.FindByID(assetID); err != nil || !ok {
		return err
	}
	doc, ok, err := m.svc.Documents.FindByID(docID)
	if err != nil || !ok {
		return err
	}
	if doc.HasAsset(assetID) {
		return nil
	}
	doc.AssetIDs = append(doc.AssetIDs, assetID)
	_, err = m.svc.Documents.Upsert(doc)
	return err
}

// UnlinkAssetDocument removes the asset from the document's asset links.
func (m *Manager) UnlinkAssetDocument(assetID, docID string) error {
	doc, ok, err := m.svc.Documents.FindByID(docID)
	if err != nil || !ok {
		return err
	}
	if !doc.HasAsset(assetID) {
		return nil
	}
	doc.AssetIDs = remove(doc.AssetIDs, assetID)
	_, err = m.svc.Documents.Upsert(doc)
	return err
}

// LinkAssetPerson adds the person to the asset's person links.
func (m *Manager) LinkAssetPerson(assetID, personID string) error {
	if _, ok, err := m.svc.People.FindByID(personID); err != nil || !ok {
		return err
	}
	asset, ok, err := m.svc.Assets.FindByID(assetID)
	if err != nil || !ok {
		return err
	}
	if asset.HasPerson(personID) {
		return nil
	}
	asset.PersonIDs = append(asset.PersonIDs, personID)
	_, err = m.svc.Assets.Upsert(asset)
	return err
}

// UnlinkAssetPerson removes the person from the asset's person links.
func (m *Manager) UnlinkAssetPerson(assetID, personID string) error {
	asset, ok, err := m.svc.Assets.FindByID(assetID)
	if err != nil || !ok {
		return err
	}
	if !asset.HasPerson(personID) {
		return nil
	}
	asset.PersonIDs = remove(asset.PersonIDs, personID)
	_, err = m.svc.Assets.Upsert(asset)
	return err
}

// LinkDocumentPerson attaches the person to the document in the given
// relation. uploadedBy overwrites; recipient adds to the set.
func (m *Manager) LinkDocumentPerson(docID, personID string, relation PersonRelation) error {
	if _, ok, err := m.svc.People.FindByID(personID); err != nil || !ok {
		return err
	}
	doc, ok, err := m.svc.Documents.FindByID(docID)
	if err != nil || !ok {
		return err
	}
	switch relation {
	case RelationUploadedBy:
		if doc.UploadedByID == personID {
			return nil
		}
		doc.UploadedByID = personID
	case RelationRecipient:
		if doc.HasRecipient(personID) {
			return nil
		}
		doc.RecipientIDs = append(doc.RecipientIDs, personID)
	default:
		return fmt.Errorf("unknown person relation %q", relation)
	}
	_, err = m.svc.Documents.Upsert(doc)
	return err
}

// UnlinkDocumentPerson detaches the person from the document in the given
// relation.
func (m *Manager) UnlinkDocumentPerson(docID, personID string, relation PersonRelation) error {
	doc, ok, err := m.svc.Documents.FindByID(docID)
	if err != nil || !ok {
		return err
	}
	switch relation {
	case RelationUploadedBy:
		if doc.UploadedByID != personID {
			return nil
		}
		doc.UploadedByID = ""
	case RelationRecipient:
		if !doc.HasRecipient(personID) {
			return nil
		}
		doc.RecipientIDs = remove(doc.RecipientIDs, personID)
	default:
		return fmt.Errorf("unknown person relation %q", relation)
	}
	_, err = m.svc.Documents.Upsert(doc)
	return err
}

// DocumentsForAsset returns every document linked to the asset.
func (m *Manager) DocumentsForAsset(assetID string) ([]models.Document, error) {
	docs, err := m.svc.Documents.QueryAll()
	if err != nil {
		return nil, err
	}
	out := make([]models.Document, 0)
	for _, d := range docs {
		if d.HasAsset(assetID) {
			out = append(out, d)
		}
	}
	return out, nil
}

// PersonsForAsset resolves the asset's person links. Ids that no longer
// resolve are omitted silently.
func (m *Manager) PersonsForAsset(assetID string) ([]models.Person, error) {
	asset, ok, err := m.svc.Assets.FindByID(assetID)
	if err != nil || !ok {
		return nil, err
	}
	people, err := m.svc.People.QueryAll()
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Person, len(people))
	for _, p := range people {
		byID[p.ID] = p
	}
	out := make([]models.Person, 0, len(asset.PersonIDs))
	for _, id := range asset.PersonIDs {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// AssetsForDocument resolves the document's asset links, omitting dangling
// ids.
func (m *Manager) AssetsForDocument(docID string) ([]models.Asset, error) {
	doc, ok, err := m.svc.Documents.FindByID(docID)
	if err != nil || !ok {
		return nil, err
	}
	assets, err := m.svc.Assets.QueryAll()
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Asset, len(assets))
	for _, a := range assets {
		byID[a.ID] = a
	}
	out := make([]models.Asset, 0, len(doc.AssetIDs))
	for _, id := range doc.AssetIDs {
		if a, ok := byID[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

// DocumentsForPerson returns every document the person appears on, as
// uploader or recipient.
func (m *Manager) DocumentsForPerson(personID string) ([]models.Document, error) {
	docs, err := m.svc.Documents.QueryAll()
	if err != nil {
		return nil, err
	}
	out := make([]models.Document, 0)
	for _, d := range docs {
		if d.ReferencesPerson(personID) {
			out = append(out, d)
		}
	}
	return out, nil
}

func remove(list []string, v string) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		if item != v {
			out = append(out, item)
		}
	}
	return out
}
