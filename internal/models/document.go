package models

import "time"

// Document is a registered file plus its links. The payload itself lives in
// the blob store; FileRef is the key under which it was stored. Records
// migrated from older versions may still carry an inlined data: URI in
// FileRef until they are rewritten.
type Document struct {
	ID           string    `json:"id"`
	DocNumber    string    `json:"docNumber"` // PAM-DOC-YYYYMMDD-NNNN, assigned once
	Title        string    `json:"title"`
	FileName     string    `json:"fileName"`
	FileSize     int64     `json:"fileSize"`
	MimeType     string    `json:"mimeType"`
	FileRef      string    `json:"fileRef"`
	AssetIDs     []string  `json:"assetIds"` // the document owns the asset link
	UploadedByID string    `json:"uploadedById,omitempty"`
	RecipientIDs []string  `json:"recipientIds"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (d Document) EntityID() string {
	return d.ID
}

func (d Document) CreatedTime() time.Time {
	return d.CreatedAt
}

func (d Document) WithTimestamps(created, updated time.Time) Document {
	d.CreatedAt = created
	d.UpdatedAt = updated
	return d
}

// HasAsset reports whether the document is linked to the asset.
func (d Document) HasAsset(assetID string) bool {
	for _, id := range d.AssetIDs {
		if id == assetID {
			return true
		}
	}
	return false
}

// HasRecipient reports whether the person is a recipient of the document.
func (d Document) HasRecipient(personID string) bool {
	for _, id := range d.RecipientIDs {
		if id == personID {
			return true
		}
	}
	return false
}

// ReferencesPerson reports whether the person appears on the document in any
// role, uploader or recipient.
func (d Document) ReferencesPerson(personID string) bool {
	return d.UploadedByID == personID || d.HasRecipient(personID)
}
