package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rethinkk/pam-registry/internal/models"
	"github.com/Rethinkk/pam-registry/internal/storage"
)

var testNow = time.Date(2025, 9, 26, 10, 30, 0, 0, time.UTC)

func TestNormalizeAssetAliases(t *testing.T) {
	raw := storage.RawRecord{
		"id":       "a1",
		"name":     "Tesla Model 3",
		"type":     "VEH",      // legacy alias for typeCode
		"personId": "p1",       // legacy scalar link field
		"number":   "PAM-VEH-20250926-0001",
	}
	a := NormalizeAsset(raw, testNow)

	assert.Equal(t, "a1", a.ID)
	assert.Equal(t, "VEH", a.TypeCode)
	assert.Equal(t, []string{"p1"}, a.PersonIDs, "scalar link coerced to one-element list")
	assert.Equal(t, "PAM-VEH-20250926-0001", a.AssetNumber)
	assert.Equal(t, testNow, a.CreatedAt)
	assert.Equal(t, testNow, a.UpdatedAt)
	assert.NotNil(t, a.Data)
}

func TestNormalizeAssetGeneratesID(t *testing.T) {
	a := NormalizeAsset(storage.RawRecord{"name": "Bike"}, testNow)
	assert.NotEmpty(t, a.ID)

	// an existing id is never overwritten
	b := NormalizeAsset(storage.RawRecord{"id": "keep", "name": "Bike"}, testNow)
	assert.Equal(t, "keep", b.ID)
}

func TestNormalizeDocumentAliases(t *testing.T) {
	raw := storage.RawRecord{
		"id":         "d1",
		"filename":   "invoice.pdf",
		"size":       float64(2048), // json numbers arrive as float64
		"mime":       "application/pdf",
		"dataUrl":    "data:application/pdf;base64,AAAA",
		"uploadedBy": "p1",
		"recipients": []any{"p2", "p3"},
		"uploadedAt": "2024-01-15T09:00:00Z",
	}
	d := NormalizeDocument(raw, testNow, nil)

	assert.Equal(t, "invoice.pdf", d.FileName)
	assert.Equal(t, "invoice.pdf", d.Title, "title falls back to the file name")
	assert.Equal(t, int64(2048), d.FileSize)
	assert.Equal(t, "application/pdf", d.MimeType)
	assert.Equal(t, "data:application/pdf;base64,AAAA", d.FileRef)
	assert.Equal(t, "p1", d.UploadedByID)
	assert.Equal(t, []string{"p2", "p3"}, d.RecipientIDs)
	assert.Equal(t, time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC), d.CreatedAt)
	assert.Equal(t, d.CreatedAt, d.UpdatedAt, "updatedAt falls back to createdAt")
}

func TestNormalizeDocumentDefaults(t *testing.T) {
	d := NormalizeDocument(storage.RawRecord{"id": "d1"}, testNow, nil)
	assert.Equal(t, "Document", d.Title)
	assert.Equal(t, "application/octet-stream", d.MimeType)
	assert.Equal(t, []string{}, d.AssetIDs)
	assert.Equal(t, []string{}, d.RecipientIDs)
}

func TestNormalizeDocumentResolvesAssetNumbers(t *testing.T) {
	resolve := func(num string) (string, bool) {
		if num == "PAM-ITM-20250926-0001" {
			return "a1", true
		}
		return "", false
	}
	raw := storage.RawRecord{
		"id":           "d1",
		"assetIds":     []any{"a9"},
		"assetNumbers": []any{"PAM-ITM-20250926-0001", "PAM-ITM-19990101-0042"},
	}
	d := NormalizeDocument(raw, testNow, resolve)

	// resolved numbers are merged in, unresolvable ones are dropped
	assert.Equal(t, []string{"a9", "a1"}, d.AssetIDs)
}

func TestNormalizePersonAliases(t *testing.T) {
	raw := storage.RawRecord{
		"id":       "p1",
		"fullName": "  Jan   Jansen ",
		"role":     "overig",
	}
	p := NormalizePerson(raw, testNow)

	assert.Equal(t, "Jan Jansen", p.Name, "name from fullName, whitespace collapsed")
	assert.Equal(t, models.RoleOther, p.Role)
}

func TestNormalizePersonUnknownRole(t *testing.T) {
	p := NormalizePerson(storage.RawRecord{"name": "X Y", "role": "alien"}, testNow)
	assert.Equal(t, models.RoleOther, p.Role)
}

func TestNormalizeIdempotent(t *testing.T) {
	assetRaw := storage.RawRecord{
		"name":     "MacBook Pro",
		"type":     "ITM",
		"personId": "p1",
		"data":     map[string]any{"serialNumber": "SN-1"},
	}
	docRaw := storage.RawRecord{
		"filename":   "inv.pdf",
		"size":       float64(100),
		"recipients": []any{"p2"},
	}
	personRaw := storage.RawRecord{"fullName": "Jan Jansen", "role": "kind"}

	a1 := NormalizeAsset(assetRaw, testNow)
	aRaw, err := toRaw(a1)
	require.NoError(t, err)
	assert.Equal(t, a1, NormalizeAsset(aRaw, testNow.Add(time.Hour)))

	d1 := NormalizeDocument(docRaw, testNow, nil)
	dRaw, err := toRaw(d1)
	require.NoError(t, err)
	assert.Equal(t, d1, NormalizeDocument(dRaw, testNow.Add(time.Hour), nil))

	p1 := NormalizePerson(personRaw, testNow)
	pRaw, err := toRaw(p1)
	require.NoError(t, err)
	assert.Equal(t, p1, NormalizePerson(pRaw, testNow.Add(time.Hour)))
}
