package registry

import (
	"time"

	"github.com/google/uuid"

	"github.com/Rethinkk/pam-registry/internal/models"
	"github.com/Rethinkk/pam-registry/internal/storage"
)

// The normalizers own all knowledge of legacy field names. Every alias an
// older version of the app ever wrote is mapped to its canonical field here,
// in one place, instead of ad hoc fallbacks at every call site. Each
// normalizer is idempotent: feeding its own output back in changes nothing.

// NormalizeAsset maps a raw asset record to its canonical form.
func NormalizeAsset(raw storage.RawRecord, now time.Time) models.Asset {
	created := timeField(raw, now, "createdAt")
	a := models.Asset{
		ID:          strField(raw, "id"),
		AssetNumber: strField(raw, "assetNumber", "number"),
		Name:        strField(raw, "name"),
		TypeCode:    strField(raw, "typeCode", "type"),
		Data:        mapField(raw, "data"),
		PersonIDs:   listField(raw, "personIds", "people", "personId"),
		CreatedAt:   created,
		UpdatedAt:   timeField(raw, created, "updatedAt"),
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return a
}

// AssetNumberResolver resolves a legacy display number to the asset id it
// belongs to. It may be nil, in which case unresolved numbers are dropped.
type AssetNumberResolver func(assetNumber string) (string, bool)

// NormalizeDocument maps a raw document record to its canonical form.
// Legacy assetNumbers entries are resolved to ids through resolve; numbers
// that no longer resolve are dropped, like any other dangling reference.
func NormalizeDocument(raw storage.RawRecord, now time.Time, resolve AssetNumberResolver) models.Document {
	created := timeField(raw, now, "createdAt", "uploadedAt")
	d := models.Document{
		ID:           strField(raw, "id"),
		DocNumber:    strField(raw, "docNumber", "number"),
		Title:        strField(raw, "title", "filename"),
		FileName:     strField(raw, "fileName", "filename"),
		FileSize:     int64Field(raw, "fileSize", "size"),
		MimeType:     strField(raw, "mimeType", "mime"),
		FileRef:      strField(raw, "fileRef", "fileContentRef", "fileDataUrl", "dataUrl"),
		AssetIDs:     listField(raw, "assetIds"),
		UploadedByID: strField(raw, "uploadedById", "uploadedBy"),
		RecipientIDs: listField(raw, "recipientIds", "recipients"),
		Notes:        strField(raw, "notes"),
		CreatedAt:    created,
	}
	d.UpdatedAt = timeField(raw, created, "updatedAt")
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.Title == "" {
		d.Title = "Document"
	}
	if d.MimeType == "" {
		d.MimeType = "application/octet-stream"
	}
	if resolve != nil {
		for _, num := range listField(raw, "assetNumbers") {
			if id, ok := resolve(num); ok && !contains(d.AssetIDs, id) {
				d.AssetIDs = append(d.AssetIDs, id)
			}
		}
	}
	return d
}

// personRoleAliases maps role values older records used to the fixed enum.
var personRoleAliases = map[string]models.PersonRole{
	"hoofdgebruiker": models.RolePrimaryUser,
	"kind":           models.RoleChild,
	"gemachtigde":    models.RoleDelegate,
	"dienstverlener": models.RoleServiceProvider,
	"overig":         models.RoleOther,
}

// NormalizePerson maps a raw person record to its canonical form.
func NormalizePerson(raw storage.RawRecord, now time.Time) models.Person {
	created := timeField(raw, now, "createdAt")
	p := models.Person{
		ID:        strField(raw, "id"),
		Name:      models.CollapseWhitespace(strField(raw, "name", "fullName")),
		Role:      normalizeRole(strField(raw, "role")),
		Email:     strField(raw, "email"),
		Phone:     strField(raw, "phone"),
		Notes:     strField(raw, "notes"),
		CreatedAt: created,
		UpdatedAt: timeField(raw, created, "updatedAt"),
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return p
}

func normalizeRole(v string) models.PersonRole {
	if models.ValidPersonRole(v) {
		return models.PersonRole(v)
	}
	if mapped, ok := personRoleAliases[v]; ok {
		return mapped
	}
	return models.RoleOther
}

// --- raw field accessors ---------------------------------------------------

func strField(raw storage.RawRecord, keys ...string) string {
	for _, k := range keys {
		if s, ok := raw[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func int64Field(raw storage.RawRecord, keys ...string) int64 {
	for _, k := range keys {
		switch v := raw[k].(type) {
		case float64:
			return int64(v)
		case int64:
			return v
		case int:
			return int64(v)
		}
	}
	return 0
}

// listField coerces a link field to a string slice. A bare scalar legacy
// value becomes a one-element list.
func listField(raw storage.RawRecord, keys ...string) []string {
	for _, k := range keys {
		switch v := raw[k].(type) {
		case []any:
			out := make([]string, 0, len(v))
			for _, item := range v {
				if s, ok := item.(string); ok && s != "" {
					out = append(out, s)
				}
			}
			return out
		case []string:
			return v
		case string:
			if v != "" {
				return []string{v}
			}
		}
	}
	return []string{}
}

func mapField(raw storage.RawRecord, key string) map[string]any {
	if m, ok := raw[key].(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// timeField parses the first parseable timestamp among keys, else returns
// fallback. A zero timestamp is the marshalled form of "never set" and is
// treated as absent. All times are normalized to UTC so records survive JSON
// round-trips unchanged.
func timeField(raw storage.RawRecord, fallback time.Time, keys ...string) time.Time {
	for _, k := range keys {
		s, ok := raw[k].(string)
		if !ok || s == "" {
			continue
		}
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil && !t.IsZero() {
			return t.UTC()
		}
	}
	return fallback.UTC()
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
