package models

import "time"

// Asset is one registered possession. The schema-specific fields live in
// Data, keyed by the field keys of the type schema identified by TypeCode.
type Asset struct {
	ID          string         `json:"id"`
	AssetNumber string         `json:"assetNumber"` // PAM-<CODE>-YYYYMMDD-NNNN, assigned once
	Name        string         `json:"name"`
	TypeCode    string         `json:"typeCode"`
	Data        map[string]any `json:"data"`
	PersonIDs   []string       `json:"personIds"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func (a Asset) EntityID() string {
	return a.ID
}

func (a Asset) CreatedTime() time.Time {
	return a.CreatedAt
}

func (a Asset) WithTimestamps(created, updated time.Time) Asset {
	a.CreatedAt = created
	a.UpdatedAt = updated
	return a
}

// HasPerson reports whether the person is linked to this asset.
func (a Asset) HasPerson(personID string) bool {
	for _, id := range a.PersonIDs {
		if id == personID {
			return true
		}
	}
	return false
}
