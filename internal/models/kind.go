package models

// Kind identifies one entity family in the registry. Each kind owns a single
// persisted slot and a canonical plural key inside that slot.
type Kind string

const (
	KindAsset    Kind = "asset"
	KindDocument Kind = "document"
	KindPerson   Kind = "person"
)

func (k Kind) String() string {
	return string(k)
}

// SlotKey returns the persisted slot name for the kind. The names are kept
// stable so data written by earlier versions of the app keeps loading.
func (k Kind) SlotKey() string {
	switch k {
	case KindAsset:
		return "pam-assets-v1"
	case KindDocument:
		return "pam-docs-v1"
	case KindPerson:
		return "pam-people-v1"
	}
	return "pam-" + string(k) + "-v1"
}

// PluralKey is the canonical wrapper key a slot is always written with.
func (k Kind) PluralKey() string {
	switch k {
	case KindAsset:
		return "assets"
	case KindDocument:
		return "docs"
	case KindPerson:
		return "people"
	}
	return string(k) + "s"
}

// LegacyKeys lists wrapper keys older slot shapes used. They are accepted on
// read and rewritten to PluralKey on the next write.
func (k Kind) LegacyKeys() []string {
	switch k {
	case KindDocument:
		return []string{"documents", "items"}
	case KindAsset:
		return []string{"items"}
	case KindPerson:
		return []string{"persons", "items"}
	}
	return nil
}

// CounterSlotKey names the slot holding the display-number counters.
const CounterSlotKey = "pam-counters-v1"
