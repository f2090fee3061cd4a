package models

import "time"

// PersonRole classifies how a person relates to the registry owner.
type PersonRole string

const (
	RolePrimaryUser     PersonRole = "primary-user"
	RolePartner         PersonRole = "partner"
	RoleChild           PersonRole = "child"
	RoleDelegate        PersonRole = "delegate"
	RoleServiceProvider PersonRole = "service-provider"
	RoleOther           PersonRole = "other"
)

func (r PersonRole) String() string {
	return string(r)
}

// PersonRoles lists every accepted role value.
var PersonRoles = []PersonRole{
	RolePrimaryUser,
	RolePartner,
	RoleChild,
	RoleDelegate,
	RoleServiceProvider,
	RoleOther,
}

// ValidPersonRole reports whether the value is one of the fixed roles.
func ValidPersonRole(v string) bool {
	for _, r := range PersonRoles {
		if string(r) == v {
			return true
		}
	}
	return false
}

// Person is someone an asset or document can be linked to.
type Person struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Role      PersonRole `json:"role"`
	Email     string     `json:"email,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (p Person) EntityID() string {
	return p.ID
}

func (p Person) CreatedTime() time.Time {
	return p.CreatedAt
}

func (p Person) WithTimestamps(created, updated time.Time) Person {
	p.CreatedAt = created
	p.UpdatedAt = updated
	return p
}
