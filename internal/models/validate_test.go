package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAsset(t *testing.T) {
	valid := Asset{
		Name:     "MacBook Pro",
		TypeCode: "ITM",
		Data: map[string]any{
			"serialNumber":  "SN-1",
			"purchaseDate":  "2024-01-15",
			"purchasePrice": "1999.00",
		},
	}
	assert.NoError(t, ValidateAsset(valid))

	t.Run("missing name", func(t *testing.T) {
		a := valid
		a.Name = "   "
		err := ValidateAsset(a)
		require.Error(t, err)
		assert.Contains(t, err.(*ValidationError).Messages, "name is required")
	})

	t.Run("unknown type code", func(t *testing.T) {
		a := valid
		a.TypeCode = "XYZ"
		assert.Error(t, ValidateAsset(a))
	})

	t.Run("missing required schema field", func(t *testing.T) {
		a := valid
		a.Data = map[string]any{"serialNumber": "SN-1"}
		err := ValidateAsset(a)
		require.Error(t, err)
		verr := err.(*ValidationError)
		assert.Len(t, verr.Messages, 2, "one message per missing required field")
	})

	t.Run("blank required schema field", func(t *testing.T) {
		a := valid
		a.Data = map[string]any{
			"serialNumber":  "  ",
			"purchaseDate":  "2024-01-15",
			"purchasePrice": "1999.00",
		}
		assert.Error(t, ValidateAsset(a))
	})
}

func TestValidateDocument(t *testing.T) {
	assert.NoError(t, ValidateDocument(Document{Title: "Invoice", FileRef: "ref-1"}))

	err := ValidateDocument(Document{Title: "Invoice"})
	require.Error(t, err, "a document without a file must not be persisted")
	assert.Contains(t, err.(*ValidationError).Messages, "a file is required")

	assert.Error(t, ValidateDocument(Document{FileRef: "ref-1"}))
}

func TestValidatePerson(t *testing.T) {
	existing := []Person{
		{ID: "p1", Name: "Jan Jansen", Role: RolePrimaryUser, Email: "jan@x.nl"},
	}

	t.Run("valid", func(t *testing.T) {
		p := Person{Name: "Piet Peters", Role: RolePartner, Email: "piet@x.nl", Phone: "+31 6 12345678"}
		assert.NoError(t, ValidatePerson(p, existing))
	})

	t.Run("name too short after collapsing", func(t *testing.T) {
		p := Person{Name: " J ", Role: RoleOther}
		assert.Error(t, ValidatePerson(p, nil))
	})

	t.Run("unknown role", func(t *testing.T) {
		p := Person{Name: "Jan Jansen", Role: PersonRole("boss")}
		assert.Error(t, ValidatePerson(p, nil))
	})

	t.Run("malformed email", func(t *testing.T) {
		p := Person{Name: "Jan Jansen", Role: RoleOther, Email: "not-an-email"}
		assert.Error(t, ValidatePerson(p, nil))
	})

	t.Run("duplicate email", func(t *testing.T) {
		p := Person{ID: "p2", Name: "Jantje Jansen", Role: RoleChild, Email: "jan@x.nl"}
		err := ValidatePerson(p, existing)
		require.Error(t, err)
	})

	t.Run("duplicate email is case-insensitive and trimmed", func(t *testing.T) {
		p := Person{ID: "p2", Name: "Jantje Jansen", Role: RoleChild, Email: "  JAN@X.NL "}
		assert.Error(t, ValidatePerson(p, existing))
	})

	t.Run("own email does not collide on edit", func(t *testing.T) {
		p := Person{ID: "p1", Name: "Jan Jansen", Role: RolePrimaryUser, Email: "jan@x.nl"}
		assert.NoError(t, ValidatePerson(p, existing))
	})

	t.Run("malformed phone", func(t *testing.T) {
		p := Person{Name: "Jan Jansen", Role: RoleOther, Phone: "abc"}
		assert.Error(t, ValidatePerson(p, nil))
	})
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "Jan Jansen", CollapseWhitespace("  Jan \t Jansen \n"))
	assert.Equal(t, "", CollapseWhitespace("   "))
}

func TestSchemaByCode(t *testing.T) {
	s, ok := SchemaByCode("VEH")
	require.True(t, ok)
	assert.Equal(t, "Vehicle", s.Label)

	_, ok = SchemaByCode("NOPE")
	assert.False(t, ok)
}
