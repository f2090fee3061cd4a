package models

// FieldKind tells the form layer how to render and coerce a schema field.
type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldNumber   FieldKind = "number"
	FieldDate     FieldKind = "date"
	FieldSelect   FieldKind = "select"
	FieldCurrency FieldKind = "currency"
	FieldCheckbox FieldKind = "checkbox"
	FieldTextarea FieldKind = "textarea"
	FieldPassword FieldKind = "password"
	FieldURL      FieldKind = "url"
)

// FieldDef describes one field of an asset type schema.
type FieldDef struct {
	Key         string    `json:"key"`
	Label       string    `json:"label"`
	Kind        FieldKind `json:"kind"`
	Options     []string  `json:"options,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
}

// AssetTypeSchema is the field catalog for one asset type code.
type AssetTypeSchema struct {
	Code     string     `json:"code"`
	Label    string     `json:"label"`
	Required []FieldDef `json:"required"`
	Optional []FieldDef `json:"optional"`
}

// AssetSchemas is the fixed catalog of asset types the registry accepts.
var AssetSchemas = []AssetTypeSchema{
	{
		Code:  "ITM",
		Label: "IT equipment",
		Required: []FieldDef{
			{Key: "serialNumber", Label: "Serial number", Kind: FieldText, Placeholder: "SN-..."},
			{Key: "purchaseDate", Label: "Purchase date", Kind: FieldDate},
			{Key: "purchasePrice", Label: "Purchase price", Kind: FieldCurrency, Placeholder: "0.00"},
		},
		Optional: []FieldDef{
			{Key: "brand", Label: "Brand", Kind: FieldText},
			{Key: "model", Label: "Model", Kind: FieldText},
			{Key: "warrantyUntil", Label: "Warranty until", Kind: FieldDate},
			{Key: "notes", Label: "Notes", Kind: FieldTextarea},
		},
	},
	{
		Code:  "VEH",
		Label: "Vehicle",
		Required: []FieldDef{
			{Key: "vin", Label: "VIN / chassis number", Kind: FieldText},
			{Key: "registration", Label: "Registration plate", Kind: FieldText},
			{Key: "firstUse", Label: "Date of first use", Kind: FieldDate},
		},
		Optional: []FieldDef{
			{Key: "brand", Label: "Brand", Kind: FieldText},
			{Key: "model", Label: "Model", Kind: FieldText},
			{Key: "odometer", Label: "Odometer", Kind: FieldNumber, Placeholder: "0"},
			{Key: "notes", Label: "Notes", Kind: FieldTextarea},
		},
	},
	{
		Code:  "DLV",
		Label: "Driver's license",
		Required: []FieldDef{
			{Key: "issuingCountry", Label: "Issuing country", Kind: FieldText},
			{Key: "issuingCity", Label: "Issuing city", Kind: FieldText},
			{Key: "issueDate", Label: "Issue date", Kind: FieldDate},
			{Key: "expiryDate", Label: "Expiry date", Kind: FieldDate},
			{Key: "licenseNumber", Label: "License number", Kind: FieldText},
		},
		Optional: []FieldDef{
			{
				Key:     "licenseCategory",
				Label:   "License category",
				Kind:    FieldSelect,
				Options: []string{"A", "A1", "A2", "AM", "B", "BE", "C", "CE", "D", "DE", "T", "Other"},
			},
			{Key: "licensePin", Label: "License PIN", Kind: FieldPassword, Placeholder: "****"},
		},
	},
	{
		Code:  "ART",
		Label: "Art",
		Required: []FieldDef{
			{Key: "artworkName", Label: "Artwork name", Kind: FieldText},
			{Key: "purchaseDate", Label: "Purchase date", Kind: FieldDate},
			{Key: "purchasePrice", Label: "Purchase price", Kind: FieldCurrency, Placeholder: "0.00"},
			{Key: "hasCertificate", Label: "Certificate present", Kind: FieldCheckbox},
			{Key: "artistName", Label: "Artist name", Kind: FieldText},
			{Key: "artworkPhotoUrl", Label: "Artwork photo (URL)", Kind: FieldURL, Placeholder: "https://..."},
			{
				Key:     "artForm",
				Label:   "Art form",
				Kind:    FieldSelect,
				Options: []string{"Painting", "Sculpture", "Photography", "Drawing", "Installation", "Video", "Mixed media", "Other"},
			},
		},
		Optional: []FieldDef{
			{Key: "insurancePolicy", Label: "Insurance policy number", Kind: FieldText},
			{Key: "insuredValue", Label: "Insured value", Kind: FieldCurrency, Placeholder: "0.00"},
		},
	},
}

// SchemaByCode resolves a type code to its schema.
func SchemaByCode(code string) (AssetTypeSchema, bool) {
	for _, s := range AssetSchemas {
		if s.Code == code {
			return s, true
		}
	}
	return AssetTypeSchema{}, false
}
