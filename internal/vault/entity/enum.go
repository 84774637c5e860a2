package entity

// UpdatableField is the closed set of credential columns that can be modified.
//
// Keeping the set closed means the update statement maps each value to a fixed
// column and never interpolates caller input into SQL.
type UpdatableField string

const (
	FieldUnknown      UpdatableField = ""
	FieldSupplierName UpdatableField = "supplier_name"
	FieldOfficeID     UpdatableField = "office_id"
	FieldLoginID      UpdatableField = "login_id"
	FieldPassword     UpdatableField = "password"
	FieldURL          UpdatableField = "url"
)

// ParseUpdatableField maps a raw string to a known field, or FieldUnknown.
func ParseUpdatableField(raw string) UpdatableField {
	switch UpdatableField(raw) {
	case FieldSupplierName, FieldOfficeID, FieldLoginID, FieldPassword, FieldURL:
		return UpdatableField(raw)
	default:
		return FieldUnknown
	}
}

// IsUnknown reports whether the field is outside the closed set.
func (f UpdatableField) IsUnknown() bool {
	return ParseUpdatableField(string(f)) == FieldUnknown
}

func (f UpdatableField) String() string {
	return string(f)
}
