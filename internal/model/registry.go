package model

// Primitive names the underlying value domain a field type carries.
type Primitive string

const (
	PrimitiveString Primitive = "string"
	PrimitiveNumber Primitive = "number"
	PrimitiveBool   Primitive = "bool"
	PrimitiveDate   Primitive = "date"
	PrimitiveFile   Primitive = "file"
)

// TypeInfo describes the validation and rendering contract of a FieldType.
type TypeInfo struct {
	Primitive       Primitive
	RequiresOptions bool
	Multiline       bool
	Default         any
}

// registry is the single source of truth for field-type behaviour. Keep it in
// sync with the FieldType constants; Describe rejects anything else.
var registry = map[FieldType]TypeInfo{
	FieldTypeText:     {Primitive: PrimitiveString, Default: ""},
	FieldTypeTextarea: {Primitive: PrimitiveString, Multiline: true, Default: ""},
	FieldTypeRichText: {Primitive: PrimitiveString, Multiline: true, Default: ""},
	FieldTypeEmail:    {Primitive: PrimitiveString, Default: ""},
	FieldTypeNumber:   {Primitive: PrimitiveNumber, Default: ""},
	FieldTypeDate:     {Primitive: PrimitiveDate, Default: ""},
	FieldTypeCheckbox: {Primitive: PrimitiveBool, Default: false},
	FieldTypeSelect:   {Primitive: PrimitiveString, RequiresOptions: true, Default: ""},
	FieldTypeFile:     {Primitive: PrimitiveFile, Default: ""},
}

// fieldTypeOrder fixes the display order editors present type choices in.
var fieldTypeOrder = []FieldType{
	FieldTypeText,
	FieldTypeTextarea,
	FieldTypeRichText,
	FieldTypeEmail,
	FieldTypeNumber,
	FieldTypeDate,
	FieldTypeCheckbox,
	FieldTypeSelect,
	FieldTypeFile,
}

// Describe returns the behaviour contract for a field type. Unknown types
// yield an *UnknownFieldTypeError so callers can mark the owning template
// inert instead of crashing the whole view.
func Describe(ft FieldType) (TypeInfo, error) {
	info, ok := registry[ft]
	if !ok {
		return TypeInfo{}, &UnknownFieldTypeError{Type: ft}
	}
	return info, nil
}

// KnownFieldType reports whether ft belongs to the closed enum.
func KnownFieldType(ft FieldType) bool {
	_, ok := registry[ft]
	return ok
}

// FieldTypes returns the supported types in their canonical display order.
func FieldTypes() []FieldType {
	return append([]FieldType(nil), fieldTypeOrder...)
}
