// Package model exposes the template, field and entry types the rest of the
// module consumes, re-exporting the internal implementations.
package model

import internalmodel "github.com/lumenarts/forge/internal/model"

// FieldType re-exports the closed field-type enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeText     = internalmodel.FieldTypeText
	FieldTypeTextarea = internalmodel.FieldTypeTextarea
	FieldTypeRichText = internalmodel.FieldTypeRichText
	FieldTypeEmail    = internalmodel.FieldTypeEmail
	FieldTypeNumber   = internalmodel.FieldTypeNumber
	FieldTypeDate     = internalmodel.FieldTypeDate
	FieldTypeCheckbox = internalmodel.FieldTypeCheckbox
	FieldTypeSelect   = internalmodel.FieldTypeSelect
	FieldTypeFile     = internalmodel.FieldTypeFile
)

type Primitive = internalmodel.Primitive

const (
	PrimitiveString = internalmodel.PrimitiveString
	PrimitiveNumber = internalmodel.PrimitiveNumber
	PrimitiveBool   = internalmodel.PrimitiveBool
	PrimitiveDate   = internalmodel.PrimitiveDate
	PrimitiveFile   = internalmodel.PrimitiveFile
)

type TypeInfo = internalmodel.TypeInfo
type Field = internalmodel.Field
type Template = internalmodel.Template
type Entry = internalmodel.Entry

type Issue = internalmodel.Issue
type Result = internalmodel.Result
type UnknownFieldTypeError = internalmodel.UnknownFieldTypeError

type Editor = internalmodel.Editor
type FieldPatch = internalmodel.FieldPatch

// Describe returns the behaviour contract for a field type.
func Describe(ft FieldType) (TypeInfo, error) { return internalmodel.Describe(ft) }

// KnownFieldType reports whether ft belongs to the closed enum.
func KnownFieldType(ft FieldType) bool { return internalmodel.KnownFieldType(ft) }

// FieldTypes lists the supported types in canonical order.
func FieldTypes() []FieldType { return internalmodel.FieldTypes() }

// Validate checks a template against the persistence gate, reporting every
// violated rule.
func Validate(t Template) Result { return internalmodel.Validate(t) }

// NewEditor starts an editing session over a copy of t.
func NewEditor(t Template) *Editor { return internalmodel.NewEditor(t) }

// NewDraft starts a session on an empty, unsaved template.
func NewDraft(title string) *Editor { return internalmodel.NewDraft(title) }
