// Package grammar defines the raw declaration model produced by scanning a C
// header: ordered items (includes, struct/enum declarations, function
// prototypes) whose types are still expressed in source shape, a qualifier
// wrapper around a recursive category. It is the input boundary of the
// manifest extraction pipeline; internal/manifest consumes it and never looks
// at header text itself.
//
// Items can come from the line scanner in this package or be constructed
// directly by another frontend; consumers must tolerate ItemOther entries and
// ignore them without error.
package grammar

import (
	"manifold/internal/source"
)

// ItemKind discriminates the parsed units of a header.
type ItemKind uint8

const (
	// ItemOther is anything the scanner does not model. Consumers skip it.
	ItemOther ItemKind = iota
	// ItemInclude is a referenced header path.
	ItemInclude
	// ItemStructIndicator is a forward struct declaration, name only.
	ItemStructIndicator
	// ItemStructDecl is a full struct definition.
	ItemStructDecl
	// ItemEnumDecl is an enum definition.
	ItemEnumDecl
	// ItemFunctionDecl is a function prototype.
	ItemFunctionDecl
)

func (k ItemKind) String() string {
	switch k {
	case ItemInclude:
		return "include"
	case ItemStructIndicator:
		return "struct-indicator"
	case ItemStructDecl:
		return "struct"
	case ItemEnumDecl:
		return "enum"
	case ItemFunctionDecl:
		return "function"
	case ItemOther:
		return "other"
	}
	return "unknown"
}

// Item is one parsed unit of a header, ordered as in source.
// Exactly one payload field is set according to Kind.
type Item struct {
	Kind ItemKind
	Span source.Span

	Include string        // ItemInclude: путь как записан в директиве
	Name    string        // ItemStructIndicator
	Struct  *StructDecl   // ItemStructDecl
	Enum    *EnumDecl     // ItemEnumDecl
	Func    *FunctionDecl // ItemFunctionDecl
	Raw     string        // ItemOther: исходный текст строки
}

// StructDecl is a full struct definition.
type StructDecl struct {
	Name   string
	Fields []Field
	Tags   []string
}

// Field is one struct member in declaration order.
type Field struct {
	Name string
	Type Type
}

// EnumDecl is an enum definition.
type EnumDecl struct {
	Name     string
	Variants []Variant
	Tags     []string
}

// Variant is one enum constant. Value is nil when the source did not fix the
// discriminant explicitly.
type Variant struct {
	Name  string
	Value *uint64
}

// FunctionDecl is a function prototype with its attached markers and doc
// comment lines.
type FunctionDecl struct {
	Name     string
	Markers  []Marker
	Params   []Param
	Return   Type
	Comments []string
}

// Param is one function parameter. Name may be empty for unnamed parameters.
type Param struct {
	Name string
	Type Type
}

// HasMarker reports whether the declaration carries the given marker.
func (d *FunctionDecl) HasMarker(m Marker) bool {
	if d == nil {
		return false
	}
	for _, have := range d.Markers {
		if have == m {
			return true
		}
	}
	return false
}

// Marker is an annotation macro attached to a declaration.
type Marker uint8

const (
	// MarkerExportMethod exports an instance method.
	MarkerExportMethod Marker = iota
	// MarkerExportStaticMethod exports a static method.
	MarkerExportStaticMethod
	// MarkerExportProperty exports an instance property accessor.
	MarkerExportProperty
	// MarkerExportStaticProperty exports a static property accessor.
	MarkerExportStaticProperty
)

// String returns the macro spelling recognized in header text.
func (m Marker) String() string {
	switch m {
	case MarkerExportMethod:
		return "TW_EXPORT_METHOD"
	case MarkerExportStaticMethod:
		return "TW_EXPORT_STATIC_METHOD"
	case MarkerExportProperty:
		return "TW_EXPORT_PROPERTY"
	case MarkerExportStaticProperty:
		return "TW_EXPORT_STATIC_PROPERTY"
	}
	return "TW_EXPORT_UNKNOWN"
}

var markerSpellings = map[string]Marker{
	"TW_EXPORT_METHOD":          MarkerExportMethod,
	"TW_EXPORT_STATIC_METHOD":   MarkerExportStaticMethod,
	"TW_EXPORT_PROPERTY":        MarkerExportProperty,
	"TW_EXPORT_STATIC_PROPERTY": MarkerExportStaticProperty,
}

// LookupMarker maps a macro spelling to its Marker.
func LookupMarker(word string) (Marker, bool) {
	m, ok := markerSpellings[word]
	return m, ok
}
