// Package manifest builds the normalized per-header description of a C
// header's public surface: imports, structs, enums, functions and properties
// in declaration order, with every type occurrence mapped onto a closed type
// system. The manifest is what downstream binding generators consume; nothing
// here resolves names across headers, references stay name-based.
package manifest

// FileInfo is the manifest for one header. Collections keep first-seen source
// order and are never nil once assembled, so artifacts encode [] rather than
// null.
type FileInfo struct {
	Name       string         `json:"name" yaml:"name"`
	Imports    []ImportInfo   `json:"imports" yaml:"imports"`
	Structs    []StructInfo   `json:"structs" yaml:"structs"`
	Enums      []EnumInfo     `json:"enums" yaml:"enums"`
	Functions  []MethodInfo   `json:"functions" yaml:"functions"`
	Properties []PropertyInfo `json:"properties" yaml:"properties"`
}

// ImportInfo — one included header, decomposed into path segments; the last
// segment keeps its extension.
type ImportInfo struct {
	Path []string `json:"path" yaml:"path"`
}

// StructInfo describes a struct definition or a forward indicator. Indicators
// carry empty fields and tags and are public by policy: у форварда нет
// маркера видимости, который мог бы это опровергнуть.
type StructInfo struct {
	Name     string      `json:"name" yaml:"name"`
	IsPublic bool        `json:"is_public" yaml:"is_public"`
	Fields   []FieldInfo `json:"fields" yaml:"fields"`
	Tags     []string    `json:"tags" yaml:"tags"`
}

// FieldInfo — one struct field.
type FieldInfo struct {
	Name string   `json:"name" yaml:"name"`
	Type TypeInfo `json:"type" yaml:"type"`
}

// EnumInfo describes an enum definition.
type EnumInfo struct {
	Name     string        `json:"name" yaml:"name"`
	IsPublic bool          `json:"is_public" yaml:"is_public"`
	Variants []VariantInfo `json:"variants" yaml:"variants"`
	Tags     []string      `json:"tags" yaml:"tags"`
}

// VariantInfo — one enum variant. Value stays nil when the source did not fix
// the discriminant; consumers assign the next available value themselves.
type VariantInfo struct {
	Name  string  `json:"name" yaml:"name"`
	Value *uint64 `json:"value" yaml:"value"`
}

// MethodInfo describes an exported function.
type MethodInfo struct {
	Name       string      `json:"name" yaml:"name"`
	IsPublic   bool        `json:"is_public" yaml:"is_public"`
	IsStatic   bool        `json:"is_static" yaml:"is_static"`
	Params     []ParamInfo `json:"params" yaml:"params"`
	ReturnType TypeInfo    `json:"return_type" yaml:"return_type"`
	Comments   []string    `json:"comments" yaml:"comments"`
}

// ParamInfo — one function parameter.
type ParamInfo struct {
	Name string   `json:"name" yaml:"name"`
	Type TypeInfo `json:"type" yaml:"type"`
}

// PropertyInfo describes an exported accessor: MethodInfo without params.
type PropertyInfo struct {
	Name       string   `json:"name" yaml:"name"`
	IsPublic   bool     `json:"is_public" yaml:"is_public"`
	IsStatic   bool     `json:"is_static" yaml:"is_static"`
	ReturnType TypeInfo `json:"return_type" yaml:"return_type"`
	Comments   []string `json:"comments" yaml:"comments"`
}
