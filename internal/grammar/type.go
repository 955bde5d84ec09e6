package grammar

// Qualifier is the three-way wrapper around every type category. Exactly one
// qualifier is active per type; that exclusivity is the reason this is a tag
// and not a set of booleans.
type Qualifier uint8

const (
	QualMutable Qualifier = iota
	QualConst
	QualExtern
)

func (q Qualifier) String() string {
	switch q {
	case QualMutable:
		return "mutable"
	case QualConst:
		return "const"
	case QualExtern:
		return "extern"
	}
	return "unknown"
}

// Type is a qualified type expression as it appears in a header.
type Type struct {
	Qual Qualifier
	Cat  Category
}

// Mutable wraps cat with the default qualifier.
func Mutable(cat Category) Type { return Type{Qual: QualMutable, Cat: cat} }

// Const wraps cat with the const qualifier.
func Const(cat Category) Type { return Type{Qual: QualConst, Cat: cat} }

// Extern wraps cat with the extern-linkage qualifier.
func Extern(cat Category) Type { return Type{Qual: QualExtern, Cat: cat} }

// CategoryKind discriminates type category shapes.
type CategoryKind uint8

const (
	// CatScalar is a recognized primitive keyword.
	CatScalar CategoryKind = iota
	// CatStruct is an explicit `struct X` reference.
	CatStruct
	// CatEnum is an explicit `enum X` reference.
	CatEnum
	// CatUnrecognized is a bare identifier the scanner does not know.
	CatUnrecognized
	// CatPointer is a pointer to the inner category.
	CatPointer
	// CatNullable marks the inner category explicitly nullable.
	CatNullable
)

func (k CategoryKind) String() string {
	switch k {
	case CatScalar:
		return "scalar"
	case CatStruct:
		return "struct"
	case CatEnum:
		return "enum"
	case CatUnrecognized:
		return "unrecognized"
	case CatPointer:
		return "pointer"
	case CatNullable:
		return "nullable"
	}
	return "unknown"
}

// Category is the recursive shape of a type expression. Scalar is set for
// CatScalar, Name for the named kinds, Inner for the wrapping kinds.
type Category struct {
	Kind   CategoryKind
	Scalar Scalar
	Name   string
	Inner  *Category
}

// NewScalar returns a primitive category.
func NewScalar(s Scalar) Category { return Category{Kind: CatScalar, Scalar: s} }

// NewStructRef returns an explicit struct reference category.
func NewStructRef(name string) Category { return Category{Kind: CatStruct, Name: name} }

// NewEnumRef returns an explicit enum reference category.
func NewEnumRef(name string) Category { return Category{Kind: CatEnum, Name: name} }

// NewUnrecognized returns a named category for an unknown keyword.
func NewUnrecognized(name string) Category { return Category{Kind: CatUnrecognized, Name: name} }

// NewPointer wraps inner in a pointer category.
func NewPointer(inner Category) Category {
	return Category{Kind: CatPointer, Inner: &inner}
}

// NewNullable wraps inner in an explicitly-nullable category.
func NewNullable(inner Category) Category {
	return Category{Kind: CatNullable, Inner: &inner}
}

// Scalar enumerates the recognized primitive kinds.
type Scalar uint8

const (
	ScalarVoid Scalar = iota
	ScalarBool
	ScalarInt8
	ScalarInt16
	ScalarInt32
	ScalarInt64
	ScalarUint8
	ScalarUint16
	ScalarUint32
	ScalarUint64
	ScalarFloat32
	ScalarFloat64
)

func (s Scalar) String() string {
	switch s {
	case ScalarVoid:
		return "void"
	case ScalarBool:
		return "bool"
	case ScalarInt8:
		return "int8"
	case ScalarInt16:
		return "int16"
	case ScalarInt32:
		return "int32"
	case ScalarInt64:
		return "int64"
	case ScalarUint8:
		return "uint8"
	case ScalarUint16:
		return "uint16"
	case ScalarUint32:
		return "uint32"
	case ScalarUint64:
		return "uint64"
	case ScalarFloat32:
		return "float32"
	case ScalarFloat64:
		return "float64"
	}
	return "unknown"
}

// scalarKeywords maps C spellings onto scalar kinds. Fixed-width stdint names
// map 1:1; the classic C spellings get their conventional widths.
var scalarKeywords = map[string]Scalar{
	"void":     ScalarVoid,
	"bool":     ScalarBool,
	"char":     ScalarInt8,
	"int":      ScalarInt32,
	"size_t":   ScalarUint64,
	"int8_t":   ScalarInt8,
	"int16_t":  ScalarInt16,
	"int32_t":  ScalarInt32,
	"int64_t":  ScalarInt64,
	"uint8_t":  ScalarUint8,
	"uint16_t": ScalarUint16,
	"uint32_t": ScalarUint32,
	"uint64_t": ScalarUint64,
	"float":    ScalarFloat32,
	"double":   ScalarFloat64,
}

// LookupScalar maps a C keyword to its scalar kind.
func LookupScalar(word string) (Scalar, bool) {
	s, ok := scalarKeywords[word]
	return s, ok
}
