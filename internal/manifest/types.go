package manifest

import "fmt"

// TypeVariant is the closed set of manifest types: scalars plus name-based
// struct/enum references. The normalizer never invents a new scalar.
type TypeVariant uint8

const (
	VariantVoid TypeVariant = iota
	VariantBool
	VariantInt8
	VariantInt16
	VariantInt32
	VariantInt64
	VariantUint8
	VariantUint16
	VariantUint32
	VariantUint64
	VariantFloat32
	VariantFloat64
	VariantStruct
	VariantEnum
)

var variantNames = [...]string{
	VariantVoid:    "void",
	VariantBool:    "bool",
	VariantInt8:    "int8",
	VariantInt16:   "int16",
	VariantInt32:   "int32",
	VariantInt64:   "int64",
	VariantUint8:   "uint8",
	VariantUint16:  "uint16",
	VariantUint32:  "uint32",
	VariantUint64:  "uint64",
	VariantFloat32: "float32",
	VariantFloat64: "float64",
	VariantStruct:  "struct",
	VariantEnum:    "enum",
}

func (v TypeVariant) String() string {
	if int(v) < len(variantNames) {
		return variantNames[v]
	}
	return "unknown"
}

// MarshalText renders the lowercase artifact spelling; JSON и YAML кодируют
// вариант через него одинаково.
func (v TypeVariant) MarshalText() ([]byte, error) {
	if int(v) >= len(variantNames) {
		return nil, fmt.Errorf("unknown type variant %d", uint8(v))
	}
	return []byte(variantNames[v]), nil
}

func (v *TypeVariant) UnmarshalText(text []byte) error {
	name := string(text)
	for i, candidate := range variantNames {
		if candidate == name {
			*v = TypeVariant(i)
			return nil
		}
	}
	return fmt.Errorf("unknown type variant %q", name)
}

// IsScalar reports whether the variant is a primitive rather than a named
// reference.
func (v TypeVariant) IsScalar() bool {
	return v < VariantStruct
}

// VariantNames lists the artifact spellings in declaration order.
func VariantNames() []string {
	return append([]string(nil), variantNames[:]...)
}

// TypeInfo is the canonical description of one type occurrence. The three
// flags are independent; a nullable constant pointer to a struct is a legal
// combination. Value type, created fresh per occurrence.
type TypeInfo struct {
	Variant    TypeVariant `json:"variant" yaml:"variant"`
	Ref        string      `json:"ref,omitempty" yaml:"ref,omitempty"`
	IsConstant bool        `json:"is_constant" yaml:"is_constant"`
	IsNullable bool        `json:"is_nullable" yaml:"is_nullable"`
	IsPointer  bool        `json:"is_pointer" yaml:"is_pointer"`
}

func (t TypeInfo) String() string {
	out := t.Variant.String()
	if t.Ref != "" {
		out += " " + t.Ref
	}
	if t.IsPointer {
		out += "*"
	}
	if t.IsConstant {
		out = "const " + out
	}
	if t.IsNullable {
		out += "?"
	}
	return out
}
