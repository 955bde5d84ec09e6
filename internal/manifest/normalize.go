package manifest

import (
	"fmt"

	"manifold/internal/grammar"
)

var scalarVariants = map[grammar.Scalar]TypeVariant{
	grammar.ScalarVoid:    VariantVoid,
	grammar.ScalarBool:    VariantBool,
	grammar.ScalarInt8:    VariantInt8,
	grammar.ScalarInt16:   VariantInt16,
	grammar.ScalarInt32:   VariantInt32,
	grammar.ScalarInt64:   VariantInt64,
	grammar.ScalarUint8:   VariantUint8,
	grammar.ScalarUint16:  VariantUint16,
	grammar.ScalarUint32:  VariantUint32,
	grammar.ScalarUint64:  VariantUint64,
	grammar.ScalarFloat32: VariantFloat32,
	grammar.ScalarFloat64: VariantFloat64,
}

// Normalize maps a qualified type expression onto the closed manifest type
// system. Only the const qualifier raises is_constant: extern affects linkage,
// not constness. Pointer and nullable wrappers collapse into the two shape
// flags, the core becomes a scalar variant or a named reference.
func Normalize(ty grammar.Type) (TypeInfo, error) {
	info := TypeInfo{IsConstant: ty.Qual == grammar.QualConst}

	cat := ty.Cat
	for cat.Kind == grammar.CatPointer || cat.Kind == grammar.CatNullable {
		if cat.Inner == nil {
			return TypeInfo{}, fmt.Errorf("%w: %s wrapper without a pointee", ErrBadType, cat.Kind)
		}
		if cat.Kind == grammar.CatPointer {
			info.IsPointer = true
		} else {
			info.IsNullable = true
		}
		cat = *cat.Inner
	}

	switch cat.Kind {
	case grammar.CatScalar:
		variant, ok := scalarVariants[cat.Scalar]
		if !ok {
			return TypeInfo{}, fmt.Errorf("%w: scalar %d has no variant", ErrBadType, uint8(cat.Scalar))
		}
		info.Variant = variant
	case grammar.CatStruct:
		if cat.Name == "" {
			return TypeInfo{}, fmt.Errorf("%w: struct reference without a name", ErrBadType)
		}
		info.Variant, info.Ref = VariantStruct, cat.Name
	case grammar.CatEnum:
		if cat.Name == "" {
			return TypeInfo{}, fmt.Errorf("%w: enum reference without a name", ErrBadType)
		}
		info.Variant, info.Ref = VariantEnum, cat.Name
	case grammar.CatUnrecognized:
		if cat.Name == "" {
			return TypeInfo{}, fmt.Errorf("%w: empty type category", ErrBadType)
		}
		// Неопознанный идентификатор остаётся слабой ссылкой по имени;
		// вид уточняет потребитель манифеста, просматривая объявления.
		info.Variant, info.Ref = VariantStruct, cat.Name
	default:
		return TypeInfo{}, fmt.Errorf("%w: unmappable category %s", ErrBadType, cat.Kind)
	}
	return info, nil
}

// CustomName extracts the referenced identifier from a named type category.
// The qualifier wrapper is transparent, as are pointer and nullable shells.
func CustomName(ty grammar.Type) (string, bool) {
	cat := ty.Cat
	for (cat.Kind == grammar.CatPointer || cat.Kind == grammar.CatNullable) && cat.Inner != nil {
		cat = *cat.Inner
	}
	switch cat.Kind {
	case grammar.CatStruct, grammar.CatEnum, grammar.CatUnrecognized:
		if cat.Name != "" {
			return cat.Name, true
		}
	}
	return "", false
}
