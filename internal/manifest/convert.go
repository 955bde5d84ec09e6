package manifest

import (
	"fmt"
	"strings"

	"manifold/internal/grammar"
)

// Converter builds manifest records from raw declarations. File — базовое имя
// заголовка, участвует только в деталях ошибок.
type Converter struct {
	File string
}

// Import decomposes an include path into ordered segments.
func (c Converter) Import(path string) (ImportInfo, error) {
	if path == "" {
		return ImportInfo{}, fmt.Errorf("%w: empty include path in %s", ErrBadImport, c.File)
	}
	segments := strings.Split(path, "/")
	for _, seg := range segments {
		if seg == "" {
			return ImportInfo{}, fmt.Errorf("%w: include path %q has an empty segment", ErrBadImport, path)
		}
	}
	return ImportInfo{Path: segments}, nil
}

// StructIndicator records a forward declaration: name only, public by policy,
// empty fields and tags.
func (c Converter) StructIndicator(name string) StructInfo {
	return StructInfo{
		Name:     name,
		IsPublic: true,
		Fields:   []FieldInfo{},
		Tags:     []string{},
	}
}

// Struct converts a full definition, normalizing every field type in order.
func (c Converter) Struct(decl *grammar.StructDecl) (StructInfo, error) {
	if decl == nil || decl.Name == "" {
		return StructInfo{}, fmt.Errorf("%w: struct without a name in %s", ErrBadObject, c.File)
	}
	info := StructInfo{
		Name:     decl.Name,
		IsPublic: true,
		Fields:   make([]FieldInfo, 0, len(decl.Fields)),
		Tags:     append([]string{}, decl.Tags...),
	}
	for _, field := range decl.Fields {
		ty, err := Normalize(field.Type)
		if err != nil {
			return StructInfo{}, fmt.Errorf("%w: struct %s field %s: %v", ErrBadObject, decl.Name, field.Name, err)
		}
		info.Fields = append(info.Fields, FieldInfo{Name: field.Name, Type: ty})
	}
	return info, nil
}

// Enum converts a definition, keeping each variant's optional explicit
// discriminant exactly as written.
func (c Converter) Enum(decl *grammar.EnumDecl) (EnumInfo, error) {
	if decl == nil || decl.Name == "" {
		return EnumInfo{}, fmt.Errorf("%w: enum without a name in %s", ErrBadObject, c.File)
	}
	info := EnumInfo{
		Name:     decl.Name,
		IsPublic: true,
		Variants: make([]VariantInfo, 0, len(decl.Variants)),
		Tags:     append([]string{}, decl.Tags...),
	}
	for _, variant := range decl.Variants {
		if variant.Name == "" {
			return EnumInfo{}, fmt.Errorf("%w: enum %s has an unnamed variant", ErrBadObject, decl.Name)
		}
		out := VariantInfo{Name: variant.Name}
		if variant.Value != nil {
			value := *variant.Value // копия: запись манифеста не делит память с грамматикой
			out.Value = &value
		}
		info.Variants = append(info.Variants, out)
	}
	return info, nil
}

// Method converts an exported function. The caller is expected to have
// filtered unmarked functions out already; reaching one here is an error.
func (c Converter) Method(decl *grammar.FunctionDecl) (MethodInfo, error) {
	if decl == nil || decl.Name == "" {
		return MethodInfo{}, fmt.Errorf("%w: function without a name in %s", ErrBadProperty, c.File)
	}
	isStatic := decl.HasMarker(grammar.MarkerExportStaticMethod)
	if !isStatic && !decl.HasMarker(grammar.MarkerExportMethod) {
		return MethodInfo{}, fmt.Errorf("%w: function %s carries no export marker", ErrBadProperty, decl.Name)
	}

	ret, err := Normalize(decl.Return)
	if err != nil {
		return MethodInfo{}, fmt.Errorf("%w: function %s: return type: %v", ErrBadProperty, decl.Name, err)
	}

	params := make([]ParamInfo, 0, len(decl.Params))
	for i, param := range decl.Params {
		converted, err := c.Param(param, i)
		if err != nil {
			return MethodInfo{}, fmt.Errorf("%w: function %s: %v", ErrBadProperty, decl.Name, err)
		}
		params = append(params, converted)
	}

	return MethodInfo{
		Name:       decl.Name,
		IsPublic:   true,
		IsStatic:   isStatic,
		Params:     params,
		ReturnType: ret,
		Comments:   append([]string{}, decl.Comments...),
	}, nil
}

// Param converts one parameter; normalization failures bubble up.
func (c Converter) Param(param grammar.Param, index int) (ParamInfo, error) {
	ty, err := Normalize(param.Type)
	if err != nil {
		return ParamInfo{}, fmt.Errorf("parameter %d (%s): %v", index, param.Name, err)
	}
	return ParamInfo{Name: param.Name, Type: ty}, nil
}

// Property converts an exported accessor: a marked function taking at most
// the receiver and dropping its параметры из записи.
func (c Converter) Property(decl *grammar.FunctionDecl) (PropertyInfo, error) {
	if decl == nil || decl.Name == "" {
		return PropertyInfo{}, fmt.Errorf("%w: property without a name in %s", ErrBadProperty, c.File)
	}
	isStatic := decl.HasMarker(grammar.MarkerExportStaticProperty)
	if !isStatic && !decl.HasMarker(grammar.MarkerExportProperty) {
		return PropertyInfo{}, fmt.Errorf("%w: function %s carries no property marker", ErrBadProperty, decl.Name)
	}
	if len(decl.Params) > 1 {
		return PropertyInfo{}, fmt.Errorf("%w: property %s takes %d parameters, accessors accept at most the receiver",
			ErrBadProperty, decl.Name, len(decl.Params))
	}

	ret, err := Normalize(decl.Return)
	if err != nil {
		return PropertyInfo{}, fmt.Errorf("%w: property %s: return type: %v", ErrBadProperty, decl.Name, err)
	}

	return PropertyInfo{
		Name:       decl.Name,
		IsPublic:   true,
		IsStatic:   isStatic,
		ReturnType: ret,
		Comments:   append([]string{}, decl.Comments...),
	}, nil
}
