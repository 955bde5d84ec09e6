package manifest

import (
	"strings"

	"manifold/internal/grammar"
)

// Disposition classifies how one raw declaration enters the manifest.
type Disposition uint8

const (
	Skip Disposition = iota
	KeepImport
	KeepIndicator
	KeepStruct
	KeepEnum
	KeepMethod
	KeepProperty
)

func (d Disposition) String() string {
	switch d {
	case Skip:
		return "skip"
	case KeepImport:
		return "import"
	case KeepIndicator:
		return "indicator"
	case KeepStruct:
		return "struct"
	case KeepEnum:
		return "enum"
	case KeepMethod:
		return "method"
	case KeepProperty:
		return "property"
	}
	return "unknown"
}

// Конструкторы-фабрики и деструкторы считаются жизненным циклом объекта, а не
// API-поверхностью для других языков.
const (
	factoryPattern    = "CreateWith"
	destructorPattern = "Delete"
)

// Classify applies the visibility policy to a single declaration. Stateless:
// the outcome never depends on neighbouring items, only the manifest ordering
// does.
func Classify(item grammar.Item) Disposition {
	switch item.Kind {
	case grammar.ItemInclude:
		return KeepImport
	case grammar.ItemStructIndicator:
		return KeepIndicator
	case grammar.ItemStructDecl:
		return KeepStruct
	case grammar.ItemEnumDecl:
		return KeepEnum
	case grammar.ItemFunctionDecl:
		return classifyFunction(item.Func)
	default:
		return Skip
	}
}

func classifyFunction(decl *grammar.FunctionDecl) Disposition {
	if decl == nil {
		return Skip
	}
	// Исключение по имени смотрит раньше всех маркеров.
	if strings.Contains(decl.Name, factoryPattern) || strings.Contains(decl.Name, destructorPattern) {
		return Skip
	}
	switch {
	case decl.HasMarker(grammar.MarkerExportMethod), decl.HasMarker(grammar.MarkerExportStaticMethod):
		return KeepMethod
	case decl.HasMarker(grammar.MarkerExportProperty), decl.HasMarker(grammar.MarkerExportStaticProperty):
		return KeepProperty
	}
	// Без маркера — внутренний помощник, молча пропускаем.
	return Skip
}
