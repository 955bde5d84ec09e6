package manifest

import (
	"fmt"
	"path"
	"strings"

	"manifold/internal/diag"
	"manifold/internal/grammar"
	"manifold/internal/source"
)

// HeaderName derives the manifest name from a header path: base name with the
// ".h" extension stripped. Paths that are not header files are a recoverable
// error, not a panic.
func HeaderName(headerPath string) (string, error) {
	base := path.Base(strings.ReplaceAll(headerPath, "\\", "/"))
	name, ok := strings.CutSuffix(base, ".h")
	if !ok || name == "" {
		return "", fmt.Errorf("%w: %q is not a header file name", ErrBadImport, headerPath)
	}
	return name, nil
}

type assemblerState uint8

const (
	stateStart assemblerState = iota
	stateAccumulating
	stateFinalized
)

// Assembler accumulates one header's manifest. Declarations that fail to
// convert are skipped and reported; the rest of the file keeps going. After
// Finalize the manifest is immutable.
type Assembler struct {
	conv    Converter
	rep     diag.Reporter
	state   assemblerState
	info    FileInfo
	skipped int
}

// NewAssembler prepares an assembler for one header with empty collections.
func NewAssembler(name string, rep diag.Reporter) *Assembler {
	if rep == nil {
		rep = diag.NopReporter{}
	}
	return &Assembler{
		conv: Converter{File: name},
		rep:  rep,
		info: FileInfo{
			Name:       name,
			Imports:    []ImportInfo{},
			Structs:    []StructInfo{},
			Enums:      []EnumInfo{},
			Functions:  []MethodInfo{},
			Properties: []PropertyInfo{},
		},
	}
}

// Add feeds the next declaration in source order.
func (a *Assembler) Add(item grammar.Item) {
	if a.state == stateFinalized {
		panic("manifest: Add after Finalize")
	}
	a.state = stateAccumulating

	switch Classify(item) {
	case KeepImport:
		imp, err := a.conv.Import(item.Include)
		if err != nil {
			a.report(err, item.Span)
			return
		}
		a.info.Imports = append(a.info.Imports, imp)

	case KeepIndicator:
		a.info.Structs = append(a.info.Structs, a.conv.StructIndicator(item.Name))

	case KeepStruct:
		st, err := a.conv.Struct(item.Struct)
		if err != nil {
			a.report(err, item.Span)
			return
		}
		a.info.Structs = append(a.info.Structs, st)

	case KeepEnum:
		en, err := a.conv.Enum(item.Enum)
		if err != nil {
			a.report(err, item.Span)
			return
		}
		a.info.Enums = append(a.info.Enums, en)

	case KeepMethod:
		fn, err := a.conv.Method(item.Func)
		if err != nil {
			a.report(err, item.Span)
			return
		}
		a.info.Functions = append(a.info.Functions, fn)

	case KeepProperty:
		prop, err := a.conv.Property(item.Func)
		if err != nil {
			a.report(err, item.Span)
			return
		}
		a.info.Properties = append(a.info.Properties, prop)

	default:
		// Skip: отфильтрованные и неизвестные объявления — не ошибка.
	}
}

func (a *Assembler) report(err error, span source.Span) {
	a.skipped++
	diag.ReportError(a.rep, CodeFor(err), span, err.Error()).Emit()
}

// Skipped reports how many declarations failed conversion.
func (a *Assembler) Skipped() int {
	return a.skipped
}

// Finalize seals the manifest and returns it. Idempotent; Add after Finalize
// panics.
func (a *Assembler) Finalize() FileInfo {
	a.state = stateFinalized
	return a.info
}

// Extract assembles the manifest for one scanned header in a single call.
func Extract(name string, items []grammar.Item, rep diag.Reporter) FileInfo {
	asm := NewAssembler(name, rep)
	for _, item := range items {
		asm.Add(item)
	}
	return asm.Finalize()
}
