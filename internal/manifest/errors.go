package manifest

import (
	"errors"

	"manifold/internal/diag"
)

// Conversion failures fall into four classes. Converters wrap these sentinels
// so callers match with errors.Is while messages keep declaration detail. All
// of them are local and recoverable: the assembler skips the declaration, the
// driver skips the file, nothing aborts a directory run.
var (
	ErrBadImport   = errors.New("bad import")
	ErrBadObject   = errors.New("bad object")
	ErrBadProperty = errors.New("bad property")
	ErrBadType     = errors.New("bad type")
)

// CodeFor maps a conversion error onto its diagnostic code.
func CodeFor(err error) diag.Code {
	switch {
	case errors.Is(err, ErrBadImport):
		return diag.ManBadImport
	case errors.Is(err, ErrBadObject):
		return diag.ManBadObject
	case errors.Is(err, ErrBadProperty):
		return diag.ManBadProperty
	case errors.Is(err, ErrBadType):
		return diag.ManBadType
	}
	return diag.UnknownCode
}
