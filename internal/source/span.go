package source

import (
	"fmt"
)

// Span — полуинтервал [Start, End) в байтах внутри одного файла.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

// Positionless reports a span that does not point into any header:
// the zero value, carried by diagnostics about I/O and pipeline stages.
// Сканер никогда не выдаёт пустой диапазон на нулевом смещении.
func (s Span) Positionless() bool {
	return s.Start == 0 && s.End == 0
}

// Cover расширяет span так, чтобы он покрывал other (в пределах одного файла).
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	s.Start = min(s.Start, other.Start)
	s.End = max(s.End, other.End)
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}
