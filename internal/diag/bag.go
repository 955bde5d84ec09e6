package diag

import (
	"math"
	"slices"
)

type Bag struct {
	items []Diagnostic
	max   uint16
}

func NewBag(max int) *Bag {
	if max < 0 {
		max = 0
	}
	if max > math.MaxUint16 {
		max = math.MaxUint16
	}
	return &Bag{
		items: make([]Diagnostic, 0, max),
		max:   uint16(max),
	}
}

// Add добавляет диагностику, учитывая лимит.
// Возвращает false, если диагностика не добавлена (достигнут лимит).
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() uint16 {
	return b.max
}

func (b *Bag) Len() int {
	return len(b.items)
}

// anyAtLeast проверяет наличие диагностики с Severity >= sev.
func (b *Bag) anyAtLeast(sev Severity) bool {
	for i := range b.items {
		if b.items[i].Severity >= sev {
			return true
		}
	}
	return false
}

func (b *Bag) HasErrors() bool {
	return b.anyAtLeast(SevError)
}

func (b *Bag) HasWarnings() bool {
	return b.anyAtLeast(SevWarning)
}

// Items возвращает read-only slice диагностик.
// ВАЖНО: не модифицируйте возвращаемый срез! (он указывает на внутренний массив Bag)
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge объединяет диагностики из другого Bag.
// Увеличивает max, если нужно вместить все элементы.
func (b *Bag) Merge(other *Bag) {
	newTotal := len(b.items) + len(other.items)
	if newTotal <= math.MaxUint16 && uint16(newTotal) > b.max {
		b.max = uint16(newTotal)
	}
	b.items = append(b.items, other.items...)
}

// Sort сортирует диагностики по: file, start, end, severity (desc), code (asc)
// для стабильного и детерминированного порядка вывода.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		if x.Primary.File != y.Primary.File {
			if x.Primary.File < y.Primary.File {
				return -1
			}
			return 1
		}
		if x.Primary.Start != y.Primary.Start {
			if x.Primary.Start < y.Primary.Start {
				return -1
			}
			return 1
		}
		if x.Primary.End != y.Primary.End {
			if x.Primary.End < y.Primary.End {
				return -1
			}
			return 1
		}
		// severity по убыванию: Error > Warning > Info
		if x.Severity != y.Severity {
			if x.Severity > y.Severity {
				return -1
			}
			return 1
		}
		if x.Code != y.Code {
			if x.Code < y.Code {
				return -1
			}
			return 1
		}
		return 0
	})
}

// Dedup убирает повторы по паре (Code, Primary), сохраняя порядок.
func (b *Bag) Dedup() {
	type dupKey struct {
		code Code
		span string
	}
	seen := make(map[dupKey]struct{}, len(b.items))
	kept := b.items[:0]
	for _, d := range b.items {
		k := dupKey{d.Code, d.Primary.String()}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		kept = append(kept, d)
	}
	b.items = kept
}
