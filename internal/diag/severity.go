package diag

// Severity задаёт вес диагностики. Порядок значим: Bag сравнивает
// уровни через >=, сортировка кладёт более тяжёлые раньше.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var sevNames = [...]string{"INFO", "WARNING", "ERROR"}

func (s Severity) String() string {
	if int(s) < len(sevNames) {
		return sevNames[s]
	}
	return "UNKNOWN"
}
