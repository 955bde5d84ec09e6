package source

type (
	// FileID uniquely identifies a header within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a loaded header.
	FileFlags uint8 // метаданные
)

const (
	// FileVirtual indicates the header was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and normalized content for a single header.
// Hash is the SHA-256 of the normalized content; it keys the extraction cache.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a header.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
