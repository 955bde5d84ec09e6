package driver

import (
	"manifold/internal/diag"
	"manifold/internal/grammar"
	"manifold/internal/source"
)

// ScanResult holds the declaration items of a single scanned header.
type ScanResult struct {
	FileSet *source.FileSet
	File    *source.File
	Items   []grammar.Item
	Bag     *diag.Bag
}

// ScanHeader loads one header and splits it into declaration items without
// building a manifest. This is the inspection entry point for the scan
// subcommand.
func ScanHeader(path string, maxDiagnostics int) (*ScanResult, error) {
	// Создаём FileSet и загружаем файл
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	items := grammar.ScanFile(file, grammar.Options{Reporter: diag.BagReporter{Bag: bag}})

	return &ScanResult{
		FileSet: fs,
		File:    file,
		Items:   items,
		Bag:     bag,
	}, nil
}
