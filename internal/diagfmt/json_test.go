package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"manifold/internal/diag"
	"manifold/internal/source"
)

func testBag(fileID source.FileID) *diag.Bag {
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(
		diag.ManBadObject,
		source.Span{File: fileID, Start: 0, End: 6},
		"bad object: struct TWBroken",
	))
	bag.Add(diag.New(
		diag.SevWarning,
		diag.ScanDanglingMarker,
		source.Span{File: fileID, Start: 7, End: 23},
		"export marker is not followed by a function declaration",
	).WithNote(source.Span{File: fileID, Start: 24, End: 30}, "marker appeared here"))
	return bag
}

func TestJSONOutputShape(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("wallet.h", []byte("struct TWBroken {\nTW_EXPORT_METHOD\nenum X {\n"))
	bag := testBag(fileID)

	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeNotes:     true,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Output does not parse back: %v", err)
	}

	if output.Count != 2 || len(output.Diagnostics) != 2 {
		t.Fatalf("Expected 2 diagnostics, got count=%d len=%d", output.Count, len(output.Diagnostics))
	}

	first := output.Diagnostics[0]
	if first.Severity != "ERROR" || first.Code != "MAN3002" {
		t.Errorf("Unexpected first diagnostic: %+v", first)
	}
	if first.Location.File != "wallet.h" {
		t.Errorf("Expected basename path, got %q", first.Location.File)
	}
	if first.Location.StartLine != 1 || first.Location.StartCol != 1 {
		t.Errorf("Expected positions filled in, got %+v", first.Location)
	}

	second := output.Diagnostics[1]
	if second.Code != "SCN2006" {
		t.Errorf("Expected SCN2006, got %q", second.Code)
	}
	if len(second.Notes) != 1 || second.Notes[0].Message != "marker appeared here" {
		t.Errorf("Expected the note to survive, got %+v", second.Notes)
	}
}

func TestJSONMaxTruncates(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("wallet.h", []byte("struct TWBroken {\nTW_EXPORT_METHOD\n"))
	bag := testBag(fileID)

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{Max: 1}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Output does not parse back: %v", err)
	}
	if output.Count != 1 || len(output.Diagnostics) != 1 {
		t.Errorf("Expected truncation to 1 diagnostic, got %d", output.Count)
	}
}

func TestJSONNotesDroppedByDefault(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("wallet.h", []byte("struct TWBroken {\nTW_EXPORT_METHOD\n"))
	bag := testBag(fileID)

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Output does not parse back: %v", err)
	}
	for _, d := range output.Diagnostics {
		if len(d.Notes) != 0 {
			t.Errorf("Expected notes dropped without IncludeNotes, got %+v", d.Notes)
		}
	}
}

func TestJSONTimingsKeepNotes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("wallet.h", []byte("struct TWWallet;\n"))

	bag := diag.NewBag(4)
	span := source.Span{File: fileID, Start: 0, End: 0}
	bag.Add(diag.New(diag.SevInfo, diag.ObsTimings, span, "stage timings").
		WithNote(span, "scan: 1.2ms"))

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Output does not parse back: %v", err)
	}
	if len(output.Diagnostics) != 1 || len(output.Diagnostics[0].Notes) != 1 {
		t.Fatalf("Expected timing notes to survive, got %+v", output.Diagnostics)
	}
	if output.Diagnostics[0].Notes[0].Message != "scan: 1.2ms" {
		t.Errorf("Unexpected note: %+v", output.Diagnostics[0].Notes[0])
	}
}

func TestJSONPositionlessLocation(t *testing.T) {
	// Пустой FileSet: диагностика не должна трогать файлы вообще.
	fs := source.NewFileSet()

	bag := diag.NewBag(2)
	bag.Add(diag.NewError(
		diag.IOLoadFileError,
		source.Span{},
		"failed to load file: open ghost.h: permission denied",
	))

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Output does not parse back: %v", err)
	}
	if len(output.Diagnostics) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d", len(output.Diagnostics))
	}
	loc := output.Diagnostics[0].Location
	if loc.File != "" || loc.StartLine != 0 || loc.EndByte != 0 {
		t.Errorf("Expected empty location, got %+v", loc)
	}
}

func TestFormatItemsJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatItemsJSON(&buf, nil); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if buf.String() != "[]\n" {
		t.Errorf("Expected an empty array, got %q", buf.String())
	}
}
