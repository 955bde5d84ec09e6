package diag

import (
	"testing"

	"manifold/internal/source"
)

func TestBagLimit(t *testing.T) {
	bag := NewBag(2)

	if !bag.Add(NewError(ManBadType, source.Span{}, "first")) {
		t.Error("Expected first Add to succeed")
	}
	if !bag.Add(NewError(ManBadType, source.Span{}, "second")) {
		t.Error("Expected second Add to succeed")
	}
	// Лимит достигнут
	if bag.Add(NewError(ManBadType, source.Span{}, "third")) {
		t.Error("Expected third Add to fail at the limit")
	}
	if bag.Len() != 2 {
		t.Errorf("Expected Len 2, got %d", bag.Len())
	}
}

func TestBagHasErrorsAndWarnings(t *testing.T) {
	bag := NewBag(10)
	bag.Add(New(SevInfo, ObsInfo, source.Span{}, "info"))

	if bag.HasErrors() {
		t.Error("Expected no errors after info diagnostic")
	}
	if bag.HasWarnings() {
		t.Error("Expected no warnings after info diagnostic")
	}

	bag.Add(New(SevWarning, ScanDanglingMarker, source.Span{}, "dangling"))
	if !bag.HasWarnings() {
		t.Error("Expected HasWarnings after warning diagnostic")
	}
	if bag.HasErrors() {
		t.Error("Expected no errors after warning diagnostic")
	}

	bag.Add(NewError(ManBadObject, source.Span{}, "bad"))
	if !bag.HasErrors() {
		t.Error("Expected HasErrors after error diagnostic")
	}
}

func TestBagSortDeterministic(t *testing.T) {
	bag := NewBag(10)
	bag.Add(NewError(ManBadType, source.Span{File: 1, Start: 5, End: 6}, "b"))
	bag.Add(NewError(ManBadImport, source.Span{File: 0, Start: 9, End: 10}, "a"))
	bag.Add(New(SevWarning, ScanDanglingMarker, source.Span{File: 0, Start: 9, End: 10}, "w"))

	bag.Sort()
	items := bag.Items()

	// file 0 перед file 1; на одной позиции error перед warning
	if items[0].Code != ManBadImport {
		t.Errorf("Expected ManBadImport first, got %v", items[0].Code)
	}
	if items[1].Code != ScanDanglingMarker {
		t.Errorf("Expected ScanDanglingMarker second, got %v", items[1].Code)
	}
	if items[2].Code != ManBadType {
		t.Errorf("Expected ManBadType last, got %v", items[2].Code)
	}
}

func TestBagMergeGrowsLimit(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(ManBadType, source.Span{}, "a"))
	b := NewBag(1)
	b.Add(NewError(ManBadObject, source.Span{}, "b"))

	a.Merge(b)
	if a.Len() != 2 {
		t.Fatalf("Expected merged Len 2, got %d", a.Len())
	}
	if a.Cap() < 2 {
		t.Errorf("Expected Cap to grow to at least 2, got %d", a.Cap())
	}
}

func TestBagDedup(t *testing.T) {
	bag := NewBag(10)
	span := source.Span{File: 0, Start: 3, End: 7}
	bag.Add(NewError(ManBadType, span, "dup"))
	bag.Add(NewError(ManBadType, span, "dup again"))
	bag.Add(NewError(ManBadType, source.Span{File: 0, Start: 8, End: 9}, "other"))

	bag.Dedup()
	if bag.Len() != 2 {
		t.Errorf("Expected 2 diagnostics after Dedup, got %d", bag.Len())
	}
}

func TestCodeID(t *testing.T) {
	cases := []struct {
		code Code
		want string
	}{
		{IOLoadFileError, "IO1001"},
		{ScanUnclosedBlock, "SCN2001"},
		{ManBadImport, "MAN3001"},
		{ObsTimings, "OBS6001"},
		{UnknownCode, "E0000"},
	}
	for _, tc := range cases {
		if got := tc.code.ID(); got != tc.want {
			t.Errorf("Code(%d).ID(): expected %q, got %q", tc.code, tc.want, got)
		}
	}
}

func TestBagReporterCollects(t *testing.T) {
	bag := NewBag(4)
	var r Reporter = BagReporter{Bag: bag}

	ReportError(r, ManBadProperty, source.Span{Start: 1, End: 2}, "broken").
		WithNote(source.Span{Start: 3, End: 4}, "declared here").
		Emit()

	if bag.Len() != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if d.Code != ManBadProperty || d.Severity != SevError {
		t.Errorf("Unexpected diagnostic %+v", d)
	}
	if len(d.Notes) != 1 || d.Notes[0].Msg != "declared here" {
		t.Errorf("Expected one note, got %+v", d.Notes)
	}
}
