package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()

	// "a\nb\n" должен дать LineIdx = [1,3]
	id := fs.AddVirtual("a.h", []byte("a\nb\n"))
	file := fs.Get(id)

	expected := []uint32{1, 3} // позиции символов \n
	if len(file.LineIdx) != len(expected) {
		t.Fatalf("Expected LineIdx length %d, got %d", len(expected), len(file.LineIdx))
	}
	for i, val := range expected {
		if file.LineIdx[i] != val {
			t.Errorf("Expected LineIdx[%d] = %d, got %d", i, val, file.LineIdx[i])
		}
	}

	if file.Flags&FileVirtual == 0 {
		t.Error("Expected FileVirtual flag to be set")
	}
}

func TestLoadNormalizesCRLFAndBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wallet.h")
	raw := []byte("\xEF\xBB\xBFstruct TWWallet;\r\nbool TWWalletIsValid();\r\n")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	fs := NewFileSetWithBase(dir)
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	file := fs.Get(id)

	want := "struct TWWallet;\nbool TWWalletIsValid();\n"
	if string(file.Content) != want {
		t.Errorf("Expected normalized content %q, got %q", want, string(file.Content))
	}
	if file.Flags&FileHadBOM == 0 {
		t.Error("Expected FileHadBOM flag to be set")
	}
	if file.Flags&FileNormalizedCRLF == 0 {
		t.Error("Expected FileNormalizedCRLF flag to be set")
	}
}

func TestLoadHashIsContentStable(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.h")
	b := filepath.Join(dir, "b.h")
	// Одинаковое содержимое после нормализации — одинаковый hash.
	if err := os.WriteFile(a, []byte("enum X { A };\n"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := os.WriteFile(b, []byte("enum X { A };\r\n"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	fs := NewFileSet()
	idA, err := fs.Load(a)
	if err != nil {
		t.Fatalf("Load a: %v", err)
	}
	idB, err := fs.Load(b)
	if err != nil {
		t.Fatalf("Load b: %v", err)
	}
	if fs.Get(idA).Hash != fs.Get(idB).Hash {
		t.Error("Expected identical hashes for CRLF-normalized twins")
	}
}

func TestResolveSpan(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("x.h", []byte("first\nsecond line\nthird\n"))

	// "second" начинается с offset 6
	start, end := fs.Resolve(Span{File: id, Start: 6, End: 12})
	if start.Line != 2 || start.Col != 1 {
		t.Errorf("Expected start 2:1, got %d:%d", start.Line, start.Col)
	}
	if end.Line != 2 || end.Col != 7 {
		t.Errorf("Expected end 2:7, got %d:%d", end.Line, end.Col)
	}

	// \n принадлежит строке, которую он закрывает
	nl, _ := fs.Resolve(Span{File: id, Start: 5, End: 5})
	if nl.Line != 1 || nl.Col != 6 {
		t.Errorf("Expected newline position 1:6, got %d:%d", nl.Line, nl.Col)
	}

	third, _ := fs.Resolve(Span{File: id, Start: 18, End: 23})
	if third.Line != 3 || third.Col != 1 {
		t.Errorf("Expected start 3:1, got %d:%d", third.Line, third.Col)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("x.h", []byte("one\ntwo\nthree"))
	file := fs.Get(id)

	cases := []struct {
		num  uint32
		want string
	}{
		{0, ""},
		{1, "one"},
		{2, "two"},
		{3, "three"},
		{4, ""},
	}
	for _, tc := range cases {
		if got := file.GetLine(tc.num); got != tc.want {
			t.Errorf("GetLine(%d): expected %q, got %q", tc.num, tc.want, got)
		}
	}
}
