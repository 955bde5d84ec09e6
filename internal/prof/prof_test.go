package prof

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSessionCPUAndHeap(t *testing.T) {
	dir := t.TempDir()
	cpu := filepath.Join(dir, "cpu.out")
	mem := filepath.Join(dir, "mem.out")

	s, err := Start(Options{CPUPath: cpu, MemPath: mem})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	// Немного работы, чтобы профайлер точно успел стартовать
	sink := 0
	for i := 0; i < 100000; i++ {
		sink += i
	}
	_ = sink

	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	for _, path := range []string{cpu, mem} {
		st, err := os.Stat(path)
		if err != nil {
			t.Fatalf("Expected profile %s, got error: %v", path, err)
		}
		if st.Size() == 0 {
			t.Errorf("Expected non-empty profile %s", path)
		}
	}

	// Повторный Stop ничего не делает
	if err := s.Stop(); err != nil {
		t.Errorf("Second Stop: %v", err)
	}
}

func TestSessionTrace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.out")

	s, err := Start(Options{TracePath: path})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	st, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Expected trace file, got error: %v", err)
	}
	if st.Size() == 0 {
		t.Error("Expected non-empty trace file")
	}
}

func TestSessionEmptyAndNil(t *testing.T) {
	s, err := Start(Options{})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Errorf("Stop of empty session: %v", err)
	}

	var nilSession *Session
	if err := nilSession.Stop(); err != nil {
		t.Errorf("Stop of nil session: %v", err)
	}
}
