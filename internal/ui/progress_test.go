package ui

import (
	"strings"
	"testing"

	"manifold/internal/driver"
)

func newTestModel(t *testing.T, files []string, finalStage driver.Stage) *progressModel {
	t.Helper()
	events := make(chan driver.Event)
	model, ok := NewProgressModel("extracting headers", files, finalStage, events).(*progressModel)
	if !ok {
		t.Fatal("Expected a *progressModel")
	}
	return model
}

func TestProgressModelSettlesOnFinalStage(t *testing.T) {
	m := newTestModel(t, []string{"wallet.h"}, driver.StageExtract)

	m.applyEvent(driver.Event{Path: "wallet.h", Stage: driver.StageScan, Status: driver.StageBegin})
	if m.items[0].status != "scanning" {
		t.Errorf("Expected status scanning, got %q", m.items[0].status)
	}
	if m.items[0].settled {
		t.Error("Expected the row to stay unsettled mid-pipeline")
	}

	m.applyEvent(driver.Event{Path: "wallet.h", Stage: driver.StageExtract, Status: driver.StageEnd})
	if m.items[0].status != "done" || !m.items[0].settled {
		t.Errorf("Expected a settled done row, got %+v", m.items[0])
	}
}

func TestProgressModelEmitIsFinalWhenWriting(t *testing.T) {
	m := newTestModel(t, []string{"wallet.h"}, driver.StageEmit)

	m.applyEvent(driver.Event{Path: "wallet.h", Stage: driver.StageExtract, Status: driver.StageEnd})
	// Извлечение закончилось, но артефакт ещё пишется.
	if m.items[0].settled {
		t.Error("Expected the row to wait for emit")
	}

	m.applyEvent(driver.Event{Path: "wallet.h", Stage: driver.StageEmit, Status: driver.StageEnd})
	if m.items[0].status != "done" || !m.items[0].settled {
		t.Errorf("Expected a settled done row after emit, got %+v", m.items[0])
	}
}

func TestProgressModelErrorAndCache(t *testing.T) {
	m := newTestModel(t, []string{"broken.h", "cached.h"}, driver.StageExtract)

	m.applyEvent(driver.Event{Path: "broken.h", Stage: driver.StageLoad, Status: driver.StageEnd, Failed: true})
	if m.items[0].status != "error" || !m.items[0].settled {
		t.Errorf("Expected a settled error row, got %+v", m.items[0])
	}

	m.applyEvent(driver.Event{Path: "cached.h", Stage: driver.StageExtract, Status: driver.StageEnd, CacheHit: true})
	if m.items[1].status != "cached" || !m.items[1].settled {
		t.Errorf("Expected a settled cached row, got %+v", m.items[1])
	}
}

func TestProgressModelUnknownPathGetsRow(t *testing.T) {
	m := newTestModel(t, nil, driver.StageExtract)

	m.applyEvent(driver.Event{Path: "late.h", Stage: driver.StageScan, Status: driver.StageBegin})
	if len(m.items) != 1 || m.items[0].path != "late.h" {
		t.Fatalf("Expected a row for the unseen path, got %+v", m.items)
	}
}

func TestProgressModelView(t *testing.T) {
	m := newTestModel(t, []string{"wallet.h"}, driver.StageExtract)

	view := m.View()
	if !strings.Contains(view, "extracting headers") {
		t.Errorf("Expected the title in the view, got %q", view)
	}
	if !strings.Contains(view, "queued") {
		t.Errorf("Expected a queued row, got %q", view)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short.h", 40); got != "short.h" {
		t.Errorf("Expected short paths untouched, got %q", got)
	}
	got := truncate("include/TrustWalletCore/TWAnySigner.h", 20)
	if !strings.HasSuffix(got, "...") {
		t.Errorf("Expected an ellipsis suffix, got %q", got)
	}
}
