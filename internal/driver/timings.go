package driver

import (
	"encoding/json"
	"fmt"

	"manifold/internal/diag"
	"manifold/internal/observ"
	"manifold/internal/source"
)

// timingPayload — машинно-читаемое тело заметки OBS6001.
type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// appendTimingDiagnostic кладёт замеры одного заголовка в bag как SevInfo.
// Сообщение человекочитаемое, JSON-слепок уходит в Notes[0].
func appendTimingDiagnostic(bag *diag.Bag, path string, report observ.Report) {
	if bag == nil {
		return
	}
	payload := timingPayload{
		Kind:    "header",
		Path:    path,
		TotalMS: report.TotalMS,
		Phases:  report.Phases,
	}

	msg := fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.TotalMS)
	if path != "" {
		msg = fmt.Sprintf("%s, %s", msg, path)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	entry := diag.Diagnostic{
		Severity: diag.SevInfo,
		Code:     diag.ObsTimings,
		Message:  msg,
		Primary:  source.Span{},
		Notes: []diag.Note{
			{Span: source.Span{}, Msg: string(data)},
		},
	}

	if bag.Add(entry) {
		return
	}
	// Замеры не должны теряться из-за лимита: расширяем bag через Merge.
	overflow := diag.NewBag(bag.Len() + 1)
	overflow.Add(entry)
	bag.Merge(overflow)
}
