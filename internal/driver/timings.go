package driver

import (
	"encoding/json"
	"fmt"

	"cjslex/internal/diag"
	"cjslex/internal/observ"
	"cjslex/internal/source"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// appendTimingDiagnostic adds an info diagnostic whose note carries the
// phase breakdown as JSON. It bypasses the bag limit.
func appendTimingDiagnostic(bag *diag.Bag, file *source.File, report observ.Report) {
	if bag == nil {
		return
	}
	payload := timingPayload{
		Kind:    "scan",
		Path:    file.Path,
		TotalMS: report.TotalMS,
		Phases:  report.Phases,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	entry := diag.New(diag.SevInfo, diag.ObsTimings, source.At(file.ID, 0),
		fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.TotalMS)).
		WithNote(source.At(file.ID, 0), string(data))

	if bag.Add(entry) {
		return
	}
	overflow := diag.NewBag(1)
	overflow.Add(entry)
	bag.Merge(overflow)
}
