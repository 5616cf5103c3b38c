package driver

import (
	"encoding/json"
	"fmt"

	"github.com/forestaa/troll/internal/diag"
	"github.com/forestaa/troll/internal/observ"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// AppendTimings folds a timing report into the bag as an info diagnostic.
// Человеку показывается итог, машинная часть лежит в note как JSON.
func AppendTimings(bag *diag.Bag, path string, report observ.Report) {
	if bag == nil {
		return
	}
	payload := timingPayload{
		Kind:    "analyze",
		Path:    path,
		TotalMS: report.TotalMS,
		Phases:  report.Phases,
	}
	msg := fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.TotalMS)
	if path != "" {
		msg = fmt.Sprintf("%s: %s", msg, path)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	d := diag.New(diag.SevInfo, diag.ObsTimings, diag.Loc{File: path}, msg).
		WithNote(diag.Loc{}, string(data))
	if bag.Add(d) {
		return
	}
	overflow := diag.NewBag(bag.Len() + 1)
	overflow.Add(d)
	bag.Merge(overflow)
}
