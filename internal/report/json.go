package report

import (
	"encoding/json"
	"io"

	"github.com/meshackyaro/Sanctifier/internal/model"
)

type jsonReport struct {
	RunID string   `json:"run_id"`
	Root  string   `json:"root"`
	Files []string `json:"files"`
	model.Report
	Findings []model.Finding `json:"findings"`
}

// JSON writes the merged report with the detector lists at top level.
func JSON(w io.Writer, res *model.ScanResult) error {
	out := jsonReport{RunID: res.RunID, Root: res.Root, Files: res.Files, Report: res.Report, Findings: res.Findings}
	out.Report.Normalize()
	if out.Files == nil {
		out.Files = []string{}
	}
	if out.Findings == nil {
		out.Findings = []model.Finding{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
