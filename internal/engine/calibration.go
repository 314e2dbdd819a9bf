package engine

import "github.com/meshackyaro/Sanctifier/internal/model"

// dedupeFindings merges findings sharing a fingerprint, keeping the first occurrence
// and the highest severity.
func dedupeFindings(in []model.Finding) []model.Finding {
	index := map[string]int{}
	var out []model.Finding
	for _, f := range in {
		if f.Fingerprint == "" {
			out = append(out, f)
			continue
		}
		if i, ok := index[f.Fingerprint]; ok {
			if !model.SeverityGTE(out[i].Severity, f.Severity) {
				out[i].Severity = f.Severity
			}
			continue
		}
		index[f.Fingerprint] = len(out)
		out = append(out, f)
	}
	return out
}
