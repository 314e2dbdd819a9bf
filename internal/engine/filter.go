package engine

import (
	"github.com/meshackyaro/Sanctifier/internal/config"
	"github.com/meshackyaro/Sanctifier/internal/model"
)

// filterBySeverity removes findings below the configured severity threshold. An empty
// threshold keeps everything.
func filterBySeverity(findings []model.Finding, cfg config.Config) []model.Finding {
	if cfg.SeverityThreshold == "" {
		return findings
	}
	threshold := model.ParseSeverity(cfg.SeverityThreshold)
	var out []model.Finding
	for _, f := range findings {
		if model.SeverityGTE(f.Severity, threshold) {
			out = append(out, f)
		}
	}
	return out
}
