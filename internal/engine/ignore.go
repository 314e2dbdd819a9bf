package engine

import (
	"path/filepath"
	"strings"

	"github.com/meshackyaro/Sanctifier/internal/config"
	"github.com/meshackyaro/Sanctifier/internal/model"
	"github.com/meshackyaro/Sanctifier/internal/util"
)

// suppressMarker precedes a rule ID in an inline suppression comment:
//
//	// sanctifier:ignore auth_gaps reason="admin only"
const suppressMarker = "sanctifier:ignore "

// applyIgnores drops findings matched by config ignore rules or by an inline
// suppression comment in lines, the source of the file the findings belong to.
func applyIgnores(findings []model.Finding, cfg config.Config, lines []string) []model.Finding {
	var out []model.Finding
	for _, f := range findings {
		if isIgnored(f, cfg) || hasInlineSuppression(lines, f.RuleID, f.StartLine) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func isIgnored(f model.Finding, cfg config.Config) bool {
	for _, ig := range cfg.Ignore {
		if ig.Rule != "" && !strings.EqualFold(ig.Rule, f.RuleID) {
			continue
		}
		if ig.Path != "" && !strings.HasPrefix(filepath.ToSlash(f.File), filepath.ToSlash(ig.Path)) {
			continue
		}
		return true
	}
	return false
}

// hasInlineSuppression looks up to 5 lines above and 1 line below the finding.
func hasInlineSuppression(lines []string, ruleID string, startLine int) bool {
	if len(lines) == 0 {
		return false
	}
	return util.LineWindow(lines, startLine, 5, 1, suppressMarker+ruleID)
}
