package report

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/meshackyaro/Sanctifier/internal/model"
)

var (
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	arrowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	nameStyle   = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

// Text writes the human-readable report.
func Text(w io.Writer, res *model.ScanResult) error {
	tw := &textWriter{w: w}
	r := res.Report

	tw.line("%s %s (%d files)", headerStyle.Render("Sanctifier:"), res.Root, len(res.Files))

	section(tw, len(r.StorageCollisions) == 0, "No storage key collisions found.", "Found potential Storage Key Collisions!", func() {
		for _, c := range r.StorageCollisions {
			tw.item("Value: %s", nameStyle.Render(c.KeyValue))
			tw.detail("Type: %s", c.KeyType)
			tw.detail("Location: %s", c.Location)
			tw.detail("Message: %s", c.Message)
		}
	})
	section(tw, len(r.AuthGaps) == 0, "No authentication gaps found.", "Found potential Authentication Gaps!", func() {
		for _, g := range r.AuthGaps {
			tw.item("Function: %s", nameStyle.Render(g))
		}
	})
	section(tw, len(r.PanicIssues) == 0, "No explicit Panics/Unwraps found.", "Found explicit Panics/Unwraps!", func() {
		for _, p := range r.PanicIssues {
			tw.item("Type: %s", nameStyle.Render(p.IssueType))
			tw.detail("Location: %s", p.Location)
		}
	})
	section(tw, len(r.ArithmeticIssues) == 0, "No unchecked Arithmetic Operations found.", "Found unchecked Arithmetic Operations!", func() {
		for _, a := range r.ArithmeticIssues {
			tw.item("Op: %s", nameStyle.Render(a.Operation))
			tw.detail("Location: %s", a.Location)
			tw.detail("Suggestion: %s", a.Suggestion)
		}
	})
	section(tw, len(r.LedgerSizeWarnings) == 0, "No ledger size issues found.", "Found Ledger Size Warnings!", func() {
		for _, s := range r.LedgerSizeWarnings {
			tw.item("Struct: %s", nameStyle.Render(s.StructName))
			if s.Location != "" {
				tw.detail("Location: %s", s.Location)
			}
			tw.detail("Size: %d bytes (limit %d, %s)", s.EstimatedSize, s.Limit, s.Level)
		}
	})
	if len(r.EventIssues) > 0 {
		section(tw, false, "", "Found event issues!", func() {
			for _, e := range r.EventIssues {
				tw.item("Event: %s (%s)", nameStyle.Render(e.EventName), e.IssueType)
				tw.detail("Location: %s", e.Location)
				tw.detail("Message: %s", e.Message)
			}
		})
	}
	if len(r.UnsafePatterns) > 0 {
		section(tw, false, "", "Found unsafe patterns!", func() {
			for _, u := range r.UnsafePatterns {
				tw.item("%s at line %d", nameStyle.Render(string(u.PatternType)), u.Line)
				tw.detail("%s", u.Snippet)
			}
		})
	}
	if len(r.Upgrades.Findings) > 0 {
		section(tw, false, "", "Found upgrade and admin functions!", func() {
			for _, f := range r.Upgrades.Findings {
				tw.item("%s: %s", nameStyle.Render(string(f.Category)), f.Message)
				tw.detail("Location: %s", f.Location)
				tw.detail("Suggestion: %s", f.Suggestion)
			}
		})
	}
	if len(r.CustomRuleMatches) > 0 {
		section(tw, false, "", "Found custom rule matches!", func() {
			for _, m := range r.CustomRuleMatches {
				tw.item("Rule: %s (line %d)", nameStyle.Render(m.RuleName), m.Line)
				tw.detail("%s", m.Snippet)
			}
		})
	}
	if len(r.GasEstimates) > 0 {
		tw.line("")
		tw.line("%s", headerStyle.Render("Gas estimates:"))
		for _, g := range r.GasEstimates {
			tw.line("   %-40s %8d instr %8d bytes", g.FunctionName, g.EstimatedInstructions, g.EstimatedMemoryBytes)
		}
	}

	tw.line("")
	tw.line("%s %s", okStyle.Render("Static analysis complete."), dimStyle.Render(fmt.Sprintf("(%d findings, %s)", len(res.Findings), res.Elapsed.Round(time.Millisecond))))
	return tw.err
}

func section(tw *textWriter, empty bool, okMsg, warnMsg string, body func()) {
	if empty {
		tw.line("%s", okStyle.Render(okMsg))
		return
	}
	tw.line("")
	tw.line("%s", warnStyle.Render(warnMsg))
	body()
}

// textWriter keeps the first write error so rendering code stays linear.
type textWriter struct {
	w   io.Writer
	err error
}

func (t *textWriter) line(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format+"\n", args...)
}

func (t *textWriter) item(format string, args ...any) {
	t.line("   "+arrowStyle.Render("->")+" "+format, args...)
}

func (t *textWriter) detail(format string, args ...any) {
	t.line("      "+format, args...)
}
