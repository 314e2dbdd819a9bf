package report

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/meshackyaro/Sanctifier/internal/detectors"
	"github.com/meshackyaro/Sanctifier/internal/model"
)

// ComplexityText renders metrics as a box-drawn table.
func ComplexityText(w io.Writer, m model.ContractMetrics) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Complexity report: %s\n", m.ContractPath)
	fmt.Fprintf(&b, "Dependencies: %d   Functions: %d\n\n", m.DependencyCount, len(m.Functions))
	border := "├" + strings.Repeat("─", 26) + "┼" + strings.Repeat("─", 6) + "┼" + strings.Repeat("─", 8) + "┼" +
		strings.Repeat("─", 9) + "┼" + strings.Repeat("─", 5) + "┼" + strings.Repeat("─", 10) + "┤\n"
	fmt.Fprintf(&b, "│ %-24s │ %4s │ %6s │ %7s │ %3s │ %-8s │\n", "Function", "CC", "Params", "Nesting", "LOC", "Status")
	b.WriteString(border)
	for _, f := range m.Functions {
		status := "ok"
		if len(f.Warnings) > 0 {
			status = "warn"
		}
		fmt.Fprintf(&b, "│ %-24s │ %4d │ %6d │ %7d │ %3d │ %-8s │\n",
			truncate(f.Name, 24), f.CyclomaticComplexity, f.ParamCount, f.MaxNestingDepth, f.LOC, status)
	}
	var warned bool
	for _, f := range m.Functions {
		for _, warn := range f.Warnings {
			if !warned {
				b.WriteString("\nWarnings:\n")
				warned = true
			}
			fmt.Fprintf(&b, "  %s: %s\n", f.Name, warn)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func ComplexityJSON(w io.Writer, m model.ContractMetrics) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

var complexityHTML = template.Must(template.New("complexity").Funcs(template.FuncMap{
	"over": func(v, limit int) string {
		if v > limit {
			return "bad"
		}
		return "good"
	},
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>Sanctifier Complexity Report</title>
<style>
body { background: #0d1117; color: #c9d1d9; font-family: -apple-system, Segoe UI, sans-serif; padding: 2rem; }
h1 { color: #58a6ff; }
.meta { color: #8b949e; margin-bottom: 1rem; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #30363d; padding: 0.5rem 0.75rem; text-align: left; }
th { background: #161b22; }
.good { color: #3fb950; }
.bad { color: #f85149; font-weight: bold; }
tr.warn { background: #2d1b1b; }
.warn-list { margin: 0; color: #d29922; }
</style>
</head>
<body>
<h1>Sanctifier Contract Complexity Report</h1>
<div class="meta">
  <b>Contract:</b> {{.Metrics.ContractPath}} &nbsp;|&nbsp;
  <b>Dependencies:</b> {{.Metrics.DependencyCount}} &nbsp;|&nbsp;
  <b>Functions:</b> {{len .Metrics.Functions}}
</div>
<table>
  <thead>
    <tr><th>Function</th><th>Cyclomatic CC</th><th>Params</th><th>Nesting</th><th>LOC</th><th>Status</th></tr>
  </thead>
  <tbody>
{{- range .Metrics.Functions}}
    <tr{{if .Warnings}} class="warn"{{end}}>
      <td>{{.Name}}</td>
      <td class="{{over .CyclomaticComplexity $.MaxCC}}">{{.CyclomaticComplexity}}</td>
      <td class="{{over .ParamCount $.MaxParams}}">{{.ParamCount}}</td>
      <td class="{{over .MaxNestingDepth $.MaxNesting}}">{{.MaxNestingDepth}}</td>
      <td class="{{over .LOC $.MaxLOC}}">{{.LOC}}</td>
      <td>{{if .Warnings}}warn{{else}}ok{{end}}</td>
    </tr>
{{- if .Warnings}}
    <tr class="warn-detail"><td colspan="6"><ul class="warn-list">{{range .Warnings}}<li>{{.}}</li>{{end}}</ul></td></tr>
{{- end}}
{{- end}}
  </tbody>
</table>
<p style="color:#8b949e;margin-top:1rem;font-size:0.8rem;">
Thresholds: CC &gt; {{.MaxCC}}, params &gt; {{.MaxParams}}, nesting &gt; {{.MaxNesting}}, LOC &gt; {{.MaxLOC}}
</p>
</body>
</html>
`))

// ComplexityHTML renders metrics as a standalone dark-themed page.
func ComplexityHTML(w io.Writer, m model.ContractMetrics) error {
	return complexityHTML.Execute(w, struct {
		Metrics                              model.ContractMetrics
		MaxCC, MaxParams, MaxNesting, MaxLOC int
	}{m, detectors.MaxCyclomatic, detectors.MaxParams, detectors.MaxNesting, detectors.MaxLOC})
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
