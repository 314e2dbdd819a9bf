package engine

import (
	"encoding/json"
	"os"
	"sort"
	"time"

	"github.com/meshackyaro/Sanctifier/internal/model"
)

type baseline struct {
	GeneratedAt  time.Time       `json:"generatedAt"`
	Fingerprints map[string]bool `json:"fingerprints"`
}

// loadBaseline accepts either a bare JSON array of fingerprints or the full object
// written by writeBaseline.
func loadBaseline(path string) (baseline, error) {
	b := baseline{Fingerprints: map[string]bool{}}
	if path == "" {
		return b, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return b, err
	}
	var fp []string
	if err := json.Unmarshal(data, &fp); err == nil {
		for _, f := range fp {
			b.Fingerprints[f] = true
		}
		return b, nil
	}
	var full struct {
		GeneratedAt  time.Time `json:"generatedAt"`
		Fingerprints []string  `json:"fingerprints"`
	}
	if err := json.Unmarshal(data, &full); err != nil {
		return b, err
	}
	b.GeneratedAt = full.GeneratedAt
	for _, f := range full.Fingerprints {
		b.Fingerprints[f] = true
	}
	return b, nil
}

func filterByBaseline(findings []model.Finding, b baseline) []model.Finding {
	if len(b.Fingerprints) == 0 {
		return findings
	}
	var out []model.Finding
	for _, f := range findings {
		if f.Fingerprint != "" && b.Fingerprints[f.Fingerprint] {
			continue
		}
		out = append(out, f)
	}
	return out
}

func writeBaseline(path string, findings []model.Finding, now time.Time) error {
	if path == "" {
		return nil
	}
	seen := map[string]bool{}
	var arr []string
	for _, f := range findings {
		if f.Fingerprint != "" && !seen[f.Fingerprint] {
			seen[f.Fingerprint] = true
			arr = append(arr, f.Fingerprint)
		}
	}
	sort.Strings(arr)
	out := struct {
		GeneratedAt  time.Time `json:"generatedAt"`
		Fingerprints []string  `json:"fingerprints"`
	}{GeneratedAt: now.UTC(), Fingerprints: arr}
	if out.Fingerprints == nil {
		out.Fingerprints = []string{}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
