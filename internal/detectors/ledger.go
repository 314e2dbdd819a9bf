package detectors

import (
	"github.com/meshackyaro/Sanctifier/internal/costmodel"
	"github.com/meshackyaro/Sanctifier/internal/model"
	"github.com/meshackyaro/Sanctifier/internal/syntax"
)

// PersistedMarker is the attribute that marks a type as stored on the ledger.
const PersistedMarker = "contracttype"

// LedgerLimits carries the classification settings for LedgerSize.
type LedgerLimits struct {
	Limit       int
	Approaching float64
	Strict      bool
}

// LedgerSize sizes every top-level struct and enum marked #[contracttype] and reports
// the ones at or near the limit.
func LedgerSize(f *syntax.File, lim LedgerLimits) []model.SizeWarning {
	warnings := []model.SizeWarning{}
	for _, it := range f.Items {
		var (
			name string
			size int
			line int
		)
		switch it := it.(type) {
		case *syntax.StructItem:
			if !syntax.HasAttr(it.Attrs, PersistedMarker) {
				continue
			}
			name, size, line = it.Name, costmodel.StructSize(it.Fields), it.Line
		case *syntax.EnumItem:
			if !syntax.HasAttr(it.Attrs, PersistedMarker) {
				continue
			}
			name, size, line = it.Name, costmodel.EnumSize(it.Variants), it.Line
		default:
			continue
		}
		level, ok := costmodel.Classify(size, lim.Limit, lim.Approaching, lim.Strict)
		if !ok {
			continue
		}
		warnings = append(warnings, model.SizeWarning{
			StructName:    name,
			EstimatedSize: size,
			Limit:         lim.Limit,
			Level:         level,
			Line:          line,
		})
	}
	return warnings
}
