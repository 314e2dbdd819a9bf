package engine

import (
	"time"

	"github.com/meshackyaro/Sanctifier/internal/model"
)

// WriteBaseline records the fingerprints of findings so later scans can hide them.
func WriteBaseline(path string, findings []model.Finding) error {
	return writeBaseline(path, findings, time.Now())
}
