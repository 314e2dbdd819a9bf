package analyzer

import (
	"go.uber.org/zap"
)

// recoverable runs fn and returns fallback if fn panics. Every detector entry point
// goes through it so one faulting pass never aborts the others.
func recoverable[R any](log *zap.Logger, detector string, fallback R, fn func() R) (res R) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn("detector fault recovered",
				zap.String("detector", detector),
				zap.Any("panic", r),
			)
			res = fallback
		}
	}()
	return fn()
}
