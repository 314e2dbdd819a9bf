package detectors

import (
	"strings"

	"github.com/meshackyaro/Sanctifier/internal/model"
	"github.com/meshackyaro/Sanctifier/internal/syntax"
)

var (
	authPrimitives  = map[string]bool{"require_auth": true, "require_auth_for_args": true}
	mutatingMethods = map[string]bool{"set": true, "update": true, "remove": true}
	storageKeywords = []string{"storage", "persistent", "temporary", "instance"}
)

// AuthGaps reports public impl methods that write storage without calling an
// authorization primitive anywhere in their body. The check is co-occurrence only:
// it does not follow control flow.
func AuthGaps(f *syntax.File) []model.AuthGap {
	gaps := []model.AuthGap{}
	for _, fn := range publicImplFns(f) {
		mutates, authed := authScan(f, fn.Body)
		if mutates && !authed {
			gaps = append(gaps, model.AuthGap{FunctionName: fn.Name, Line: fn.Line})
		}
	}
	return gaps
}

func authScan(f *syntax.File, body *syntax.Block) (mutates, authed bool) {
	syntax.Inspect(body, func(n syntax.Node) bool {
		switch n := n.(type) {
		case *syntax.CallExpr:
			if authPrimitives[calleeName(n)] {
				authed = true
			}
		case *syntax.MethodCallExpr:
			if authPrimitives[n.Method] {
				authed = true
			}
			if mutatingMethods[n.Method] && n.Receiver != nil && isStorageReceiver(f.Text(n.Receiver.Pos())) {
				mutates = true
			}
		case *syntax.MacroExpr:
			if authPrimitives[n.Name()] {
				authed = true
			}
		}
		return true
	})
	return mutates, authed
}

func isStorageReceiver(text string) bool {
	for _, kw := range storageKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
