package detectors

import (
	"fmt"
	"strings"

	"github.com/meshackyaro/Sanctifier/internal/model"
	"github.com/meshackyaro/Sanctifier/internal/syntax"
)

const (
	upgradeMessage    = "Potential upgrade or administrative function found."
	upgradeSuggestion = "Ensure this function is protected by proper authentication."
	unguardedMessage  = "Upgrade or administrative function does not call require_auth."
	initSuggestion    = "Guard initialization so it can only run once."
)

var (
	initNames  = map[string]bool{"initialize": true, "init": true, "initialise": true}
	adminNames = map[string]bool{
		"set_admin":      true,
		"upgrade":        true,
		"set_authorized": true,
		"deploy":         true,
		"update_admin":   true,
		"transfer_admin": true,
		"change_admin":   true,
	}
)

func isUpgradeOrAdmin(name string) bool {
	if adminNames[name] {
		return true
	}
	return strings.Contains(name, "upgrade") && (strings.Contains(name, "contract") || strings.Contains(name, "wasm"))
}

// UpgradePatterns reviews the upgrade and administration surface of a contract:
// initializers, admin or upgrade entry points and persisted storage types.
func UpgradePatterns(f *syntax.File) model.UpgradeReport {
	r := model.UpgradeReport{
		Findings:          []model.UpgradeFinding{},
		UpgradeMechanisms: []string{},
		InitFunctions:     []string{},
		StorageTypes:      []string{},
		Suggestions:       []string{},
	}
	for _, it := range f.Items {
		switch it := it.(type) {
		case *syntax.StructItem:
			if syntax.HasAttr(it.Attrs, PersistedMarker) {
				r.StorageTypes = append(r.StorageTypes, it.Name)
			}
		case *syntax.EnumItem:
			if syntax.HasAttr(it.Attrs, PersistedMarker) {
				r.StorageTypes = append(r.StorageTypes, it.Name)
			}
		case *syntax.ImplItem:
			for _, fn := range it.Fns {
				upgradeFn(f, fn, &r)
			}
		}
	}
	if len(r.InitFunctions) > 0 {
		r.Suggestions = append(r.Suggestions, initSuggestion)
	}
	if len(r.UpgradeMechanisms) > 0 {
		r.Suggestions = append(r.Suggestions, upgradeSuggestion)
	}
	return r
}

func upgradeFn(f *syntax.File, fn *syntax.FnItem, r *model.UpgradeReport) {
	if initNames[fn.Name] {
		r.InitFunctions = append(r.InitFunctions, fn.Name)
	}
	if !isUpgradeOrAdmin(fn.Name) {
		return
	}
	r.UpgradeMechanisms = append(r.UpgradeMechanisms, fn.Name)
	loc := fmt.Sprintf("%s:%d", fn.Name, fn.Line)
	r.Findings = append(r.Findings, model.UpgradeFinding{
		Category:     model.CategoryGovernance,
		FunctionName: fn.Name,
		Location:     loc,
		Message:      upgradeMessage,
		Suggestion:   upgradeSuggestion,
		Line:         fn.Line,
	})
	if _, authed := authScan(f, fn.Body); !authed {
		r.Findings = append(r.Findings, model.UpgradeFinding{
			Category:     model.CategoryAdminControl,
			FunctionName: fn.Name,
			Location:     loc,
			Message:      unguardedMessage,
			Suggestion:   upgradeSuggestion,
			Line:         fn.Line,
		})
	}
}
