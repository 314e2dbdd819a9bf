package costmodel

// Synthetic instruction costs. Values are heuristic approximations, not host-measured.
const (
	FnBaseInstructions = 50
	FnBaseMemory       = 32

	BinaryOpCost   = 5
	CallCost       = 20
	StorageOpCost  = 1000
	AuthCheckCost  = 500
	MethodCallCost = 25

	LocalCost       = 2
	LocalUntypedMem = 8

	CollectionMacroCost = 50
	CollectionMacroMem  = 128
	SymbolMacroCost     = 10
	SymbolMacroMem      = 32
	MacroCost           = 10

	LoopOverhead = 50
	// LoopMultiplier stands in for an assumed iteration count.
	LoopMultiplier = 10
)

// MethodCost returns the instruction cost of a method call by name.
func MethodCost(name string) int {
	switch name {
	case "get", "set", "has", "update", "remove":
		return StorageOpCost
	case "require_auth", "require_auth_for_args":
		return AuthCheckCost
	default:
		return MethodCallCost
	}
}

// MacroCostOf returns the instruction and memory cost of a macro invocation by name.
func MacroCostOf(name string) (instructions, memory int) {
	switch name {
	case "vec", "map":
		return CollectionMacroCost, CollectionMacroMem
	case "symbol_short", "String":
		return SymbolMacroCost, SymbolMacroMem
	default:
		return MacroCost, 0
	}
}
