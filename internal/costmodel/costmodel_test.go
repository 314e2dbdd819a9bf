package costmodel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshackyaro/Sanctifier/internal/model"
	"github.com/meshackyaro/Sanctifier/internal/syntax"
)

func named(name string, args ...syntax.Type) *syntax.PathType {
	return &syntax.PathType{Segments: []syntax.PathSegment{{Name: name, Args: args}}}
}

func TestTypeSize(t *testing.T) {
	tests := []struct {
		name string
		typ  syntax.Type
		want int
	}{
		{"u32", named("u32"), 4},
		{"bool", named("bool"), 4},
		{"i64", named("i64"), 8},
		{"u128", named("u128"), 16},
		{"I128", named("I128"), 16},
		{"Address", named("Address"), 32},
		{"Bytes", named("Bytes"), 64},
		{"BytesN const arg", named("BytesN", &syntax.ConstArg{Text: "32"}), 64},
		{"Symbol", named("Symbol"), 64},
		{"qualified String", &syntax.PathType{Segments: []syntax.PathSegment{{Name: "soroban_sdk"}, {Name: "String"}}}, 64},
		{"Vec<u64>", named("Vec", named("u64")), 16},
		{"bare Vec", named("Vec"), 128},
		{"Map<Address,i128>", named("Map", named("Address"), named("i128")), 16 + 2*(32+16)},
		{"bare Map", named("Map"), 128},
		{"Option<u32>", named("Option", named("u32")), 5},
		{"bare Option", named("Option"), 32},
		{"unknown named", named("DataKey"), 32},
		{"array literal len", &syntax.ArrayType{Elem: named("u64"), Len: 4}, 32},
		{"array unknown len", &syntax.ArrayType{Elem: named("u64"), Len: -1}, 64},
		{"huge array saturates", &syntax.ArrayType{Elem: named("u128"), Len: 1 << 60}, math.MaxInt},
		{"Vec of huge array", named("Vec", &syntax.ArrayType{Elem: named("u128"), Len: 1 << 60}), math.MaxInt},
		{"Map of huge arrays", named("Map", named("u32"), &syntax.ArrayType{Elem: named("u64"), Len: math.MaxInt / 4}), math.MaxInt},
		{"reference", &syntax.RefType{Elem: named("u64")}, 8},
		{"tuple", &syntax.TupleType{Elems: []syntax.Type{named("u64"), named("u64")}}, 8},
		{"other", &syntax.OtherType{Kind: "function_type"}, 8},
		{"nested Vec<Option<Address>>", named("Vec", named("Option", named("Address"))), 8 + 1 + 32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeSize(tt.typ))
		})
	}
}

func TestStructAndEnumSize(t *testing.T) {
	fields := []syntax.Field{
		{Name: "owner", Type: named("Address")},
		{Name: "amount", Type: named("i128")},
	}
	assert.Equal(t, 48, StructSize(fields))
	assert.Equal(t, 0, StructSize(nil))

	variants := []syntax.Variant{
		{Name: "Admin"},
		{Name: "Balance", Fields: []syntax.Field{{Type: named("Address")}}},
		{Name: "Allowance", Fields: []syntax.Field{{Type: named("Address")}, {Type: named("Address")}}},
	}
	assert.Equal(t, DiscriminantSize+64, EnumSize(variants))
	assert.Equal(t, DiscriminantSize, EnumSize(nil))

	huge := syntax.Field{Type: &syntax.ArrayType{Elem: named("u128"), Len: 1 << 60}}
	assert.Equal(t, math.MaxInt, StructSize([]syntax.Field{huge, huge}))
	assert.Equal(t, math.MaxInt, EnumSize([]syntax.Variant{{Name: "Big", Fields: []syntax.Field{huge}}}))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		size      int
		limit     int
		threshold float64
		strict    bool
		want      model.SizeWarningLevel
		warn      bool
	}{
		{"at limit", 1000, 1000, 0.8, false, model.ExceedsLimit, true},
		{"over limit", 1500, 1000, 0.8, false, model.ExceedsLimit, true},
		{"approaching lower bound", 800, 1000, 0.8, false, model.ApproachingLimit, true},
		{"approaching", 999, 1000, 0.8, false, model.ApproachingLimit, true},
		{"below threshold", 799, 1000, 0.8, false, "", false},
		{"strict half limit", 500, 1000, 0.8, true, model.ExceedsLimit, true},
		{"strict below half", 499, 1000, 0.8, true, "", false},
		{"blob over small limit", 64, 50, 0.8, false, model.ExceedsLimit, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, ok := Classify(tt.size, tt.limit, tt.threshold, tt.strict)
			require.Equal(t, tt.warn, ok)
			assert.Equal(t, tt.want, level)
		})
	}
}

func TestMethodAndMacroCosts(t *testing.T) {
	for _, m := range []string{"get", "set", "has", "update", "remove"} {
		assert.Equal(t, StorageOpCost, MethodCost(m), m)
	}
	assert.Equal(t, AuthCheckCost, MethodCost("require_auth"))
	assert.Equal(t, AuthCheckCost, MethodCost("require_auth_for_args"))
	assert.Equal(t, MethodCallCost, MethodCost("clone"))

	instr, mem := MacroCostOf("vec")
	assert.Equal(t, []int{CollectionMacroCost, CollectionMacroMem}, []int{instr, mem})
	instr, mem = MacroCostOf("map")
	assert.Equal(t, []int{CollectionMacroCost, CollectionMacroMem}, []int{instr, mem})
	instr, mem = MacroCostOf("symbol_short")
	assert.Equal(t, []int{SymbolMacroCost, SymbolMacroMem}, []int{instr, mem})
	instr, mem = MacroCostOf("panic")
	assert.Equal(t, []int{MacroCost, 0}, []int{instr, mem})
}
