// Package costmodel holds the fixed size and instruction tables shared by the ledger
// size estimator and the gas estimator.
package costmodel

import (
	"math"

	"github.com/meshackyaro/Sanctifier/internal/model"
	"github.com/meshackyaro/Sanctifier/internal/syntax"
)

const (
	DiscriminantSize = 4
	DefaultNamedSize = 32
	DefaultOtherSize = 8

	unknownSeqSize   = 128
	unknownMapSize   = 128
	unknownOptSize   = 32
	unknownArraySize = 64
)

var primitiveSizes = map[string]int{
	"u32":     4,
	"i32":     4,
	"bool":    4,
	"u64":     8,
	"i64":     8,
	"u128":    16,
	"i128":    16,
	"U128":    16,
	"I128":    16,
	"Address": 32,
	"Bytes":   64,
	"BytesN":  64,
	"String":  64,
	"Symbol":  64,
}

// TypeSize estimates the serialized byte size of t.
func TypeSize(t syntax.Type) int {
	switch t := t.(type) {
	case *syntax.PathType:
		return pathSize(t)
	case *syntax.ArrayType:
		if t.Len >= 0 {
			return mulSat(t.Len, TypeSize(t.Elem))
		}
		return unknownArraySize
	default:
		return DefaultOtherSize
	}
}

func pathSize(p *syntax.PathType) int {
	seg := p.Last()
	if size, ok := primitiveSizes[seg.Name]; ok {
		return size
	}
	args := typeArgs(seg.Args)
	switch seg.Name {
	case "Vec":
		if len(args) > 0 {
			return addSat(8, TypeSize(args[0]))
		}
		return unknownSeqSize
	case "Map":
		sum := 0
		for _, a := range args {
			sum = addSat(sum, TypeSize(a))
		}
		if sum > 0 {
			return addSat(16, mulSat(2, sum))
		}
		return unknownMapSize
	case "Option":
		if len(args) > 0 {
			return addSat(1, TypeSize(args[0]))
		}
		return unknownOptSize
	default:
		return DefaultNamedSize
	}
}

// typeArgs drops const generic arguments.
func typeArgs(in []syntax.Type) []syntax.Type {
	var out []syntax.Type
	for _, a := range in {
		if _, ok := a.(*syntax.ConstArg); ok {
			continue
		}
		out = append(out, a)
	}
	return out
}

// StructSize sums the field sizes.
func StructSize(fields []syntax.Field) int {
	total := 0
	for _, f := range fields {
		total = addSat(total, TypeSize(f.Type))
	}
	return total
}

// EnumSize is the discriminant plus the largest variant.
func EnumSize(variants []syntax.Variant) int {
	largest := 0
	for _, v := range variants {
		if s := StructSize(v.Fields); s > largest {
			largest = s
		}
	}
	return addSat(DiscriminantSize, largest)
}

// Sizes are non-negative and saturate at math.MaxInt.

func addSat(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

func mulSat(a, b int) int {
	if a != 0 && b > math.MaxInt/a {
		return math.MaxInt
	}
	return a * b
}

// Classify returns the warning level for size, or false when no warning applies.
func Classify(size, limit int, approaching float64, strict bool) (model.SizeWarningLevel, bool) {
	s, l := float64(size), float64(limit)
	switch {
	case size >= limit || (strict && s >= l*0.5):
		return model.ExceedsLimit, true
	case s >= l*approaching:
		return model.ApproachingLimit, true
	default:
		return "", false
	}
}
