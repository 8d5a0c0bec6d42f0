package evaluator

import (
	"math"
	"strconv"
	"strings"
)

// formatNumber prints integral values without a fraction and everything
// else with six decimals, trailing zeros trimmed.
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		return strconv.FormatInt(int64(f), 10)
	}
	s := strconv.FormatFloat(f, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}

func isTruthy(obj Object) bool {
	switch obj := obj.(type) {
	case *Boolean:
		return obj.Value
	case *Null:
		return false
	case *Number:
		return obj.Value != 0
	case *String:
		return obj.Value != ""
	case nil:
		return false
	default:
		return true
	}
}

// objectsEqual compares numerically, then as strings, then by display form.
func objectsEqual(a, b Object) bool {
	if an, ok := a.(*Number); ok {
		if bn, ok := b.(*Number); ok {
			return an.Value == bn.Value
		}
	}
	if as, ok := a.(*String); ok {
		if bs, ok := b.(*String); ok {
			return as.Value == bs.Value
		}
	}
	return a.Inspect() == b.Inspect()
}

// toInt64 truncates a number the way bitwise operators and memory writes
// expect.
func toInt64(f float64) int64 {
	if math.IsNaN(f) {
		return 0
	}
	if f >= math.MaxInt64 {
		return math.MaxInt64
	}
	if f <= math.MinInt64 {
		return math.MinInt64
	}
	return int64(f)
}
