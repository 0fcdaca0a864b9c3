package common

import (
	"math"
)

// SafeAddUint64 adds two uint64 values.
// The second return value is false if the addition overflows.
func SafeAddUint64(a, b uint64) (uint64, bool) {
	if a > math.MaxUint64-b {
		return 0, false
	}
	return a + b, true
}

// SafeSubUint64 subtracts b from a.
// The second return value is false if the subtraction underflows.
func SafeSubUint64(a, b uint64) (uint64, bool) {
	if a < b {
		return 0, false
	}
	return a - b, true
}
