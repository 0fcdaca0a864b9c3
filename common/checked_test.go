package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeAddUint64(t *testing.T) {
	sum, ok := SafeAddUint64(1, 2)
	assert.True(t, ok)
	assert.Equal(t, uint64(3), sum)

	sum, ok = SafeAddUint64(math.MaxUint64, 0)
	assert.True(t, ok)
	assert.Equal(t, uint64(math.MaxUint64), sum)

	_, ok = SafeAddUint64(math.MaxUint64, 1)
	assert.False(t, ok)

	_, ok = SafeAddUint64(math.MaxUint64-10, 11)
	assert.False(t, ok)
}

func TestSafeSubUint64(t *testing.T) {
	diff, ok := SafeSubUint64(3, 2)
	assert.True(t, ok)
	assert.Equal(t, uint64(1), diff)

	diff, ok = SafeSubUint64(5, 5)
	assert.True(t, ok)
	assert.Equal(t, uint64(0), diff)

	_, ok = SafeSubUint64(2, 3)
	assert.False(t, ok)
}
