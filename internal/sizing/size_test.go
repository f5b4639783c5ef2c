package sizing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddUint64(t *testing.T) {
	sum, ok := AddUint64(1, 2)
	assert.True(t, ok)
	assert.Equal(t, uint64(3), sum)

	_, ok = AddUint64(math.MaxUint64, 1)
	assert.False(t, ok)
}

func TestMulUint64(t *testing.T) {
	product, ok := MulUint64(0xffffffff, 128)
	assert.True(t, ok)
	assert.Equal(t, uint64(0xffffffff)*128, product)

	product, ok = MulUint64(0, math.MaxUint64)
	assert.True(t, ok)
	assert.Zero(t, product)

	_, ok = MulUint64(math.MaxUint64, 2)
	assert.False(t, ok)
}

func TestWithin(t *testing.T) {
	tests := []struct {
		name   string
		offset uint64
		size   uint64
		n      int
		want   bool
	}{
		{"inside", 2, 3, 10, true},
		{"exact end", 5, 5, 10, true},
		{"empty at end", 10, 0, 10, true},
		{"one over", 5, 6, 10, false},
		{"offset past end", 11, 0, 10, false},
		{"overflow", math.MaxUint64, 1, 10, false},
		{"negative length", 0, 0, -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Within(tt.offset, tt.size, tt.n))
		})
	}
}
