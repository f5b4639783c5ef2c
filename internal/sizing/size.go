// Package sizing provides overflow-checked size arithmetic.
package sizing

// AddUint64 adds two uint64 values, returning (result, false) on overflow.
func AddUint64(a, b uint64) (uint64, bool) {
	sum := a + b
	if sum < a {
		return 0, false
	}
	return sum, true
}

// MulUint64 multiplies two uint64 values, returning (result, false) on overflow.
func MulUint64(a, b uint64) (uint64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	product := a * b
	if product/b != a {
		return 0, false
	}
	return product, true
}

// Within reports whether the range [offset, offset+size) fits in a buffer of length n.
func Within(offset, size uint64, n int) bool {
	if n < 0 {
		return false
	}
	end, ok := AddUint64(offset, size)
	if !ok {
		return false
	}
	return end <= uint64(n)
}
