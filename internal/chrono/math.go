package chrono

import "math"

// safeAdd returns a+b, failing with an arithmetic-overflow error instead of
// wrapping around.
func safeAdd(a, b int64) (int64, error) {
	sum := a + b
	if (a > 0 && b > 0 && sum < 0) || (a < 0 && b < 0 && sum >= 0) {
		return 0, NewArithmeticOverflowError("addition")
	}
	return sum, nil
}

// safeMultiply returns a*b, failing with an arithmetic-overflow error instead
// of wrapping around.
func safeMultiply(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a == -1 && b == math.MinInt64 || b == -1 && a == math.MinInt64 {
		return 0, NewArithmeticOverflowError("multiplication")
	}
	product := a * b
	if product/b != a {
		return 0, NewArithmeticOverflowError("multiplication")
	}
	return product, nil
}

// safeNegate returns -a, failing on math.MinInt64.
func safeNegate(a int64) (int64, error) {
	if a == math.MinInt64 {
		return 0, NewArithmeticOverflowError("negation")
	}
	return -a, nil
}

// floorDiv returns the floor of a/b. Unlike Go's / operator it rounds toward
// negative infinity, so floorDiv(-1, 30) is -1, not 0.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// floorMod returns the remainder of floorDiv. The result always has the sign
// of b, so floorMod(-1, 30) is 29.
func floorMod(a, b int64) int64 {
	r := a % b
	if r != 0 && ((r < 0) != (b < 0)) {
		r += b
	}
	return r
}
