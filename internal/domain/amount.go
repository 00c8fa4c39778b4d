package domain

import "math"

// AddChecked returns a+b, or ErrOverflow when the sum would wrap. All money
// counters in the engine go through this instead of raw addition.
func AddChecked(a, b uint64) (uint64, error) {
	if b > math.MaxUint64-a {
		return 0, ErrOverflow
	}
	return a + b, nil
}
