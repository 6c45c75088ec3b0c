package model

import (
	"fmt"
	"math"
)

// MaxAmount bounds costs, capacities and coordinates so that totals over a
// portfolio stay finite.
const MaxAmount = 1e15

// MaxDuration bounds an estimated duration in days.
const MaxDuration = 100_000

// CheckNumber reports an ErrInvalid error unless v is finite and within
// [lo, hi].
func CheckNumber(field string, v, lo, hi float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be a finite number", ErrInvalid, field)
	}
	if v < lo {
		if lo == 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalid, field)
		}
		return fmt.Errorf("%w: %s must be at least %g", ErrInvalid, field, lo)
	}
	if v > hi {
		return fmt.Errorf("%w: %s must not exceed %g", ErrInvalid, field, hi)
	}
	return nil
}

func checkAmount(field string, v float64) error {
	return CheckNumber(field, v, 0, MaxAmount)
}
