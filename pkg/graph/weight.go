package graph

import (
	"fmt"
	"math"
)

// validateWeight rejects numeric weights which would break a shortest path search:
// negative values, NaN and infinities. Non-numeric labels are accepted as is.
func validateWeight[W comparable](w W) error {
	var f float64
	switch v := any(w).(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int8:
		f = float64(v)
	case int16:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	default:
		return nil
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidWeight, w)
	}
	return nil
}
