package jsonlogic

import (
	"fmt"
	"math"
)

// Round arredonda args[0] a args[1] casas decimais (0 por omissão).
func Round(args ...any) (any, error) {
	if len(args) == 0 || args[0] == nil {
		return nil, nil
	}
	v, ok := toFloat64(args[0])
	if !ok {
		return nil, fmt.Errorf("round: not a number: %v", args[0])
	}
	p := 0.0
	if len(args) > 1 {
		if p, ok = toFloat64(args[1]); !ok {
			return nil, fmt.Errorf("round: invalid precision: %v", args[1])
		}
	}
	f := math.Pow(10, p)
	return math.Round(v*f) / f, nil
}

func toFloat64(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case int32:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint64:
		return float64(val), true
	case uint32:
		return float64(val), true
	}
	return 0, false
}
