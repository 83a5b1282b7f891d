package vamphost

import "fmt"

// Numeric bridge between host-side array values and the contiguous
// float32 vectors the plugin contract works in. No resampling, no unit
// conversion; order and length are always preserved.

// FloatVector coerces a host 1-D numeric slice into a freshly allocated
// []float32. Accepted element types are the usual numeric kinds a dynamic
// caller might hold samples in: float32, float64 and the integer sizes.
// Anything else reports ErrTypeMismatch.
func FloatVector(value any) ([]float32, error) {
	switch v := value.(type) {
	case []float32:
		out := make([]float32, len(v))
		copy(out, v)
		return out, nil
	case []float64:
		out := make([]float32, len(v))
		for i, s := range v {
			out[i] = float32(s)
		}
		return out, nil
	case []int:
		out := make([]float32, len(v))
		for i, s := range v {
			out[i] = float32(s)
		}
		return out, nil
	case []int32:
		out := make([]float32, len(v))
		for i, s := range v {
			out[i] = float32(s)
		}
		return out, nil
	case []int64:
		out := make([]float32, len(v))
		for i, s := range v {
			out[i] = float32(s)
		}
		return out, nil
	case []any:
		out := make([]float32, len(v))
		for i, s := range v {
			f, err := scalarToFloat(s)
			if err != nil {
				return nil, fmt.Errorf("%w: element %d: %v", ErrTypeMismatch, i, err)
			}
			out[i] = f
		}
		return out, nil
	case nil:
		return nil, fmt.Errorf("%w: nil is not a numeric array", ErrTypeMismatch)
	default:
		return nil, fmt.Errorf("%w: %T is not a 1-D numeric array", ErrTypeMismatch, value)
	}
}

func scalarToFloat(value any) (float32, error) {
	switch s := value.(type) {
	case float32:
		return s, nil
	case float64:
		return float32(s), nil
	case int:
		return float32(s), nil
	case int32:
		return float32(s), nil
	case int64:
		return float32(s), nil
	default:
		return 0, fmt.Errorf("%T is not numeric", value)
	}
}

// VectorToFloats returns a contiguous copy of a float vector for handing
// back to the host. The input is never aliased, so plugin-owned storage
// cannot leak into host results.
func VectorToFloats(vector []float32) []float32 {
	out := make([]float32, len(vector))
	copy(out, vector)
	return out
}

// StringList copies a string vector into a host-visible ordered sequence.
func StringList(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	return out
}
