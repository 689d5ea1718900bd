package reporter

import "strconv"

// Number is a gauge magnitude, either an integer or a floating point value.
// Keeping the two representations apart lets backends write integers at full
// width instead of converting them through float64 first.
type Number struct {
	f       float64
	i       int64
	isFloat bool
}

// Int64 wraps an integer magnitude.
func Int64(v int64) Number { return Number{i: v} }

// Float64 wraps a floating point magnitude.
func Float64(v float64) Number { return Number{f: v, isFloat: true} }

// IsFloat reports whether the number was recorded as a floating point value.
func (n Number) IsFloat() bool { return n.isFloat }

// Field returns the magnitude in its native width, either int64 or float64.
func (n Number) Field() interface{} {
	if n.isFloat {
		return n.f
	}
	return n.i
}

// AsFloat64 returns the magnitude as a float64, converting integers.
func (n Number) AsFloat64() float64 {
	if n.isFloat {
		return n.f
	}
	return float64(n.i)
}

func (n Number) String() string {
	if n.isFloat {
		return strconv.FormatFloat(n.f, 'f', -1, 64)
	}
	return strconv.FormatInt(n.i, 10)
}

// Sample is one named gauge measurement. Batches are ordered slices so point
// construction stays deterministic.
type Sample struct {
	Name  string
	Value Number
}
