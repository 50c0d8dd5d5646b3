package runtime

import (
	"math"
	"strconv"
)

// IsTruthy implements spec.md §8's truthiness law: only nil and false
// are falsy, everything else — including 0 and "" — is truthy.
func IsTruthy(v Value) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// IsEqual implements spec.md §4.5's equality rule: nil equals only nil,
// numbers compare numerically, strings by content, booleans by value;
// values of different dynamic types are never equal.
func IsEqual(a, b Value) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	default:
		return a == b
	}
}

// Stringify renders v the way `print` and error-message interpolation
// do, per spec.md §6: integral numbers print without a decimal point,
// other numbers use the host's default double formatting, and nil/bool
// print as their literal keywords.
func Stringify(v Value) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		if val == math.Trunc(val) && !math.IsInf(val, 0) {
			return strconv.FormatFloat(val, 'f', -1, 64)
		}
		return strconv.FormatFloat(val, 'g', -1, 64)
	case string:
		return val
	case interface{ String() string }:
		return val.String()
	default:
		return "nil"
	}
}
