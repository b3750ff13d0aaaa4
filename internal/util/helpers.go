package util

// Ptr is used for the optional fields of backend DTOs.
func Ptr[T any](v T) *T {
	return &v
}

// Deref reads an optional field; nil yields the zero value.
func Deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Clamp keeps value within [lo, hi].
func Clamp(value, lo, hi int) int {
	return min(max(value, lo), hi)
}
