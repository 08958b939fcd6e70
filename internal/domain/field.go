package domain

// Field is a tri-state value used by partial updates.
//
// The zero value is "unset": the stored value must be kept.
// Set(v) replaces the stored value with v. For pointer types,
// Set(nil) clears the stored value.
type Field[T any] struct {
	value T
	set   bool
}

// Set returns a Field holding v.
func Set[T any](v T) Field[T] {
	return Field[T]{value: v, set: true}
}

// Unset returns the "keep current value" Field.
func Unset[T any]() Field[T] {
	return Field[T]{}
}

// IsSet reports whether the field carries a value (possibly nil).
func (f Field[T]) IsSet() bool { return f.set }

// Get returns the value and whether it was set.
func (f Field[T]) Get() (T, bool) { return f.value, f.set }

// apply writes the value into dst when set.
func (f Field[T]) apply(dst *T) {
	if f.set {
		*dst = f.value
	}
}
