package domain

// Optional marks whether an update-payload field was provided. The zero value
// is "not provided"; Some(nil pointer) is "provided, set to NULL" — the two
// are never conflated.
type Optional[T any] struct {
	value T
	set   bool
}

// Some wraps a provided value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// Get returns the value and whether it was provided.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether the field was provided.
func (o Optional[T]) IsSet() bool {
	return o.set
}
