// Package options implements the generic functional options used by the
// codec, block and facade packages.
package options

// Option configures a target of type T, usually a pointer to a config struct.
type Option[T any] interface {
	apply(T) error
}

// Func adapts a plain function to the Option interface.
type Func[T any] struct {
	fn func(T) error
}

func (f *Func[T]) apply(target T) error {
	return f.fn(target)
}

// New creates an option from a function that may reject its input.
// Validation belongs here so a config is never left half applied by the caller.
func New[T any](fn func(T) error) *Func[T] {
	return &Func[T]{fn: fn}
}

// NoError creates an option from a setter that cannot fail.
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{
		fn: func(target T) error {
			fn(target)
			return nil
		},
	}
}

// Apply applies opts to target in order and stops at the first error.
// Nil options are skipped.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}

// Join returns defaults followed by overrides in a new slice, so that later
// options win without mutating either input.
func Join[T any](defaults []Option[T], overrides ...Option[T]) []Option[T] {
	out := make([]Option[T], 0, len(defaults)+len(overrides))
	out = append(out, defaults...)

	return append(out, overrides...)
}
