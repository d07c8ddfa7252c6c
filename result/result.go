package result

import "fmt"

// Result is the outcome of an operation: a value or an error, never both.
// The zero value is a success holding T's zero value.
type Result[T any] struct {
	value T
	err   error
}

// Ok creates a success result holding v.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Err creates a failure result holding err.
// A nil err yields a success holding T's zero value.
func Err[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// Of runs fn and captures its outcome. A returned error becomes the
// failure variant unchanged; a panic is recovered and becomes the
// failure variant as well. Of never raises.
func Of[T any](fn func() (T, error)) (res Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			res = Err[T](recoveredError(r))
		}
	}()

	v, err := fn()
	if err != nil {
		return Err[T](err)
	}
	return Ok(v)
}

// recoveredError converts a recovered panic value into an error,
// preserving identity when the value already is one.
func recoveredError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("result: recovered panic: %v", r)
}

// IsOk reports whether the result holds a value.
func (r Result[T]) IsOk() bool {
	return r.err == nil
}

// IsErr reports whether the result holds an error.
func (r Result[T]) IsErr() bool {
	return r.err != nil
}

// Value returns the held value. On a failure result it returns T's
// zero value; check IsOk or use Unpack when the distinction matters.
func (r Result[T]) Value() T {
	return r.value
}

// Err returns the held error, nil for a success result.
func (r Result[T]) Err() error {
	return r.err
}

// Unpack returns the value and error as an ordinary Go pair.
func (r Result[T]) Unpack() (T, error) {
	return r.value, r.err
}

// ValueOr returns the held value, or fallback on a failure result.
func (r Result[T]) ValueOr(fallback T) T {
	if r.err != nil {
		return fallback
	}
	return r.value
}
