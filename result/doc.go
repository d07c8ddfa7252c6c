// Package result provides a generic two-variant outcome type.
//
// A Result[T] holds either a value or an error, never both. The Of
// helpers run a possibly-failing operation and capture its returned
// error — or a panic — as the failure variant, so the caller can branch
// on data instead of catching:
//
//	res := result.Of(func() (*User, error) {
//	    return repo.Find(ctx, id)
//	})
//	if res.IsErr() {
//	    return res.Err()
//	}
//	user := res.Value()
//
// Results are immutable and agnostic to what the wrapped operation
// does; interpreting the failure is the caller's job.
package result
