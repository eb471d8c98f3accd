// Package must turns errors that cannot be handled into panics. Use it only at process edges.
package must

// OK panics when err is not nil.
func OK(err error) {
	if err != nil {
		panic(err)
	}
}

// Any returns v, or panics when err is not nil.
//
//nolint:ireturn // generic passthrough
func Any[T any](v T, err error) T {
	OK(err)

	return v
}
