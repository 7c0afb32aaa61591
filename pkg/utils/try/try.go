// Package try turns (value, error) pairs into one expression in tests.
//
//	db := try.To(postgres.New(ctx, uri)).OrFatal(t)
package try

// Fataler stops the test on an error. *testing.T is a Fataler.
type Fataler interface {
	Fatal(...any)
}

// Result is a value with the error returned together.
type Result[T any] struct {
	value T
	err   error
}

// To captures the results of a call.
func To[T any](value T, err error) Result[T] {
	return Result[T]{value: value, err: err}
}

// OrFatal returns the value, or calls ftl.Fatal with the error.
//
// When ftl has Helper (like *testing.T), it is called before Fatal.
// The value is the zero value after Fatal returns.
func (r Result[T]) OrFatal(ftl Fataler) T {
	if r.err == nil {
		return r.value
	}
	if h, ok := ftl.(interface{ Helper() }); ok {
		h.Helper()
	}
	ftl.Fatal(r.err)
	var zero T
	return zero
}
