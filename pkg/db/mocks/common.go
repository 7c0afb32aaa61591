// Package mocks provides FeastDatabase implementations for tests.
//
// Each mock has Impl, functions to be called, and Calls, arguments it was called with.
package mocks

// CallLog is the arguments of each call, in the order of calls.
type CallLog[T any] []T

// Times is how many times it was called.
func (l CallLog[T]) Times() int {
	return len(l)
}
