// Package result provides a tagged status value for streamed asynchronous
// operations. A producer emits Loading(true) followed by exactly one terminal
// value, Success or Error, for each logical operation. The type does not
// enforce that order.
package result

import "fmt"

// Kind identifies the active variant of a Result.
type Kind uint8

const (
	KindLoading Kind = iota + 1
	KindSuccess
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindLoading:
		return "loading"
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Result carries at most one of a loading flag, a success payload or an
// error message. Only the fields belonging to Kind are meaningful.
type Result[T any] struct {
	kind      Kind
	isLoading bool
	data      *T
	message   string
}

// Loading reports progress of an operation.
func Loading[T any](isLoading bool) Result[T] {
	return Result[T]{kind: KindLoading, isLoading: isLoading}
}

// Success reports the outcome of an operation. data may be nil.
func Success[T any](data *T) Result[T] {
	return Result[T]{kind: KindSuccess, data: data}
}

// Error reports a failed operation with a human-readable message.
func Error[T any](message string) Result[T] {
	return Result[T]{kind: KindError, message: message}
}

// Kind returns the active variant.
func (r Result[T]) Kind() Kind { return r.kind }

// IsLoading returns the loading flag of a Loading result.
func (r Result[T]) IsLoading() bool { return r.isLoading }

// Data returns the payload of a Success result, or nil.
func (r Result[T]) Data() *T { return r.data }

// Message returns the message of an Error result.
func (r Result[T]) Message() string { return r.message }

// IsTerminal reports whether r ends an operation.
func (r Result[T]) IsTerminal() bool {
	return r.kind == KindSuccess || r.kind == KindError
}

func (r Result[T]) String() string {
	switch r.kind {
	case KindLoading:
		return fmt.Sprintf("Loading(%t)", r.isLoading)
	case KindSuccess:
		if r.data == nil {
			return "Success(<nil>)"
		}
		return fmt.Sprintf("Success(%+v)", *r.data)
	case KindError:
		return fmt.Sprintf("Error(%q)", r.message)
	default:
		return "Result(<zero>)"
	}
}
