// Package outcome carries the three states every remote call goes through:
// loading, success with a payload, or failure with a user-facing message.
package outcome

// Kind tags the state held by an Outcome.
type Kind int

const (
	KindLoading Kind = iota
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
		return "unknown"
	}
}

// DefaultErrorMessage is used when a failing collaborator gives no text.
const DefaultErrorMessage = "Something went wrong"

// Outcome is a Loading, Success or Error value. The zero value is Loading(false).
type Outcome[T any] struct {
	kind    Kind
	loading bool
	data    T
	message string
	cause   error
}

// Loading reports whether an operation is in flight.
func Loading[T any](active bool) Outcome[T] {
	return Outcome[T]{kind: KindLoading, loading: active}
}

// Success wraps a payload.
func Success[T any](data T) Outcome[T] {
	return Outcome[T]{kind: KindSuccess, data: data}
}

// Error wraps a failure message. An empty message becomes DefaultErrorMessage.
func Error[T any](message string) Outcome[T] {
	if message == "" {
		message = DefaultErrorMessage
	}
	return Outcome[T]{kind: KindError, message: message}
}

// FromError builds Success(data) when err is nil and Error(err.Error()) otherwise.
func FromError[T any](data T, err error) Outcome[T] {
	if err != nil {
		o := Error[T](err.Error())
		o.cause = err
		return o
	}
	return Success(data)
}

func (o Outcome[T]) Kind() Kind { return o.kind }

// IsLoading is true only for Loading(true).
func (o Outcome[T]) IsLoading() bool { return o.kind == KindLoading && o.loading }

// IsTerminal is true for Success and Error.
func (o Outcome[T]) IsTerminal() bool { return o.kind != KindLoading }

func (o Outcome[T]) IsSuccess() bool { return o.kind == KindSuccess }

func (o Outcome[T]) IsError() bool { return o.kind == KindError }

// Data returns the payload; it is the zero value unless the outcome is a Success.
func (o Outcome[T]) Data() T { return o.data }

// Message returns the failure text; empty unless the outcome is an Error.
func (o Outcome[T]) Message() string { return o.message }

// Err returns the error an Error outcome was built from by FromError, or nil.
func (o Outcome[T]) Err() error { return o.cause }

// Convert maps a Success payload through fn and keeps Loading and Error as they are.
func Convert[T, R any](o Outcome[T], fn func(T) R) Outcome[R] {
	switch o.kind {
	case KindSuccess:
		return Success(fn(o.data))
	case KindError:
		return Outcome[R]{kind: KindError, message: o.message, cause: o.cause}
	default:
		return Loading[R](o.loading)
	}
}
