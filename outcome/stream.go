package outcome

import "context"

// Stream delivers Outcomes to a single subscriber, in order. The producer
// closes it when the operation (or the live query) ends.
type Stream[T any] <-chan Outcome[T]

// Run executes fn once and emits Loading(true), the terminal outcome, then
// Loading(false). Cancelling ctx stops delivery; fn receives the same ctx.
func Run[T any](ctx context.Context, fn func(context.Context) (T, error)) Stream[T] {
	out := make(chan Outcome[T], 3)
	go func() {
		defer close(out)
		if !send(ctx, out, Loading[T](true)) {
			return
		}
		data, err := fn(ctx)
		if !send(ctx, out, FromError(data, err)) {
			return
		}
		send(ctx, out, Loading[T](false))
	}()
	return out
}

// Map applies fn to every Success payload of in.
func Map[T, R any](ctx context.Context, in Stream[T], fn func(T) R) Stream[R] {
	out := make(chan Outcome[R], cap(in))
	go func() {
		defer close(out)
		for o := range in {
			if !send(ctx, out, Convert(o, fn)) {
				drain(in)
				return
			}
		}
	}()
	return out
}

// Watch runs fn once immediately and again for every signal on changes,
// emitting Loading(true), the terminal outcome and Loading(false) per cycle.
// It ends when ctx is cancelled or changes is closed.
func Watch[T any](ctx context.Context, changes <-chan struct{}, fn func(context.Context) (T, error)) Stream[T] {
	out := make(chan Outcome[T], 3)
	go func() {
		defer close(out)
		cycle := func() bool {
			if !send(ctx, out, Loading[T](true)) {
				return false
			}
			data, err := fn(ctx)
			if !send(ctx, out, FromError(data, err)) {
				return false
			}
			return send(ctx, out, Loading[T](false))
		}

		if !cycle() {
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-changes:
				if !ok || !cycle() {
					return
				}
			}
		}
	}()
	return out
}

// Last drains s and returns its final terminal outcome. A stream that ends
// without a terminal value yields Loading(false).
func Last[T any](s Stream[T]) Outcome[T] {
	last := Loading[T](false)
	for o := range s {
		if o.IsTerminal() {
			last = o
		}
	}
	return last
}

// Collect drains s and returns every value it delivered.
func Collect[T any](s Stream[T]) []Outcome[T] {
	var all []Outcome[T]
	for o := range s {
		all = append(all, o)
	}
	return all
}

func send[T any](ctx context.Context, out chan<- Outcome[T], o Outcome[T]) bool {
	if ctx.Err() != nil {
		return false
	}
	select {
	case <-ctx.Done():
		return false
	case out <- o:
		return true
	}
}

func drain[T any](in Stream[T]) {
	go func() {
		for range in {
		}
	}()
}
