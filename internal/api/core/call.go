package core

import (
	"context"
	"sync"
)

// Call отменяемый запрос, выполняющийся в отдельной горутине.
// Результат фиксируется один раз: либо значением функции, либо ErrCanceled,
// если Cancel был вызван раньше.
type Call[T any] struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once

	value    T
	err      error
	canceled bool
}

// Start запускает fn под контекстом, производным от ctx, и сразу возвращает Call.
func Start[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Call[T] {
	callCtx, cancel := context.WithCancel(ctx)
	c := &Call[T]{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer cancel()
		value, err := fn(callCtx)
		c.settle(value, err, false)
	}()

	return c
}

// Fail возвращает уже завершённый Call с ошибкой err.
func Fail[T any](err error) *Call[T] {
	c := &Call[T]{
		cancel: func() {},
		done:   make(chan struct{}),
	}
	var zero T
	c.settle(zero, err, false)
	return c
}

func (c *Call[T]) settle(value T, err error, canceled bool) bool {
	settled := false
	c.once.Do(func() {
		c.value = value
		c.err = err
		c.canceled = canceled
		settled = true
		close(c.done)
	})
	return settled
}

// Cancel отменяет запрос, если он ещё не завершён: Call сразу завершается
// с ErrCanceled, а HTTP-запрос прерывается через контекст.
// Повторный вызов и вызов после завершения ничего не делают.
func (c *Call[T]) Cancel() {
	var zero T
	if c.settle(zero, ErrCanceled, true) {
		c.cancel()
	}
}

// Done закрывается, когда результат зафиксирован.
func (c *Call[T]) Done() <-chan struct{} {
	return c.done
}

// Wait блокируется до завершения и возвращает результат.
func (c *Call[T]) Wait() (T, error) {
	<-c.done
	return c.value, c.err
}

// Await ждёт результат не дольше, чем живёт ctx. Истечение ctx не отменяет сам запрос.
func (c *Call[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-c.done:
		return c.value, c.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// IsCanceled сообщает, завершился ли Call отменой.
func (c *Call[T]) IsCanceled() bool {
	select {
	case <-c.done:
		return c.canceled
	default:
		return false
	}
}

// IsSettled сообщает, зафиксирован ли результат.
func (c *Call[T]) IsSettled() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}
