package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestCall_ResolvesValue(t *testing.T) {
	defer goleak.VerifyNone(t)

	call := Start(context.Background(), func(context.Context) (int, error) {
		return 42, nil
	})

	v, err := call.Wait()
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.True(t, call.IsSettled())
	assert.False(t, call.IsCanceled())
}

func TestCall_RejectsError(t *testing.T) {
	defer goleak.VerifyNone(t)

	boom := errors.New("boom")
	call := Start(context.Background(), func(context.Context) (string, error) {
		return "", boom
	})

	_, err := call.Wait()
	assert.ErrorIs(t, err, boom)
}

func TestCall_CancelBeforeSettle(t *testing.T) {
	defer goleak.VerifyNone(t)

	release := make(chan struct{})
	aborted := make(chan struct{})
	call := Start(context.Background(), func(ctx context.Context) (int, error) {
		select {
		case <-release:
			return 1, nil
		case <-ctx.Done():
			close(aborted)
			return 0, ctx.Err()
		}
	})

	call.Cancel()

	v, err := call.Wait()
	assert.ErrorIs(t, err, ErrCanceled)
	assert.Zero(t, v)
	assert.True(t, call.IsCanceled())

	select {
	case <-aborted:
	case <-time.After(time.Second):
		t.Fatal("underlying work was not aborted")
	}
	close(release)
}

func TestCall_CancelSuppressesSuccess(t *testing.T) {
	defer goleak.VerifyNone(t)

	started := make(chan struct{})
	finish := make(chan struct{})
	call := Start(context.Background(), func(context.Context) (int, error) {
		close(started)
		<-finish
		// завершается успешно, несмотря на отмену
		return 7, nil
	})

	<-started
	call.Cancel()
	close(finish)

	v, err := call.Wait()
	assert.ErrorIs(t, err, ErrCanceled)
	assert.Zero(t, v)
}

func TestCall_CancelIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	call := Start(context.Background(), func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			call.Cancel()
		}()
	}
	wg.Wait()
	call.Cancel()

	_, err := call.Wait()
	assert.ErrorIs(t, err, ErrCanceled)
	assert.True(t, call.IsCanceled())
}

func TestCall_CancelAfterSettleIsNoop(t *testing.T) {
	defer goleak.VerifyNone(t)

	call := Start(context.Background(), func(context.Context) (int, error) {
		return 5, nil
	})
	v, err := call.Wait()
	require.NoError(t, err)

	call.Cancel()

	v2, err := call.Wait()
	require.NoError(t, err)
	assert.Equal(t, v, v2)
	assert.False(t, call.IsCanceled())
}

func TestCall_AwaitHonoursCallerDeadline(t *testing.T) {
	defer goleak.VerifyNone(t)

	release := make(chan struct{})
	call := Start(context.Background(), func(context.Context) (int, error) {
		<-release
		return 3, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := call.Await(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, call.IsSettled())

	close(release)
	v, err := call.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}

func TestFail(t *testing.T) {
	boom := errors.New("rejected")
	call := Fail[int](boom)

	assert.True(t, call.IsSettled())
	_, err := call.Wait()
	assert.ErrorIs(t, err, boom)

	call.Cancel()
	_, err = call.Wait()
	assert.ErrorIs(t, err, boom)
	assert.False(t, call.IsCanceled())
}
