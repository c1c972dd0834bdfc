package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestLinear(t *testing.T) {
	p := Policy{MaxAttempts: 3, BaseDelay: time.Second}
	assert.Equal(t, time.Second, p.Linear(1))
	assert.Equal(t, 2*time.Second, p.Linear(2))
	assert.Equal(t, 5*time.Second, p.Linear(5))
}

func TestBackoff_StopsAfterMaxAttemptsMinusOne(t *testing.T) {
	b := Policy{MaxAttempts: 3, BaseDelay: time.Second}.Backoff()

	d, stop := b.Next()
	assert.False(t, stop)
	assert.Equal(t, time.Second, d)

	d, stop = b.Next()
	assert.False(t, stop)
	assert.Equal(t, 2*time.Second, d)

	_, stop = b.Next()
	assert.True(t, stop)
}

func TestDo_SucceedsFirstTry(t *testing.T) {
	calls := 0
	err := Policy{MaxAttempts: 3, BaseDelay: time.Millisecond}.Do(context.Background(),
		func(context.Context, int) error { calls++; return nil },
		func(int, time.Duration, error) { t.Fatal("no retry expected") })
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_RetriesThenSucceeds(t *testing.T) {
	var (
		attempts []int
		delays   []time.Duration
	)
	err := Policy{MaxAttempts: 3, BaseDelay: time.Millisecond}.Do(context.Background(),
		func(_ context.Context, attempt int) error {
			attempts = append(attempts, attempt)
			if attempt < 3 {
				return fmt.Errorf("transient %d", attempt)
			}
			return nil
		},
		func(_ int, d time.Duration, _ error) { delays = append(delays, d) })

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, attempts)
	assert.Equal(t, []time.Duration{time.Millisecond, 2 * time.Millisecond}, delays)
}

func TestDo_ReturnsLastError(t *testing.T) {
	var seen []error
	calls := 0
	err := Policy{MaxAttempts: 3, BaseDelay: time.Millisecond}.Do(context.Background(),
		func(_ context.Context, attempt int) error {
			calls++
			return fmt.Errorf("failure %d", attempt)
		},
		func(_ int, _ time.Duration, err error) { seen = append(seen, err) })

	require.Error(t, err)
	assert.Equal(t, "failure 3", err.Error())
	assert.Equal(t, 3, calls)
	require.Len(t, seen, 2)
	assert.EqualError(t, seen[0], "failure 1")
	assert.EqualError(t, seen[1], "failure 2")
}

func TestDo_SingleAttempt(t *testing.T) {
	calls := 0
	boom := errors.New("boom")
	err := Policy{MaxAttempts: 1, BaseDelay: time.Hour}.Do(context.Background(),
		func(context.Context, int) error { calls++; return boom }, nil)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestDo_ContextCancelledDuringDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	boom := errors.New("boom")

	err := Policy{MaxAttempts: 3, BaseDelay: time.Hour}.Do(ctx,
		func(context.Context, int) error { return boom },
		func(int, time.Duration, error) { cancel() })

	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, boom)
}

func TestDo_RealDelays(t *testing.T) {
	if testing.Short() {
		t.Skip("sleeps for three seconds")
	}
	start := time.Now()
	_ = Policy{MaxAttempts: 3, BaseDelay: time.Second}.Do(context.Background(),
		func(context.Context, int) error { return errors.New("x") }, nil)
	assert.GreaterOrEqual(t, time.Since(start), 3*time.Second)
}
