package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drain counts the calls that pass before the limiter would have to wait
// longer than a short deadline.
func drain(t *testing.T, l *Limiter, max int) int {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	for n := range max {
		if err := l.Wait(ctx); err != nil {
			return n
		}
	}
	return max
}

func TestNewAllowsBurst(t *testing.T) {
	assert.Equal(t, 3, drain(t, New("TMDB", 3), 10))
}

func TestNewUnlimited(t *testing.T) {
	assert.Equal(t, 100, drain(t, New("TMDB", 0), 100))
}

func TestPerWindow(t *testing.T) {
	assert.Equal(t, 40, drain(t, PerWindow("legacy", 40, 10*time.Second), 100))
}

func TestPerWindowInvalidIsUnlimited(t *testing.T) {
	assert.Equal(t, 50, drain(t, PerWindow("bad", 0, time.Second), 50))
	assert.Equal(t, 50, drain(t, PerWindow("bad", 5, 0), 50))
}

func TestWaitHonorsCancellation(t *testing.T) {
	l := PerWindow("slow", 1, time.Hour)
	require.NoError(t, l.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := l.Wait(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "slow")
}
