package closer

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestCloser_LIFO(t *testing.T) {
	c := NewCloser(0)
	var order []string
	c.Add("first", func(ctx context.Context) error { order = append(order, "first"); return nil })
	c.Add("second", func(ctx context.Context) error { order = append(order, "second"); return nil })

	require.NoError(t, c.Close(context.Background()))
	assert.Equal(t, []string{"second", "first"}, order)
}

func TestCloser_CollectsErrors(t *testing.T) {
	c := NewCloser(0)
	c.Add("redis", func(ctx context.Context) error { return errors.New("conn reset") })
	c.Add("http", func(ctx context.Context) error { return nil })

	err := c.Close(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis: conn reset")
}

func TestCloser_CloseOnce(t *testing.T) {
	c := NewCloser(0)
	calls := 0
	c.Add("res", func(ctx context.Context) error { calls++; return nil })

	require.NoError(t, c.Close(context.Background()))
	require.NoError(t, c.Close(context.Background()))
	assert.Equal(t, 1, calls)
}

func TestCloser_ForcedAfterTimeout(t *testing.T) {
	c := NewCloser(50 * time.Millisecond)
	forced := make(chan struct{}, 1)
	c.Add("first", func(ctx context.Context) error {
		forced <- struct{}{}
		return nil
	})

	var calls atomic.Int32
	release := make(chan struct{})
	defer close(release)
	c.Add("blocking", func(ctx context.Context) error {
		if calls.Add(1) == 1 {
			<-release
		}
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := c.Close(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shutdown interrupted after 0/2 resources")
	assert.Len(t, forced, 1)
	assert.Equal(t, int32(2), calls.Load())
}
