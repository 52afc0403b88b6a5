package health

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeChecker struct {
	healthy atomic.Bool
}

func (f *fakeChecker) Name() string                               { return "fake" }
func (f *fakeChecker) IsHealthy() bool                            { return f.healthy.Load() }
func (f *fakeChecker) Start(ctx context.Context, _ time.Duration) {}

func TestServiceHealthCheckerAggregates(t *testing.T) {
	a := &fakeChecker{}
	b := &fakeChecker{}
	a.healthy.Store(true)
	b.healthy.Store(true)

	svc := NewServiceHealthChecker(zerolog.Nop(), a, b)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go svc.Start(ctx, 5*time.Millisecond)

	require.Eventually(t, svc.IsHealthy, time.Second, time.Millisecond)

	b.healthy.Store(false)
	require.Eventually(t, func() bool { return !svc.IsHealthy() }, time.Second, time.Millisecond)

	b.healthy.Store(true)
	require.Eventually(t, svc.IsHealthy, time.Second, time.Millisecond)
}

func TestServiceHealthCheckerStartsUnhealthy(t *testing.T) {
	svc := NewServiceHealthChecker(zerolog.Nop(), &fakeChecker{})
	require.False(t, svc.IsHealthy())
}
