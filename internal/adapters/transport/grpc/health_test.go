package grpc

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type checkerStub struct{ failing atomic.Bool }

func (c *checkerStub) Check(context.Context) error {
	if c.failing.Load() {
		return errors.New("db down")
	}
	return nil
}

func status(t *testing.T, h *HealthReporter, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := h.Server().Check(context.Background(), &healthpb.HealthCheckRequest{Service: service})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestHealthReporter_Probe(t *testing.T) {
	c := &checkerStub{}
	h := NewHealthReporter(c, time.Second, zap.NewNop())

	require.Equal(t, healthpb.HealthCheckResponse_SERVING, h.Probe(context.Background()))
	require.Equal(t, healthpb.HealthCheckResponse_SERVING, status(t, h, ""))
	require.Equal(t, healthpb.HealthCheckResponse_SERVING, status(t, h, ServiceName))

	c.failing.Store(true)
	require.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, h.Probe(context.Background()))
	require.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, h, ServiceName))
}

func TestHealthReporter_RunStopsOnCancel(t *testing.T) {
	c := &checkerStub{}
	h := NewHealthReporter(c, 10*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return status(t, h, "") == healthpb.HealthCheckResponse_SERVING
	}, time.Second, 5*time.Millisecond)

	c.failing.Store(true)
	require.Eventually(t, func() bool {
		return status(t, h, "") == healthpb.HealthCheckResponse_NOT_SERVING
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
