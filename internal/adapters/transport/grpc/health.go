package grpc

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the name reported to grpc health clients alongside the
// overall ("") status.
const ServiceName = "blog.v1.Blog"

type Checker interface {
	Check(ctx context.Context) error
}

// HealthReporter keeps a grpc health server in sync with the database and
// cache reachability.
type HealthReporter struct {
	srv      *health.Server
	checker  Checker
	interval time.Duration
	log      *zap.Logger
}

func NewHealthReporter(checker Checker, interval time.Duration, log *zap.Logger) *HealthReporter {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &HealthReporter{
		srv:      health.NewServer(),
		checker:  checker,
		interval: interval,
		log:      log,
	}
}

func (h *HealthReporter) Server() *health.Server {
	return h.srv
}

// Probe runs one check and publishes the result.
func (h *HealthReporter) Probe(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, h.interval)
	defer cancel()

	st := healthpb.HealthCheckResponse_SERVING
	if err := h.checker.Check(ctx); err != nil {
		h.log.Warn("health check failed", zap.Error(err))
		st = healthpb.HealthCheckResponse_NOT_SERVING
	}
	h.srv.SetServingStatus("", st)
	h.srv.SetServingStatus(ServiceName, st)
	return st
}

// Run probes until ctx is cancelled, then marks the service as shutting down.
func (h *HealthReporter) Run(ctx context.Context) {
	h.Probe(ctx)

	t := time.NewTicker(h.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			h.srv.Shutdown()
			return
		case <-t.C:
			h.Probe(ctx)
		}
	}
}
