// Package server hosts the headless runner: the simulation loop and the
// status reporter run as services that start together and stop in reverse.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Service is one runner component. Start blocks for the life of the
// component; Stop must make a blocked Start return.
type Service interface {
	Start() error
	Stop()
}

// FuncService builds a Service from two closures.
type FuncService struct {
	StartFn func() error
	StopFn  func()
}

// Start runs StartFn.
func (f *FuncService) Start() error { return f.StartFn() }

// Stop runs StopFn.
func (f *FuncService) Stop() { f.StopFn() }

// Lifecycle owns the runner's services. The loop is registered first so it
// is stopped last, after every reader of its snapshots.
type Lifecycle struct {
	logger  *zap.Logger
	signals []os.Signal

	mu     sync.Mutex
	stages []stage
}

type stage struct {
	name string
	svc  Service
}

// NewLifecycle returns an empty Lifecycle that also ends on SIGINT or SIGTERM.
//
// Precondition: logger must be non-nil.
func NewLifecycle(logger *zap.Logger) *Lifecycle {
	if logger == nil {
		panic("server.NewLifecycle: logger must not be nil")
	}
	return &Lifecycle{
		logger:  logger,
		signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	}
}

// Add appends a service; registration order is start order.
//
// Precondition: name must be non-empty; svc must be non-nil.
func (l *Lifecycle) Add(name string, svc Service) {
	if name == "" || svc == nil {
		panic("server.Lifecycle.Add: name and service are required")
	}
	l.mu.Lock()
	l.stages = append(l.stages, stage{name: name, svc: svc})
	l.mu.Unlock()
}

// Run launches every service and waits for the first of: a signal, ctx
// ending, or a service returning an error. It then stops the services
// newest first and returns that service error, if any.
//
// Postcondition: every service has been stopped.
func (l *Lifecycle) Run(ctx context.Context) error {
	began := time.Now()
	l.mu.Lock()
	stages := append([]stage(nil), l.stages...)
	l.mu.Unlock()

	failed := make(chan error, len(stages))
	for _, st := range stages {
		go l.launch(st, failed)
	}
	l.logger.Info("runner up", zap.Int("services", len(stages)))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, l.signals...)
	defer signal.Stop(sigCh)

	var err error
	reason := "context done"
	select {
	case sig := <-sigCh:
		reason = "signal " + sig.String()
	case err = <-failed:
		reason = "service error"
	case <-ctx.Done():
	}
	l.logger.Info("runner stopping", zap.String("reason", reason), zap.Error(err))

	for i := len(stages) - 1; i >= 0; i-- {
		st := stages[i]
		t := time.Now()
		st.svc.Stop()
		l.logger.Debug("service stopped",
			zap.String("service", st.name),
			zap.Duration("took", time.Since(t)),
		)
	}
	l.logger.Info("runner down", zap.Duration("uptime", time.Since(began)))
	return err
}

func (l *Lifecycle) launch(st stage, failed chan<- error) {
	l.logger.Debug("service starting", zap.String("service", st.name))
	if err := st.svc.Start(); err != nil {
		l.logger.Error("service failed", zap.String("service", st.name), zap.Error(err))
		failed <- fmt.Errorf("service %s: %w", st.name, err)
	}
}
