// Package routeview implements the route configuration view: a component that
// fetches the backend's route list exactly once per mount and renders it.
//
// A view starts in PhaseLoading with an empty list. Mount schedules a single
// fetch on its own goroutine; when it settles the view moves to PhaseLoaded
// (list replaced by the response) or PhaseFailed (list left untouched) and
// notifies the host through the change hook so the host can render again.
// Unmount cancels an in-flight fetch and guarantees that a late completion
// never mutates the discarded view.
package routeview

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"bffmvp/internal/logging"
	"bffmvp/internal/model"
)

// Phase is the lifecycle position of a view.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseLoaded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Fetcher retrieves the current route configuration.
type Fetcher interface {
	FetchRoutes(ctx context.Context) ([]model.RouteConfig, error)
}

// State is a point-in-time copy of the view's state.
type State struct {
	Phase  Phase
	Routes []model.RouteConfig
	Err    error
}

// Option configures a View.
type Option func(*View)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(log logrus.FieldLogger) Option {
	return func(v *View) {
		v.log = logging.Component(log, "routeview")
	}
}

// WithOnChange registers the hook invoked after the fetch settles.
// The hook runs on the fetch goroutine without any view lock held.
func WithOnChange(fn func(State)) Option {
	return func(v *View) {
		v.onChange = fn
	}
}

// WithMetrics records fetch outcomes.
func WithMetrics(m *Metrics) Option {
	return func(v *View) {
		v.metrics = m
	}
}

// WithTimeout bounds the fetch. Zero means no bound beyond the mount context.
func WithTimeout(d time.Duration) Option {
	return func(v *View) {
		v.timeout = d
	}
}

// View owns the list of known route configurations for the lifetime of a mount.
type View struct {
	fetcher  Fetcher
	log      logrus.FieldLogger
	onChange func(State)
	metrics  *Metrics
	timeout  time.Duration

	mu        sync.RWMutex
	phase     Phase
	routes    []model.RouteConfig
	err       error
	mounted   bool
	unmounted bool
	cancel    context.CancelFunc

	done     chan struct{}
	doneOnce sync.Once
}

// New returns a view in PhaseLoading with an empty route list.
func New(f Fetcher, opts ...Option) *View {
	v := &View{
		fetcher: f,
		log:     logging.Component(logrus.StandardLogger(), "routeview"),
		phase:   PhaseLoading,
		routes:  []model.RouteConfig{},
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Mount starts the one fetch this view will ever issue. Calls after the first,
// or after Unmount, do nothing.
func (v *View) Mount(ctx context.Context) {
	v.mu.Lock()
	if v.mounted || v.unmounted {
		v.mu.Unlock()
		return
	}
	v.mounted = true

	var cancel context.CancelFunc
	if v.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, v.timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	v.cancel = cancel
	v.mu.Unlock()

	v.log.WithField("event", "fetch_started").Debug("fetching route configuration")
	go v.fetch(ctx, cancel)
}

// Unmount discards the view. An in-flight fetch is canceled and its result dropped.
func (v *View) Unmount() {
	v.mu.Lock()
	if v.unmounted {
		v.mu.Unlock()
		return
	}
	v.unmounted = true
	cancel := v.cancel
	v.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	v.closeDone()
}

// Done is closed once the fetch has settled or the view has been unmounted.
func (v *View) Done() <-chan struct{} {
	return v.done
}

// State returns a copy of the current state.
func (v *View) State() State {
	v.mu.RLock()
	defer v.mu.RUnlock()

	routes := make([]model.RouteConfig, len(v.routes))
	copy(routes, v.routes)
	return State{Phase: v.phase, Routes: routes, Err: v.err}
}

func (v *View) fetch(ctx context.Context, cancel context.CancelFunc) {
	defer cancel()

	start := time.Now()
	routes, err := v.safeFetch(ctx)
	v.settle(routes, err, time.Since(start))
}

// safeFetch keeps a panicking fetcher from taking down the host.
func (v *View) safeFetch(ctx context.Context) (routes []model.RouteConfig, err error) {
	defer func() {
		if r := recover(); r != nil {
			routes, err = nil, fmt.Errorf("fetch panicked: %v", r)
		}
	}()
	return v.fetcher.FetchRoutes(ctx)
}

// settle checks liveness and commits the result under one lock, then logs and
// notifies the host with no lock held.
func (v *View) settle(routes []model.RouteConfig, err error, elapsed time.Duration) {
	v.mu.Lock()
	if v.unmounted {
		v.mu.Unlock()
		v.metrics.observe(outcomeDiscarded, elapsed)
		v.log.WithField("event", "fetch_discarded").Debug("view unmounted before fetch settled")
		return
	}
	if err != nil {
		v.phase = PhaseFailed
		v.err = err
	} else {
		if routes == nil {
			routes = []model.RouteConfig{}
		}
		v.routes = routes
		v.phase = PhaseLoaded
	}
	v.mu.Unlock()

	st := v.State()
	entry := v.log.WithFields(logrus.Fields{
		"event":       "fetch_settled",
		"phase":       st.Phase.String(),
		"routes":      len(st.Routes),
		"duration_ms": elapsed.Milliseconds(),
	})
	if err != nil {
		v.metrics.observe(outcomeFailed, elapsed)
		entry.WithError(err).Warn("unable to load routes")
	} else {
		v.metrics.observe(outcomeLoaded, elapsed)
		entry.Info("routes loaded")
	}

	if v.onChange != nil {
		v.onChange(st)
	}
	v.closeDone()
}

func (v *View) closeDone() {
	v.doneOnce.Do(func() { close(v.done) })
}
