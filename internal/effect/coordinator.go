// Package effect translates request events into exactly one success or
// failure outcome each, calling the data-access collaborator under
// latest-wins supersession per request category.
package effect

import (
	"context"
	"sync"
	"time"

	"botdeck/internal/api"
	"botdeck/internal/store"

	"go.opentelemetry.io/otel/trace"
)

// Category is the deduplication key for in-flight workflows. At most one
// workflow per category may commit an outcome.
type Category string

const (
	CategoryLogin     Category = "login"
	CategoryRegister  Category = "register"
	CategoryDashboard Category = "dashboard"
	CategorySignals   Category = "signals"
	CategoryTrades    Category = "trades"
	CategoryAccounts  Category = "accounts"
	CategoryAnalytics Category = "analytics"
	CategorySettings  Category = "settings"
	CategoryContact   Category = "contact"
)

// Dispatcher receives outcome events. *store.Store satisfies it.
type Dispatcher interface {
	Dispatch(store.Event)
}

type run struct {
	gen    uint64
	cancel context.CancelFunc
}

// Coordinator owns one cancellable workflow slot per category. Registering a
// new run and committing an outcome both happen under the same mutex, so a
// superseded run can never dispatch after its successor has been registered.
type Coordinator struct {
	tracer trace.Tracer
	client api.Client
	disp   Dispatcher
	delay  func(Category) time.Duration
	base   context.Context

	mu      sync.Mutex
	runs    map[Category]*run
	nextGen uint64

	wg sync.WaitGroup
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithDelay sets the simulated settling delay applied before each
// collaborator call. The default is no delay; latency lives in the mock
// client.
func WithDelay(fn func(Category) time.Duration) Option {
	return func(c *Coordinator) { c.delay = fn }
}

// New creates a coordinator. ctx bounds every workflow; cancelling it stops
// all in-flight work at the next suspension point.
func New(ctx context.Context, tracer trace.Tracer, client api.Client, disp Dispatcher, opts ...Option) *Coordinator {
	c := &Coordinator{
		tracer: tracer,
		client: client,
		disp:   disp,
		delay:  func(Category) time.Duration { return 0 },
		base:   ctx,
		runs:   make(map[Category]*run),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Hook adapts the coordinator to the store's event hook signature.
func (c *Coordinator) Hook() store.Hook {
	return c.Handle
}

// Handle starts a workflow for request events and ignores everything else.
// Request parameters are captured here and threaded into the collaborator
// call unchanged.
func (c *Coordinator) Handle(ev store.Event) {
	switch ev := ev.(type) {
	case store.LoginRequested:
		c.start(CategoryLogin,
			func(ctx context.Context) (store.Event, error) {
				s, err := c.client.Login(ctx, ev.Email, ev.Password)
				if err != nil {
					return nil, err
				}
				return store.LoginSucceeded{Session: *s}, nil
			},
			func(msg string) store.Event { return store.LoginFailed{Message: msg} })

	case store.RegisterRequested:
		c.start(CategoryRegister,
			func(ctx context.Context) (store.Event, error) {
				s, err := c.client.Register(ctx, ev.Name, ev.Email, ev.Password)
				if err != nil {
					return nil, err
				}
				return store.RegisterSucceeded{Session: *s}, nil
			},
			func(msg string) store.Event { return store.RegisterFailed{Message: msg} })

	case store.DashboardRequested:
		c.start(CategoryDashboard,
			func(ctx context.Context) (store.Event, error) {
				data, err := c.client.FetchDashboard(ctx)
				if err != nil {
					return nil, err
				}
				return store.DashboardLoaded{Data: data}, nil
			},
			func(msg string) store.Event { return store.DashboardFailed{Message: msg} })

	case store.SignalsRequested:
		c.start(CategorySignals,
			func(ctx context.Context) (store.Event, error) {
				signals, err := c.client.FetchSignals(ctx)
				if err != nil {
					return nil, err
				}
				return store.SignalsLoaded{Signals: signals}, nil
			},
			func(msg string) store.Event { return store.SignalsFailed{Message: msg} })

	case store.TradesRequested:
		c.start(CategoryTrades,
			func(ctx context.Context) (store.Event, error) {
				trades, err := c.client.FetchTrades(ctx)
				if err != nil {
					return nil, err
				}
				return store.TradesLoaded{Trades: trades}, nil
			},
			func(msg string) store.Event { return store.TradesFailed{Message: msg} })

	case store.AccountsRequested:
		c.start(CategoryAccounts,
			func(ctx context.Context) (store.Event, error) {
				accounts, err := c.client.FetchAccounts(ctx)
				if err != nil {
					return nil, err
				}
				return store.AccountsLoaded{Accounts: accounts}, nil
			},
			func(msg string) store.Event { return store.AccountsFailed{Message: msg} })

	case store.AnalyticsRequested:
		c.start(CategoryAnalytics,
			func(ctx context.Context) (store.Event, error) {
				data, err := c.client.FetchAnalytics(ctx, ev.Range)
				if err != nil {
					return nil, err
				}
				return store.AnalyticsLoaded{Data: data}, nil
			},
			func(msg string) store.Event { return store.AnalyticsFailed{Message: msg} })

	case store.SettingsUpdateRequested:
		c.start(CategorySettings,
			func(ctx context.Context) (store.Event, error) {
				saved, err := c.client.UpdateSettings(ctx, ev.Settings)
				if err != nil {
					return nil, err
				}
				return store.SettingsUpdated{Settings: saved}, nil
			},
			func(msg string) store.Event { return store.SettingsUpdateFailed{Message: msg} })

	case store.ContactSubmitRequested:
		c.start(CategoryContact,
			func(ctx context.Context) (store.Event, error) {
				ticketID, err := c.client.SubmitContactForm(ctx, ev.Form)
				if err != nil {
					return nil, err
				}
				return store.ContactSubmitted{TicketID: ticketID}, nil
			},
			func(msg string) store.Event { return store.ContactSubmitFailed{Message: msg} })
	}
}

// start registers a new run for the category, superseding any previous one.
// The previous run's context is cancelled; whatever its collaborator call
// eventually returns will fail the generation check in commit and be
// discarded without touching the store.
func (c *Coordinator) start(cat Category, work func(context.Context) (store.Event, error), fail func(string) store.Event) {
	c.mu.Lock()
	if prev := c.runs[cat]; prev != nil {
		prev.cancel()
	}
	c.nextGen++
	ctx, cancel := context.WithCancel(c.base)
	r := &run{gen: c.nextGen, cancel: cancel}
	c.runs[cat] = r
	c.mu.Unlock()

	c.wg.Add(1)
	go c.execute(ctx, cat, r, work, fail)
}

func (c *Coordinator) execute(ctx context.Context, cat Category, r *run, work func(context.Context) (store.Event, error), fail func(string) store.Event) {
	defer c.wg.Done()
	defer r.cancel()

	ctx, span := c.tracer.Start(ctx, "effect."+string(cat))
	defer span.End()

	if d := c.delay(cat); d > 0 {
		t := time.NewTimer(d)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			return
		}
	}

	outcome, err := work(ctx)
	if err != nil {
		if ctx.Err() != nil {
			// Superseded or shut down mid-call; nothing to report.
			return
		}
		outcome = fail(normalize(err))
	}
	c.commit(cat, r, outcome)
}

// commit dispatches the outcome unless the run has been superseded. The
// generation check and the dispatch share the coordinator mutex with start,
// so there is no window in which both an old and a new run can commit.
func (c *Coordinator) commit(cat Category, r *run, outcome store.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cur := c.runs[cat]
	if cur == nil || cur.gen != r.gen {
		return
	}
	delete(c.runs, cat)
	c.disp.Dispatch(outcome)
}

// Wait blocks until every workflow goroutine has finished. Used by shutdown
// and tests.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

// normalize converts a collaborator error into a human-readable message for
// the failure event. Nothing is allowed to escape the workflow boundary
// unhandled.
func normalize(err error) string {
	msg := err.Error()
	if msg == "" {
		msg = "request failed"
	}
	return msg
}
