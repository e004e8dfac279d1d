package batch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Idler queues work for the next idle period of the flow that owns it.
type Idler interface {
	RequestIdle(timeout time.Duration, fn func(deadline time.Time))
}

var _ Idler = (*Loop)(nil)

// Manual is an Idler for callers that drain the scheduler themselves.
type Manual struct{}

func (Manual) RequestIdle(time.Duration, func(time.Time)) {}

type idleRequest struct {
	fn      func(deadline time.Time)
	expires time.Time
}

// Loop is a single cooperative flow. Events posted to it run one at a time in
// arrival order; idle callbacks run when no event is waiting, or right after
// an event once their timeout has elapsed.
type Loop struct {
	events chan func()
	window time.Duration
	idle   []idleRequest
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewLoop(window time.Duration) *Loop {
	ctx, cancel := context.WithCancel(context.Background())
	return &Loop{
		events: make(chan func(), 64),
		window: window,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (l *Loop) Start() {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		l.run()
	}()
}

// Stop ends the loop. Pending idle callbacks are dropped.
func (l *Loop) Stop() {
	l.cancel()
	l.wg.Wait()
}

func (l *Loop) run() {
	for {
		if len(l.idle) == 0 {
			select {
			case <-l.ctx.Done():
				return
			case fn := <-l.events:
				fn()
			}
			continue
		}

		select {
		case <-l.ctx.Done():
			return
		case fn := <-l.events:
			fn()
			l.runIdle(true)
		default:
			l.runIdle(false)
		}
	}
}

// runIdle runs the queued idle callbacks, or only the expired ones.
func (l *Loop) runIdle(expiredOnly bool) {
	pending := l.idle
	l.idle = nil

	now := time.Now()
	var kept []idleRequest
	for _, req := range pending {
		if expiredOnly && now.Before(req.expires) {
			kept = append(kept, req)
			continue
		}
		req.fn(time.Now().Add(l.window))
	}
	l.idle = append(kept, l.idle...)
}

// Post queues fn without waiting for it.
func (l *Loop) Post(fn func()) error {
	return l.post(context.Background(), fn)
}

// post blocks while the event queue is full, until ctx or the loop ends.
func (l *Loop) post(ctx context.Context, fn func()) error {
	if l.ctx.Err() != nil {
		return fmt.Errorf("loop is stopped")
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-l.ctx.Done():
		return fmt.Errorf("loop is stopped")
	case l.events <- fn:
		return nil
	}
}

// Do runs fn on the loop and waits for it to return. When ctx ends or the
// loop stops first, Do returns an error and fn never runs. Once fn has
// started, Do waits for it and returns nil.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var claimed atomic.Bool
	done := make(chan struct{})
	err := l.post(ctx, func() {
		defer close(done)
		if claimed.CompareAndSwap(false, true) {
			fn()
		}
	})
	if err != nil {
		return err
	}

	var abort error
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		abort = ctx.Err()
	case <-l.ctx.Done():
		abort = fmt.Errorf("loop is stopped")
	}

	if claimed.CompareAndSwap(false, true) {
		return abort
	}
	<-done
	return nil
}

// RequestIdle queues fn for the next idle period, or for the first moment
// after timeout if the loop stays busy. It must be called from the loop.
func (l *Loop) RequestIdle(timeout time.Duration, fn func(deadline time.Time)) {
	l.idle = append(l.idle, idleRequest{fn: fn, expires: time.Now().Add(timeout)})
	slog.Debug("Idle callback requested", "pending", len(l.idle), "timeout", timeout.String())
}
