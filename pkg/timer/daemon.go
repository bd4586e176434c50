// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package timer implements the cooperative scheduler for the periodic
// callbacks behind SAMPLE subscriptions.
package timer

import (
	"container/heap"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/onosproject/onos-lib-go/pkg/logging"
)

var log = logging.GetLogger("timer")

// Handle identifies one requested periodic timer and allows cancelling it.
type Handle struct {
	cancelled int32
}

// Cancel marks the timer as cancelled. The entry is dropped when it next
// reaches the top of the schedule.
func (h *Handle) Cancel() {
	atomic.StoreInt32(&h.cancelled, 1)
}

// Cancelled reports whether the timer has been cancelled.
func (h *Handle) Cancelled() bool {
	return atomic.LoadInt32(&h.cancelled) != 0
}

type entry struct {
	when   time.Time
	period time.Duration
	cb     func() error
	handle *Handle
}

type schedule []*entry

func (s schedule) Len() int            { return len(s) }
func (s schedule) Less(i, j int) bool  { return s[i].when.Before(s[j].when) }
func (s schedule) Swap(i, j int)       { s[i], s[j] = s[j], s[i] }
func (s *schedule) Push(x interface{}) { *s = append(*s, x.(*entry)) }
func (s *schedule) Pop() interface{} {
	old := *s
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*s = old[:n-1]
	return e
}

// Daemon is a single cooperative scheduler. All callbacks run on the daemon
// goroutine and must be non-blocking.
type Daemon struct {
	mu      sync.Mutex
	timers  schedule
	wake    chan struct{}
	stop    chan struct{}
	started bool
	stopped bool
}

// NewDaemon creates a Daemon; Start must be called before timers fire.
func NewDaemon() *Daemon {
	return &Daemon{
		wake: make(chan struct{}, 1),
		stop: make(chan struct{}),
	}
}

// Start spawns the daemon goroutine.
func (d *Daemon) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started {
		return fmt.Errorf("timer daemon already started")
	}
	d.started = true
	go d.run()
	return nil
}

// Stop terminates the daemon goroutine. Pending timers never fire again.
func (d *Daemon) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.stopped {
		d.stopped = true
		close(d.stop)
	}
}

// RequestPeriodicTimer schedules cb to run first after delay and then every
// period. The returned handle cancels the timer.
func (d *Daemon) RequestPeriodicTimer(delay, period time.Duration, cb func() error) (*Handle, error) {
	if cb == nil {
		return nil, fmt.Errorf("timer callback is nil")
	}
	if period <= 0 {
		return nil, fmt.Errorf("timer period must be positive, got %v", period)
	}
	h := &Handle{}
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return nil, fmt.Errorf("timer daemon is stopped")
	}
	heap.Push(&d.timers, &entry{
		when:   time.Now().Add(delay),
		period: period,
		cb:     cb,
		handle: h,
	})
	d.mu.Unlock()
	d.kick()
	return h, nil
}

// CancelTimer cancels the timer behind the handle.
func (d *Daemon) CancelTimer(h *Handle) {
	if h != nil {
		h.Cancel()
	}
}

func (d *Daemon) kick() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *Daemon) run() {
	for {
		d.mu.Lock()
		var next time.Time
		for d.timers.Len() > 0 && d.timers[0].handle.Cancelled() {
			heap.Pop(&d.timers)
		}
		if d.timers.Len() > 0 {
			next = d.timers[0].when
		}
		d.mu.Unlock()

		if next.IsZero() {
			select {
			case <-d.stop:
				return
			case <-d.wake:
			}
			continue
		}

		wait := time.Until(next)
		if wait > 0 {
			t := time.NewTimer(wait)
			select {
			case <-d.stop:
				t.Stop()
				return
			case <-d.wake:
				t.Stop()
				continue
			case <-t.C:
			}
		}
		d.fireDue()
	}
}

// fireDue pops and runs every entry whose deadline has passed, then puts the
// live ones back with their next deadline.
func (d *Daemon) fireDue() {
	now := time.Now()
	var due []*entry
	d.mu.Lock()
	for d.timers.Len() > 0 && !d.timers[0].when.After(now) {
		e := heap.Pop(&d.timers).(*entry)
		if e.handle.Cancelled() {
			continue
		}
		due = append(due, e)
	}
	d.mu.Unlock()

	for _, e := range due {
		if err := e.cb(); err != nil {
			log.Errorf("Periodic timer callback returned an error: %v", err)
		}
		// Reschedule relative to the previous deadline so the period does
		// not drift; clamp when more than one period behind.
		e.when = e.when.Add(e.period)
		if now.Sub(e.when) > e.period {
			e.when = now.Add(e.period)
		}
	}

	d.mu.Lock()
	for _, e := range due {
		if !e.handle.Cancelled() {
			heap.Push(&d.timers, e)
		}
	}
	d.mu.Unlock()
}
