// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package bus dispatches switch events to subscription records. One handler
// list exists per event kind; lists hold records non-owningly, so a record
// whose subscription ended is skipped on delivery and pruned lazily.
package bus

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/onosproject/onos-lib-go/pkg/logging"
	pb "github.com/openconfig/gnmi/proto/gnmi"

	"github.com/onosproject/gnmi-agent/pkg/events"
	"github.com/onosproject/gnmi-agent/pkg/timer"
)

var log = logging.GetLogger("bus")

// Stream is the outbound side of one client subscription stream.
type Stream interface {
	Send(*pb.SubscribeResponse) error
}

// Handler processes one event on behalf of one subscription and writes any
// resulting updates to the stream.
type Handler func(e events.Event, stream Stream) error

// Record binds a handler to a client stream for the lifetime of one
// subscription. Handler lists reference records without owning them: once
// Close is called the record is dead and delivery skips it.
type Record struct {
	handler Handler
	stream  Stream
	timer   *timer.Handle
	dead    int32
}

// NewRecord creates a live subscription record.
func NewRecord(handler Handler, stream Stream) *Record {
	return &Record{handler: handler, stream: stream}
}

// Handle runs the record's handler for the event. Dead records ignore
// events.
func (r *Record) Handle(e events.Event) error {
	if !r.Alive() {
		return nil
	}
	return r.handler(e, r.stream)
}

// Alive reports whether the owning subscription still exists.
func (r *Record) Alive() bool {
	return atomic.LoadInt32(&r.dead) == 0
}

// Close ends the record's life: the timer (if any) is cancelled first, then
// the record is marked dead so handler lists prune it on their next pass.
func (r *Record) Close() {
	if r.timer != nil {
		r.timer.Cancel()
	}
	atomic.StoreInt32(&r.dead, 1)
}

// SetTimer attaches the periodic timer driving a SAMPLE subscription.
func (r *Record) SetTimer(h *timer.Handle) {
	r.timer = h
}

// Timer returns the attached timer handle, if any.
func (r *Record) Timer() *timer.Handle {
	return r.timer
}

// List is the handler list of one event kind.
type List struct {
	kind    events.Kind
	mu      sync.RWMutex
	records []*Record
}

// Kind returns the event kind this list delivers.
func (l *List) Kind() events.Kind {
	return l.kind
}

// Register appends a record to the list. Registering the same record twice
// is a no-op, so a subtree that reaches the same list through many leaves
// still registers exactly once. Dead records are pruned on the way.
func (l *List) Register(r *Record) error {
	if r == nil {
		return fmt.Errorf("cannot register a nil record")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, rec := range l.records {
		if rec == r && rec.Alive() {
			return nil
		}
	}
	live := make([]*Record, 0, len(l.records)+1)
	for _, rec := range l.records {
		if rec.Alive() && rec != r {
			live = append(live, rec)
		}
	}
	l.records = append(live, r)
	return nil
}

// Deliver invokes every live record's handler with the event. Handler errors
// are logged and do not stop delivery to the remaining records. Dead records
// found while iterating are pruned afterwards.
func (l *List) Deliver(e events.Event) {
	l.mu.RLock()
	records := l.records
	prune := false
	for _, rec := range records {
		if !rec.Alive() {
			prune = true
			continue
		}
		if err := rec.Handle(e); err != nil {
			log.Errorf("Handler for %v event returned an error: %v", e.GetKind(), err)
		}
	}
	l.mu.RUnlock()

	if prune {
		l.mu.Lock()
		live := l.records[:0]
		for _, rec := range l.records {
			if rec.Alive() {
				live = append(live, rec)
			}
		}
		l.records = live
		l.mu.Unlock()
	}
}

// GetNumberOfRegisteredHandlers counts the live records on the list.
func (l *List) GetNumberOfRegisteredHandlers() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	n := 0
	for _, rec := range l.records {
		if rec.Alive() {
			n++
		}
	}
	return n
}

// Registry holds the handler list of every event kind. It is injected into
// the publisher and the parse tree rather than being process-global so tests
// can run against isolated instances.
type Registry struct {
	mu    sync.Mutex
	lists map[events.Kind]*List
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{lists: make(map[events.Kind]*List)}
}

// List returns the handler list for a kind, creating it on first use.
func (g *Registry) List(kind events.Kind) *List {
	g.mu.Lock()
	defer g.mu.Unlock()
	l, ok := g.lists[kind]
	if !ok {
		l = &List{kind: kind}
		g.lists[kind] = l
	}
	return l
}

// Deliver routes an event to the handler list of its kind.
func (g *Registry) Deliver(e events.Event) {
	g.List(e.GetKind()).Deliver(e)
}
