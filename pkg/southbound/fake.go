// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package southbound

import (
	"fmt"
	"sync"

	"github.com/onosproject/gnmi-agent/pkg/events"
)

// FakeSwitch is an in-memory SwitchInterface used by tests and by the agent
// binary when no real driver is linked in. Responses are keyed by field;
// every request is recorded.
type FakeSwitch struct {
	mu        sync.Mutex
	responses map[Field]*DataResponse
	requests  []*DataRequest
	writes    []*SetValueRequest
	eventCh   chan<- events.Event
}

// NewFakeSwitch creates a FakeSwitch with no canned responses.
func NewFakeSwitch() *FakeSwitch {
	return &FakeSwitch{responses: make(map[Field]*DataResponse)}
}

// Respond sets the canned response for a field.
func (f *FakeSwitch) Respond(field Field, resp *DataResponse) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[field] = resp
}

// RetrieveValue implements SwitchInterface.
func (f *FakeSwitch) RetrieveValue(nodeID uint64, req *DataRequest) (*DataResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	resp, ok := f.responses[req.Field]
	if !ok {
		return nil, fmt.Errorf("no response configured for field %v", req.Field)
	}
	return resp, nil
}

// SetValue implements SwitchInterface.
func (f *FakeSwitch) SetValue(nodeID uint64, req *SetValueRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, req)
	return nil
}

// RegisterEventNotifyWriter implements SwitchInterface.
func (f *FakeSwitch) RegisterEventNotifyWriter(ch chan<- events.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.eventCh != nil {
		return fmt.Errorf("event notify writer already registered")
	}
	f.eventCh = ch
	return nil
}

// UnregisterEventNotifyWriter implements SwitchInterface.
func (f *FakeSwitch) UnregisterEventNotifyWriter() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.eventCh = nil
	return nil
}

// Notify emits an event on the registered channel; it is a no-op when no
// channel is registered.
func (f *FakeSwitch) Notify(e events.Event) {
	f.mu.Lock()
	ch := f.eventCh
	f.mu.Unlock()
	if ch != nil {
		ch <- e
	}
}

// Requests returns a copy of the recorded data requests.
func (f *FakeSwitch) Requests() []*DataRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*DataRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

// Writes returns a copy of the recorded config writes.
func (f *FakeSwitch) Writes() []*SetValueRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*SetValueRequest, len(f.writes))
	copy(out, f.writes)
	return out
}
