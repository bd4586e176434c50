// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package bus

import (
	"fmt"
	"testing"

	pb "github.com/openconfig/gnmi/proto/gnmi"

	"github.com/onosproject/gnmi-agent/pkg/events"
)

type fakeStream struct {
	sent []*pb.SubscribeResponse
}

func (f *fakeStream) Send(resp *pb.SubscribeResponse) error {
	f.sent = append(f.sent, resp)
	return nil
}

func TestRegisterAndDeliver(t *testing.T) {
	registry := NewRegistry()
	list := registry.List(events.KindOperStateChanged)

	delivered := 0
	rec := NewRecord(func(e events.Event, stream Stream) error {
		delivered++
		return nil
	}, &fakeStream{})

	if err := list.Register(rec); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if n := list.GetNumberOfRegisteredHandlers(); n != 1 {
		t.Fatalf("expected 1 registered handler, got %d", n)
	}

	registry.Deliver(events.NewPortOperStateChangedEvent(1, 1, events.PortStateUp))
	if delivered != 1 {
		t.Errorf("expected 1 delivery, got %d", delivered)
	}
}

func TestRegisterIsIdempotentPerRecord(t *testing.T) {
	list := NewRegistry().List(events.KindPortCountersChanged)
	rec := NewRecord(func(events.Event, Stream) error { return nil }, &fakeStream{})

	for i := 0; i < 3; i++ {
		if err := list.Register(rec); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
	}
	if n := list.GetNumberOfRegisteredHandlers(); n != 1 {
		t.Errorf("expected 1 registered handler after repeated registration, got %d", n)
	}
}

func TestDeadRecordIsSkippedAndPruned(t *testing.T) {
	list := NewRegistry().List(events.KindOperStateChanged)

	delivered := 0
	rec := NewRecord(func(events.Event, Stream) error {
		delivered++
		return nil
	}, &fakeStream{})
	if err := list.Register(rec); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	rec.Close()
	list.Deliver(events.NewPortOperStateChangedEvent(1, 1, events.PortStateDown))
	if delivered != 0 {
		t.Errorf("dead record received an event")
	}
	if n := list.GetNumberOfRegisteredHandlers(); n != 0 {
		t.Errorf("expected 0 registered handlers after close, got %d", n)
	}
}

func TestHandlerErrorDoesNotStopDelivery(t *testing.T) {
	list := NewRegistry().List(events.KindOperStateChanged)

	first := NewRecord(func(events.Event, Stream) error {
		return fmt.Errorf("write failed")
	}, &fakeStream{})
	delivered := 0
	second := NewRecord(func(events.Event, Stream) error {
		delivered++
		return nil
	}, &fakeStream{})

	if err := list.Register(first); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := list.Register(second); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	list.Deliver(events.NewPortOperStateChangedEvent(1, 1, events.PortStateUp))
	if delivered != 1 {
		t.Errorf("second record did not receive the event after the first one failed")
	}
}

func TestRegisterNilRecord(t *testing.T) {
	list := NewRegistry().List(events.KindOperStateChanged)
	if err := list.Register(nil); err == nil {
		t.Errorf("expected an error when registering a nil record")
	}
}
