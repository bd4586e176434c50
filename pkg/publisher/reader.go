// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package publisher

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/onosproject/gnmi-agent/pkg/events"
)

// maxEventDepth bounds the queue between the switch driver and the event
// reader worker.
const maxEventDepth = 128

// RegisterEventWriter creates the event queue, registers it with the switch
// driver and spawns the reader worker. It is idempotent.
func (p *Publisher) RegisterEventWriter() error {
	if p.eventCh != nil {
		return nil
	}
	ch := make(chan events.Event, maxEventDepth)
	if err := p.switchIface.RegisterEventNotifyWriter(ch); err != nil {
		return status.Errorf(codes.Internal, "cannot register event notify writer: %v", err)
	}
	p.eventCh = ch
	go p.readEvents(ch)
	return nil
}

// UnregisterEventWriter detaches the queue from the switch driver and
// closes it; closure is the shutdown signal for the reader worker.
func (p *Publisher) UnregisterEventWriter() error {
	if p.eventCh == nil {
		return nil
	}
	err := p.switchIface.UnregisterEventNotifyWriter()
	close(p.eventCh)
	p.eventCh = nil
	return err
}

// readEvents is the event reader worker: it blocks on the queue and
// dispatches each event to the handler list of its kind. It exits when the
// queue is closed.
func (p *Publisher) readEvents(ch <-chan events.Event) {
	for e := range ch {
		if e == nil {
			// A read should never produce an empty event; log and move on.
			log.Error("Event queue read returned no event.")
			continue
		}
		p.handleChange(e)
	}
	log.Info("Event queue closed, event reader exiting")
}

// handleChange delivers one switch event to every registered record.
// Config pushes grow the tree and therefore run without the reader lock;
// everything else is delivered under it.
func (p *Publisher) handleChange(e events.Event) {
	if e.GetKind() == events.KindConfigPushed {
		p.registry.Deliver(e)
		return
	}
	p.parseTree.View(func() {
		p.registry.Deliver(e)
	})
}
