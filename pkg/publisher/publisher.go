// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package publisher implements the subscription manager: it validates
// subscription paths against the parse tree, installs the delivery
// machinery matching the subscription mode and routes cancellation.
package publisher

import (
	"time"

	"github.com/onosproject/onos-lib-go/pkg/logging"
	pb "github.com/openconfig/gnmi/proto/gnmi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/onosproject/gnmi-agent/pkg/bus"
	"github.com/onosproject/gnmi-agent/pkg/config"
	"github.com/onosproject/gnmi-agent/pkg/events"
	gpath "github.com/onosproject/gnmi-agent/pkg/path"
	"github.com/onosproject/gnmi-agent/pkg/southbound"
	"github.com/onosproject/gnmi-agent/pkg/timer"
	"github.com/onosproject/gnmi-agent/pkg/tree"
)

var log = logging.GetLogger("publisher")

// Frequency carries the timing of a SAMPLE subscription: first fire after
// Delay, then every Period.
type Frequency struct {
	Delay  time.Duration
	Period time.Duration
}

// Publisher is the subscription manager. One instance serves every client
// stream of the agent.
type Publisher struct {
	switchIface southbound.SwitchInterface
	registry    *bus.Registry
	timers      *timer.Daemon
	parseTree   *tree.Tree

	onConfigPushed *bus.Record

	eventCh chan events.Event
}

// New creates a Publisher around a switch driver. The config-pushed record
// it registers grows the parse tree whenever a config push event is
// delivered.
func New(switchIface southbound.SwitchInterface, registry *bus.Registry, timers *timer.Daemon) *Publisher {
	p := &Publisher{
		switchIface: switchIface,
		registry:    registry,
		timers:      timers,
		parseTree:   tree.New(switchIface, registry),
	}
	p.onConfigPushed = bus.NewRecord(p.applyPushedConfig, nil)
	if err := registry.List(events.KindConfigPushed).Register(p.onConfigPushed); err != nil {
		log.Errorf("Cannot register the config push handler: %v", err)
	}
	return p
}

// Tree returns the parse tree.
func (p *Publisher) Tree() *tree.Tree {
	return p.parseTree
}

func (p *Publisher) applyPushedConfig(e events.Event, _ bus.Stream) error {
	ev, ok := e.(*events.ConfigPushedEvent)
	if !ok {
		return nil
	}
	return p.parseTree.ProcessPushedConfig(ev.Config)
}

// HandleConfigPush accepts a new chassis config: the config-pushed event is
// delivered to every registered record, the publisher's own included, which
// grows the tree.
func (p *Publisher) HandleConfigPush(cfg *config.ChassisConfig) error {
	p.registry.Deliver(events.NewConfigPushedEvent(cfg))
	return nil
}

// subscribe validates the request and creates the subscription record
// holding the node's handler for the requested mode.
func (p *Publisher) subscribe(
	supported func(*tree.Node) bool,
	handler func(*tree.Node) bus.Handler,
	path *pb.Path,
	stream bus.Stream,
) (*bus.Record, error) {
	if stream == nil {
		return nil, status.Error(codes.Internal, "stream is nil")
	}
	if len(path.GetElem()) == 0 {
		return nil, status.Error(codes.InvalidArgument, "path is empty")
	}
	node := p.parseTree.FindNode(path)
	if node == nil {
		return nil, status.Errorf(codes.InvalidArgument, "the path (%s) is unsupported", gpath.String(path))
	}
	if !supported(node) {
		return nil, status.Errorf(codes.InvalidArgument, "not all leaves on the path (%s) support this mode", gpath.String(path))
	}
	return bus.NewRecord(handler(node), stream), nil
}

// SubscribeOnChange installs an ON_CHANGE subscription: the record is
// registered with every event list the subtree emits events on.
func (p *Publisher) SubscribeOnChange(path *pb.Path, stream bus.Stream) (*bus.Record, error) {
	rec, err := p.subscribe(
		(*tree.Node).AllSubtreeLeavesSupportOnChange,
		(*tree.Node).GetOnChangeHandler,
		path, stream)
	if err != nil {
		return nil, err
	}
	if err := p.parseTree.FindNode(path).DoOnChangeRegistration(rec); err != nil {
		rec.Close()
		return nil, status.Errorf(codes.Internal, "cannot register subscription: %v", err)
	}
	return rec, nil
}

// SubscribePeriodic installs a SAMPLE subscription driven by the timer
// daemon at the requested frequency.
func (p *Publisher) SubscribePeriodic(freq Frequency, path *pb.Path, stream bus.Stream) (*bus.Record, error) {
	rec, err := p.subscribe(
		(*tree.Node).AllSubtreeLeavesSupportOnTimer,
		(*tree.Node).GetOnTimerHandler,
		path, stream)
	if err != nil {
		return nil, err
	}
	handle, err := p.timers.RequestPeriodicTimer(freq.Delay, freq.Period, func() error {
		return p.HandleEvent(events.NewTimerEvent(), rec)
	})
	if err != nil {
		rec.Close()
		return nil, status.Errorf(codes.Internal, "cannot start timer: %v", err)
	}
	rec.SetTimer(handle)
	if err := p.registry.List(events.KindTimerTick).Register(rec); err != nil {
		rec.Close()
		return nil, status.Errorf(codes.Internal, "cannot register subscription: %v", err)
	}
	return rec, nil
}

// SubscribePoll installs a POLL subscription; it fires only when the client
// sends a poll request and HandlePoll is called.
func (p *Publisher) SubscribePoll(path *pb.Path, stream bus.Stream) (*bus.Record, error) {
	return p.subscribe(
		(*tree.Node).AllSubtreeLeavesSupportOnPoll,
		(*tree.Node).GetOnPollHandler,
		path, stream)
}

// HandlePoll synchronously invokes the subscription's handler once.
func (p *Publisher) HandlePoll(rec *bus.Record) error {
	if rec == nil {
		return status.Error(codes.Internal, "subscription record is nil")
	}
	var err error
	p.parseTree.View(func() {
		err = rec.Handle(events.NewPollEvent())
	})
	if err != nil {
		log.Errorf("Poll handler returned an error: %v", err)
	}
	return err
}

// HandleEvent delivers one event to one record. Dead records ignore it.
func (p *Publisher) HandleEvent(e events.Event, rec *bus.Record) error {
	var err error
	p.parseTree.View(func() {
		err = rec.Handle(e)
	})
	return err
}

// UpdateSubscriptionWithTargetSpecificModeSpecification rewrites a
// TARGET_DEFINED subscription into the mode the addressed subtree prefers.
func (p *Publisher) UpdateSubscriptionWithTargetSpecificModeSpecification(path *pb.Path, sub *pb.Subscription) error {
	if sub == nil {
		return status.Error(codes.Internal, "subscription is nil")
	}
	if len(path.GetElem()) == 0 {
		return status.Error(codes.InvalidArgument, "path is empty")
	}
	node := p.parseTree.FindNode(path)
	if node == nil {
		return status.Errorf(codes.InvalidArgument, "the path (%s) is unsupported", gpath.String(path))
	}
	return node.ApplyTargetDefinedModeToSubscription(sub)
}

// UnSubscribe ends a subscription: the timer (if any) is cancelled first,
// then the record is marked dead so event-list entries decay and are pruned
// lazily.
func (p *Publisher) UnSubscribe(rec *bus.Record) error {
	if rec == nil {
		return status.Error(codes.Internal, "subscription record is nil")
	}
	if h := rec.Timer(); h != nil {
		p.timers.CancelTimer(h)
	}
	rec.Close()
	return nil
}

// SendSyncResponse notifies the client that the initial snapshot is
// complete.
func (p *Publisher) SendSyncResponse(stream bus.Stream) error {
	if stream == nil {
		log.Error("Sync response cannot be sent as the stream is nil")
		return status.Error(codes.Internal, "stream is nil")
	}
	resp := &pb.SubscribeResponse{
		Response: &pb.SubscribeResponse_SyncResponse{SyncResponse: true},
	}
	if err := stream.Send(resp); err != nil {
		return status.Errorf(codes.Internal, "writing sync-response message to stream failed: %v", err)
	}
	return nil
}
