// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package gnmi implements the gNMI service of the switch agent on top of
// the publisher subsystem.
package gnmi

import (
	"sync"

	"github.com/eapache/channels"

	pb "github.com/openconfig/gnmi/proto/gnmi"

	"github.com/onosproject/gnmi-agent/pkg/bus"
	"github.com/onosproject/gnmi-agent/pkg/config"
	"github.com/onosproject/gnmi-agent/pkg/publisher"
	"github.com/onosproject/gnmi-agent/pkg/southbound"
	"github.com/onosproject/gnmi-agent/pkg/timer"
)

var (
	supportedEncodings = []pb.Encoding{pb.Encoding_PROTO}
)

// defaultSampleIntervalMs is used when a SAMPLE subscription does not name
// an interval. Intervals are interpreted in milliseconds.
const defaultSampleIntervalMs = 10000

// Server implements the gnmi server interface. It supports Capabilities,
// Get, Set, and Subscribe APIs.
// Typical usage:
//
//	g := grpc.NewServer()
//	s, err := gnmi.NewServer(switchIface, startupConfig)
//	pb.RegisterGNMIServer(g, s)
//	reflection.Register(g)
//	listen, err := net.Listen("tcp", ":9339")
//	g.Serve(listen)
type Server struct {
	switchIface southbound.SwitchInterface
	registry    *bus.Registry
	timers      *timer.Daemon
	publisher   *publisher.Publisher

	configMu sync.RWMutex
	config   *config.ChassisConfig

	// ConfigUpdate carries every accepted chassis config to observers.
	ConfigUpdate *channels.RingChannel
}

// syncStream serializes writes to one subscribe stream; updates originate
// from the inbound loop, the timer daemon and the event reader worker.
type syncStream struct {
	mu     sync.Mutex
	stream pb.GNMI_SubscribeServer
}

func (s *syncStream) Send(resp *pb.SubscribeResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stream.Send(resp)
}

// streamClient tracks the per-stream state: the serialized outbound side
// and the subscription records owned by the stream.
type streamClient struct {
	stream pb.GNMI_SubscribeServer
	out    *syncStream

	mu      sync.Mutex
	handles []*bus.Record
	polled  []*bus.Record
}

func (c *streamClient) addHandle(rec *bus.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handles = append(c.handles, rec)
}

func (c *streamClient) addPolled(rec *bus.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handles = append(c.handles, rec)
	c.polled = append(c.polled, rec)
}

func (c *streamClient) polledRecords() []*bus.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*bus.Record, len(c.polled))
	copy(out, c.polled)
	return out
}

func (c *streamClient) allHandles() []*bus.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*bus.Record, len(c.handles))
	copy(out, c.handles)
	return out
}
