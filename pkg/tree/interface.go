// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package tree

import (
	pb "github.com/openconfig/gnmi/proto/gnmi"

	"github.com/onosproject/gnmi-agent/pkg/bus"
	"github.com/onosproject/gnmi-agent/pkg/config"
	"github.com/onosproject/gnmi-agent/pkg/events"
	"github.com/onosproject/gnmi-agent/pkg/southbound"
)

// pollValue builds the on-poll/on-timer handler of a leaf: one typed
// retrieve, one update.
func (t *Tree) pollValue(req southbound.DataRequest, path *pb.Path, render func(*southbound.DataResponse) *pb.TypedValue) bus.Handler {
	return func(e events.Event, stream bus.Stream) error {
		resp, err := t.retrieve(&req)
		if err != nil {
			return err
		}
		return sendUpdate(stream, path, render(resp))
	}
}

// counterLeaves fixes the set and order of the leaves under state/counters.
var counterLeaves = []struct {
	name string
	get  func(*events.PortCounters) uint64
}{
	{"in-octets", func(c *events.PortCounters) uint64 { return c.InOctets }},
	{"out-octets", func(c *events.PortCounters) uint64 { return c.OutOctets }},
	{"in-unicast-pkts", func(c *events.PortCounters) uint64 { return c.InUnicastPkts }},
	{"out-unicast-pkts", func(c *events.PortCounters) uint64 { return c.OutUnicastPkts }},
	{"in-broadcast-pkts", func(c *events.PortCounters) uint64 { return c.InBroadcastPkts }},
	{"out-broadcast-pkts", func(c *events.PortCounters) uint64 { return c.OutBroadcastPkts }},
	{"in-multicast-pkts", func(c *events.PortCounters) uint64 { return c.InMulticastPkts }},
	{"out-multicast-pkts", func(c *events.PortCounters) uint64 { return c.OutMulticastPkts }},
	{"in-discards", func(c *events.PortCounters) uint64 { return c.InDiscards }},
	{"out-discards", func(c *events.PortCounters) uint64 { return c.OutDiscards }},
	{"in-unknown-protos", func(c *events.PortCounters) uint64 { return c.InUnknownProtos }},
	{"in-errors", func(c *events.PortCounters) uint64 { return c.InErrors }},
	{"out-errors", func(c *events.PortCounters) uint64 { return c.OutErrors }},
	{"in-fcs-errors", func(c *events.PortCounters) uint64 { return c.InFcsErrors }},
}

// counterSampleIntervalMs is the sample interval TARGET_DEFINED
// subscriptions on counters are rewritten to.
const counterSampleIntervalMs = 10000

func targetDefinedSample(intervalMs uint64) func(*pb.Subscription) error {
	return func(sub *pb.Subscription) error {
		sub.Mode = pb.SubscriptionMode_SAMPLE
		sub.SampleInterval = intervalMs
		return nil
	}
}

func (t *Tree) addSubtreeInterfaceLocked(port *config.SingletonPort) {
	name := port.Name
	nodeID := port.NodeID
	portID := port.PortID
	t.portNames[portKey{nodeID: nodeID, portID: portID}] = name

	iface := t.root.
		getOrAddChild("interfaces", nil).
		getOrAddChild("interface", map[string]string{"name": name})
	state := iface.getOrAddChild("state", nil)

	nameNode := state.getOrAddChild("name", nil)
	namePath := nameNode.GetPath()
	ifaceName := name
	t.setLeaf(nameNode, leafSpec{
		poll: func(e events.Event, stream bus.Stream) error {
			return sendUpdate(stream, namePath, strVal(ifaceName))
		},
	})

	ifindexNode := state.getOrAddChild("ifindex", nil)
	ifindexPath := ifindexNode.GetPath()
	ifindex := portID
	t.setLeaf(ifindexNode, leafSpec{
		poll: func(e events.Event, stream bus.Stream) error {
			return sendUpdate(stream, ifindexPath, uintVal(ifindex))
		},
	})

	operNode := state.getOrAddChild("oper-status", nil)
	operPath := operNode.GetPath()
	t.setLeaf(operNode, leafSpec{
		poll: t.pollValue(
			southbound.DataRequest{Field: southbound.FieldOperStatus, NodeID: nodeID, PortID: portID},
			operPath,
			func(resp *southbound.DataResponse) *pb.TypedValue { return strVal(resp.OperStatus.String()) }),
		onChange: func(e events.Event, stream bus.Stream) error {
			ev, ok := e.(*events.PortOperStateChangedEvent)
			if !ok || ev.NodeID != nodeID || ev.PortID != portID {
				return nil
			}
			return sendUpdate(stream, operPath, strVal(ev.State.String()))
		},
		kinds: []events.Kind{events.KindOperStateChanged},
	})

	adminNode := state.getOrAddChild("admin-status", nil)
	adminPath := adminNode.GetPath()
	t.setLeaf(adminNode, leafSpec{
		poll: t.pollValue(
			southbound.DataRequest{Field: southbound.FieldAdminStatus, NodeID: nodeID, PortID: portID},
			adminPath,
			func(resp *southbound.DataResponse) *pb.TypedValue { return strVal(resp.AdminStatus.String()) }),
		onChange: func(e events.Event, stream bus.Stream) error {
			ev, ok := e.(*events.PortAdminStateChangedEvent)
			if !ok || ev.NodeID != nodeID || ev.PortID != portID {
				return nil
			}
			return sendUpdate(stream, adminPath, strVal(ev.State.String()))
		},
		kinds: []events.Kind{events.KindAdminStateChanged},
	})

	t.addCountersLocked(state, nodeID, portID)
	t.addEthernetLocked(iface, nodeID, portID, port.SpeedBps)
	t.addLacpLocked(name, nodeID, portID)
	for _, q := range port.Queues {
		t.addSubtreeQueueLocked(name, nodeID, portID, q)
	}
}

// addCountersLocked creates state/counters and its leaves. The counters
// group node answers a poll with one retrieve fanned out to every leaf, and
// rewrites TARGET_DEFINED subscriptions to SAMPLE at 10s.
func (t *Tree) addCountersLocked(state *Node, nodeID, portID uint64) {
	counters := state.getOrAddChild("counters", nil)
	req := southbound.DataRequest{Field: southbound.FieldPortCounters, NodeID: nodeID, PortID: portID}

	leafPaths := make([]*pb.Path, len(counterLeaves))
	for i, leaf := range counterLeaves {
		node := counters.getOrAddChild(leaf.name, nil)
		leafPath := node.GetPath()
		leafPaths[i] = leafPath
		get := leaf.get
		t.setLeaf(node, leafSpec{
			poll: t.pollValue(req, leafPath, func(resp *southbound.DataResponse) *pb.TypedValue {
				return uintVal(get(resp.PortCounters))
			}),
			onChange: func(e events.Event, stream bus.Stream) error {
				ev, ok := e.(*events.PortCountersChangedEvent)
				if !ok || ev.NodeID != nodeID || ev.PortID != portID {
					return nil
				}
				return sendUpdate(stream, leafPath, uintVal(get(&ev.Counters)))
			},
			kinds: []events.Kind{events.KindPortCountersChanged},
		})
		node.targetDefinedMode = targetDefinedSample(counterSampleIntervalMs)
	}

	emitAll := func(stream bus.Stream, c *events.PortCounters) error {
		for i, leaf := range counterLeaves {
			if err := sendUpdate(stream, leafPaths[i], uintVal(leaf.get(c))); err != nil {
				return err
			}
		}
		return nil
	}
	counters.onPoll = func(e events.Event, stream bus.Stream) error {
		resp, err := t.retrieve(&req)
		if err != nil {
			return err
		}
		return emitAll(stream, resp.PortCounters)
	}
	counters.onTimer = counters.onPoll
	counters.onChange = func(e events.Event, stream bus.Stream) error {
		ev, ok := e.(*events.PortCountersChangedEvent)
		if !ok || ev.NodeID != nodeID || ev.PortID != portID {
			return nil
		}
		return emitAll(stream, &ev.Counters)
	}
	counters.targetDefinedMode = targetDefinedSample(counterSampleIntervalMs)
}

func (t *Tree) addEthernetLocked(iface *Node, nodeID, portID, configuredSpeedBps uint64) {
	ethernet := iface.getOrAddChild("ethernet", nil)
	ethState := ethernet.getOrAddChild("state", nil)
	ethConfig := ethernet.getOrAddChild("config", nil)

	macNode := ethState.getOrAddChild("mac-address", nil)
	macPath := macNode.GetPath()
	macOnChange := func(path *pb.Path) bus.Handler {
		return func(e events.Event, stream bus.Stream) error {
			ev, ok := e.(*events.PortMacAddressChangedEvent)
			if !ok || ev.NodeID != nodeID || ev.PortID != portID {
				return nil
			}
			return sendUpdate(stream, path, strVal(MacAddressToString(ev.MacAddress)))
		}
	}
	macPoll := func(path *pb.Path) bus.Handler {
		return t.pollValue(
			southbound.DataRequest{Field: southbound.FieldMacAddress, NodeID: nodeID, PortID: portID},
			path,
			func(resp *southbound.DataResponse) *pb.TypedValue {
				return strVal(MacAddressToString(resp.MacAddress))
			})
	}
	t.setLeaf(macNode, leafSpec{
		poll:     macPoll(macPath),
		onChange: macOnChange(macPath),
		kinds:    []events.Kind{events.KindMacAddressChanged},
	})

	speedNode := ethState.getOrAddChild("port-speed", nil)
	speedPath := speedNode.GetPath()
	t.setLeaf(speedNode, leafSpec{
		poll: t.pollValue(
			southbound.DataRequest{Field: southbound.FieldPortSpeed, NodeID: nodeID, PortID: portID},
			speedPath,
			func(resp *southbound.DataResponse) *pb.TypedValue {
				return strVal(SpeedBpsToString(resp.SpeedBps))
			}),
		onChange: func(e events.Event, stream bus.Stream) error {
			ev, ok := e.(*events.PortSpeedBpsChangedEvent)
			if !ok || ev.NodeID != nodeID || ev.PortID != portID {
				return nil
			}
			return sendUpdate(stream, speedPath, strVal(SpeedBpsToString(ev.SpeedBps)))
		},
		kinds: []events.Kind{events.KindPortSpeedChanged},
	})

	negNode := ethState.getOrAddChild("negotiated-port-speed", nil)
	negPath := negNode.GetPath()
	t.setLeaf(negNode, leafSpec{
		poll: t.pollValue(
			southbound.DataRequest{Field: southbound.FieldNegotiatedPortSpeed, NodeID: nodeID, PortID: portID},
			negPath,
			func(resp *southbound.DataResponse) *pb.TypedValue {
				return strVal(SpeedBpsToString(resp.NegotiatedSpeedBps))
			}),
		onChange: func(e events.Event, stream bus.Stream) error {
			ev, ok := e.(*events.PortNegotiatedSpeedBpsChangedEvent)
			if !ok || ev.NodeID != nodeID || ev.PortID != portID {
				return nil
			}
			return sendUpdate(stream, negPath, strVal(SpeedBpsToString(ev.SpeedBps)))
		},
		kinds: []events.Kind{events.KindNegotiatedSpeedChanged},
	})

	cfgMacNode := ethConfig.getOrAddChild("mac-address", nil)
	cfgMacPath := cfgMacNode.GetPath()
	t.setLeaf(cfgMacNode, leafSpec{
		poll:     macPoll(cfgMacPath),
		onChange: macOnChange(cfgMacPath),
		kinds:    []events.Kind{events.KindMacAddressChanged},
	})

	cfgSpeedNode := ethConfig.getOrAddChild("port-speed", nil)
	cfgSpeedPath := cfgSpeedNode.GetPath()
	speedBps := configuredSpeedBps
	t.setLeaf(cfgSpeedNode, leafSpec{
		poll: func(e events.Event, stream bus.Stream) error {
			return sendUpdate(stream, cfgSpeedPath, strVal(SpeedBpsToString(speedBps)))
		},
		onChange: func(e events.Event, stream bus.Stream) error {
			ev, ok := e.(*events.PortSpeedBpsChangedEvent)
			if !ok || ev.NodeID != nodeID || ev.PortID != portID {
				return nil
			}
			return sendUpdate(stream, cfgSpeedPath, strVal(SpeedBpsToString(ev.SpeedBps)))
		},
		kinds: []events.Kind{events.KindPortSpeedChanged},
	})
}

func (t *Tree) addLacpLocked(name string, nodeID, portID uint64) {
	lacpState := t.root.
		getOrAddChild("lacp", nil).
		getOrAddChild("interfaces", nil).
		getOrAddChild("interface", map[string]string{"name": name}).
		getOrAddChild("state", nil)

	prioNode := lacpState.getOrAddChild("system-priority", nil)
	prioPath := prioNode.GetPath()
	t.setLeaf(prioNode, leafSpec{
		poll: t.pollValue(
			southbound.DataRequest{Field: southbound.FieldLacpSystemPriority, NodeID: nodeID, PortID: portID},
			prioPath,
			func(resp *southbound.DataResponse) *pb.TypedValue {
				return uintVal(uint64(resp.LacpSystemPriority))
			}),
		onChange: func(e events.Event, stream bus.Stream) error {
			ev, ok := e.(*events.PortLacpSystemPriorityChangedEvent)
			if !ok || ev.NodeID != nodeID || ev.PortID != portID {
				return nil
			}
			return sendUpdate(stream, prioPath, uintVal(uint64(ev.Priority)))
		},
		kinds: []events.Kind{events.KindLacpSystemPriorityChanged},
	})

	idNode := lacpState.getOrAddChild("system-id-mac", nil)
	idPath := idNode.GetPath()
	t.setLeaf(idNode, leafSpec{
		poll: t.pollValue(
			southbound.DataRequest{Field: southbound.FieldLacpSystemIDMac, NodeID: nodeID, PortID: portID},
			idPath,
			func(resp *southbound.DataResponse) *pb.TypedValue {
				return strVal(MacAddressToString(resp.LacpSystemIDMac))
			}),
		onChange: func(e events.Event, stream bus.Stream) error {
			ev, ok := e.(*events.PortLacpSystemIDMacChangedEvent)
			if !ok || ev.NodeID != nodeID || ev.PortID != portID {
				return nil
			}
			return sendUpdate(stream, idPath, strVal(MacAddressToString(ev.MacAddress)))
		},
		kinds: []events.Kind{events.KindLacpSystemIDMacChanged},
	})
}
