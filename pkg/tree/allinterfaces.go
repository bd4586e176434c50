// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package tree

import (
	pb "github.com/openconfig/gnmi/proto/gnmi"

	"github.com/onosproject/gnmi-agent/pkg/bus"
	"github.com/onosproject/gnmi-agent/pkg/events"
	gpath "github.com/onosproject/gnmi-agent/pkg/path"
)

// portEventKinds is every event kind the per-port subtrees emit on.
var portEventKinds = []events.Kind{
	events.KindOperStateChanged,
	events.KindAdminStateChanged,
	events.KindPortSpeedChanged,
	events.KindNegotiatedSpeedChanged,
	events.KindMacAddressChanged,
	events.KindLacpSystemPriorityChanged,
	events.KindLacpSystemIDMacChanged,
	events.KindPortCountersChanged,
	events.KindPortQosCountersChanged,
}

func ifaceLeafPath(name string, suffix ...string) *pb.Path {
	p := &pb.Path{Elem: []*pb.PathElem{
		{Name: "interfaces"},
		{Name: "interface", Key: map[string]string{"name": name}},
	}}
	for _, elem := range suffix {
		p.Elem = append(p.Elem, &pb.PathElem{Name: elem})
	}
	return p
}

// addSubtreeAllInterfaces creates the wildcard skeleton node
// /interfaces/interface[name=*]/... that ON_CHANGE subscriptions can bind
// to before any interface has been configured. Its handler projects the
// port events of the /interfaces leaves onto the path of the concrete
// interface the event belongs to.
func (t *Tree) addSubtreeAllInterfaces() {
	all := t.root.
		getOrAddChild("interfaces", nil).
		getOrAddChild("interface", map[string]string{"name": gpath.Wildcard}).
		getOrAddChild("...", nil)

	all.supportsOnChange = true
	all.supportsOnPoll = true
	all.onChange = t.projectPortEvent
	all.onPoll = func(e events.Event, stream bus.Stream) error {
		// Nothing to answer before the subtree has concrete leaves; polls
		// of concrete interfaces resolve to their own nodes.
		return nil
	}
	all.onChangeRegistration = t.registrationFor(portEventKinds)
}

// projectPortEvent converts one port event into the update(s) of the leaves
// it feeds, addressed by the concrete interface name of the originating
// port. Events for ports the config never declared are dropped, and LACP and
// QoS queue events produce no update here.
func (t *Tree) projectPortEvent(e events.Event, stream bus.Stream) error {
	switch ev := e.(type) {
	case *events.PortOperStateChangedEvent:
		if name, ok := t.lookupPortName(ev.NodeID, ev.PortID); ok {
			return sendUpdate(stream, ifaceLeafPath(name, "state", "oper-status"), strVal(ev.State.String()))
		}
	case *events.PortAdminStateChangedEvent:
		if name, ok := t.lookupPortName(ev.NodeID, ev.PortID); ok {
			return sendUpdate(stream, ifaceLeafPath(name, "state", "admin-status"), strVal(ev.State.String()))
		}
	case *events.PortSpeedBpsChangedEvent:
		if name, ok := t.lookupPortName(ev.NodeID, ev.PortID); ok {
			return sendUpdate(stream, ifaceLeafPath(name, "ethernet", "state", "port-speed"), strVal(SpeedBpsToString(ev.SpeedBps)))
		}
	case *events.PortNegotiatedSpeedBpsChangedEvent:
		if name, ok := t.lookupPortName(ev.NodeID, ev.PortID); ok {
			return sendUpdate(stream, ifaceLeafPath(name, "ethernet", "state", "negotiated-port-speed"), strVal(SpeedBpsToString(ev.SpeedBps)))
		}
	case *events.PortMacAddressChangedEvent:
		if name, ok := t.lookupPortName(ev.NodeID, ev.PortID); ok {
			return sendUpdate(stream, ifaceLeafPath(name, "ethernet", "state", "mac-address"), strVal(MacAddressToString(ev.MacAddress)))
		}
	case *events.PortCountersChangedEvent:
		name, ok := t.lookupPortName(ev.NodeID, ev.PortID)
		if !ok {
			return nil
		}
		for _, leaf := range counterLeaves {
			p := ifaceLeafPath(name, "state", "counters", leaf.name)
			if err := sendUpdate(stream, p, uintVal(leaf.get(&ev.Counters))); err != nil {
				return err
			}
		}
	}
	return nil
}
