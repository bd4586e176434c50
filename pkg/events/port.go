// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package events

// PortEvent is the base of all per-port events; it identifies the port the
// event originates from.
type PortEvent struct {
	EventHappened
	NodeID uint64
	PortID uint64
}

func portEvent(kind Kind, nodeID, portID uint64) PortEvent {
	return PortEvent{EventHappened: happened(kind), NodeID: nodeID, PortID: portID}
}

// PortOperStateChangedEvent reports a change of the operational state of a
// port.
type PortOperStateChangedEvent struct {
	PortEvent
	State PortState
}

// NewPortOperStateChangedEvent creates a PortOperStateChangedEvent.
func NewPortOperStateChangedEvent(nodeID, portID uint64, state PortState) *PortOperStateChangedEvent {
	return &PortOperStateChangedEvent{
		PortEvent: portEvent(KindOperStateChanged, nodeID, portID),
		State:     state,
	}
}

// PortAdminStateChangedEvent reports a change of the administrative state of
// a port.
type PortAdminStateChangedEvent struct {
	PortEvent
	State AdminState
}

// NewPortAdminStateChangedEvent creates a PortAdminStateChangedEvent.
func NewPortAdminStateChangedEvent(nodeID, portID uint64, state AdminState) *PortAdminStateChangedEvent {
	return &PortAdminStateChangedEvent{
		PortEvent: portEvent(KindAdminStateChanged, nodeID, portID),
		State:     state,
	}
}

// PortSpeedBpsChangedEvent reports a change of the configured speed of a
// port.
type PortSpeedBpsChangedEvent struct {
	PortEvent
	SpeedBps uint64
}

// NewPortSpeedBpsChangedEvent creates a PortSpeedBpsChangedEvent.
func NewPortSpeedBpsChangedEvent(nodeID, portID, speedBps uint64) *PortSpeedBpsChangedEvent {
	return &PortSpeedBpsChangedEvent{
		PortEvent: portEvent(KindPortSpeedChanged, nodeID, portID),
		SpeedBps:  speedBps,
	}
}

// PortNegotiatedSpeedBpsChangedEvent reports a change of the auto-negotiated
// speed of a port.
type PortNegotiatedSpeedBpsChangedEvent struct {
	PortEvent
	SpeedBps uint64
}

// NewPortNegotiatedSpeedBpsChangedEvent creates a
// PortNegotiatedSpeedBpsChangedEvent.
func NewPortNegotiatedSpeedBpsChangedEvent(nodeID, portID, speedBps uint64) *PortNegotiatedSpeedBpsChangedEvent {
	return &PortNegotiatedSpeedBpsChangedEvent{
		PortEvent: portEvent(KindNegotiatedSpeedChanged, nodeID, portID),
		SpeedBps:  speedBps,
	}
}

// PortMacAddressChangedEvent reports a change of the MAC address of a port.
type PortMacAddressChangedEvent struct {
	PortEvent
	MacAddress uint64
}

// NewPortMacAddressChangedEvent creates a PortMacAddressChangedEvent.
func NewPortMacAddressChangedEvent(nodeID, portID, mac uint64) *PortMacAddressChangedEvent {
	return &PortMacAddressChangedEvent{
		PortEvent:  portEvent(KindMacAddressChanged, nodeID, portID),
		MacAddress: mac,
	}
}

// PortLacpSystemPriorityChangedEvent reports a change of the LACP system
// priority of a port.
type PortLacpSystemPriorityChangedEvent struct {
	PortEvent
	Priority uint32
}

// NewPortLacpSystemPriorityChangedEvent creates a
// PortLacpSystemPriorityChangedEvent.
func NewPortLacpSystemPriorityChangedEvent(nodeID, portID uint64, priority uint32) *PortLacpSystemPriorityChangedEvent {
	return &PortLacpSystemPriorityChangedEvent{
		PortEvent: portEvent(KindLacpSystemPriorityChanged, nodeID, portID),
		Priority:  priority,
	}
}

// PortLacpSystemIDMacChangedEvent reports a change of the LACP system id of
// a port.
type PortLacpSystemIDMacChangedEvent struct {
	PortEvent
	MacAddress uint64
}

// NewPortLacpSystemIDMacChangedEvent creates a
// PortLacpSystemIDMacChangedEvent.
func NewPortLacpSystemIDMacChangedEvent(nodeID, portID, mac uint64) *PortLacpSystemIDMacChangedEvent {
	return &PortLacpSystemIDMacChangedEvent{
		PortEvent:  portEvent(KindLacpSystemIDMacChanged, nodeID, portID),
		MacAddress: mac,
	}
}

// PortCountersChangedEvent carries a fresh snapshot of the full per-port
// counters block.
type PortCountersChangedEvent struct {
	PortEvent
	Counters PortCounters
}

// NewPortCountersChangedEvent creates a PortCountersChangedEvent.
func NewPortCountersChangedEvent(nodeID, portID uint64, counters PortCounters) *PortCountersChangedEvent {
	return &PortCountersChangedEvent{
		PortEvent: portEvent(KindPortCountersChanged, nodeID, portID),
		Counters:  counters,
	}
}

// PortQosCountersChangedEvent carries a fresh snapshot of the QoS counters of
// one egress queue of a port.
type PortQosCountersChangedEvent struct {
	PortEvent
	Counters PortQosCounters
}

// NewPortQosCountersChangedEvent creates a PortQosCountersChangedEvent.
func NewPortQosCountersChangedEvent(nodeID, portID uint64, counters PortQosCounters) *PortQosCountersChangedEvent {
	return &PortQosCountersChangedEvent{
		PortEvent: portEvent(KindPortQosCountersChanged, nodeID, portID),
		Counters:  counters,
	}
}
