// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package southbound defines the typed interface through which the agent
// talks to the switch driver: data retrieval, config writes and the change
// event notification channel.
package southbound

import (
	"github.com/onosproject/gnmi-agent/pkg/events"
)

// Field selects the piece of state a DataRequest asks for or a
// SetValueRequest writes.
type Field int32

// Values of the Field enumeration.
const (
	FieldUnknown Field = iota
	FieldOperStatus
	FieldAdminStatus
	FieldMacAddress
	FieldPortSpeed
	FieldNegotiatedPortSpeed
	FieldLacpSystemIDMac
	FieldLacpSystemPriority
	FieldPortCounters
	FieldPortQosCounters
	FieldMemoryErrorAlarm
	FieldFlowProgrammingExceptionAlarm
)

func (f Field) String() string {
	switch f {
	case FieldOperStatus:
		return "oper-status"
	case FieldAdminStatus:
		return "admin-status"
	case FieldMacAddress:
		return "mac-address"
	case FieldPortSpeed:
		return "port-speed"
	case FieldNegotiatedPortSpeed:
		return "negotiated-port-speed"
	case FieldLacpSystemIDMac:
		return "lacp-system-id-mac"
	case FieldLacpSystemPriority:
		return "lacp-system-priority"
	case FieldPortCounters:
		return "port-counters"
	case FieldPortQosCounters:
		return "port-qos-counters"
	case FieldMemoryErrorAlarm:
		return "memory-error-alarm"
	case FieldFlowProgrammingExceptionAlarm:
		return "flow-programming-exception-alarm"
	default:
		return "unknown"
	}
}

// DataRequest asks the switch driver for one piece of state.
type DataRequest struct {
	Field   Field
	NodeID  uint64
	PortID  uint64
	QueueID uint32
}

// DataResponse carries the state the driver answered with. Only the field
// matching the request is populated.
type DataResponse struct {
	OperStatus         events.PortState
	AdminStatus        events.AdminState
	MacAddress         uint64
	SpeedBps           uint64
	NegotiatedSpeedBps uint64
	LacpSystemIDMac    uint64
	LacpSystemPriority uint32
	PortCounters       *events.PortCounters
	QosCounters        *events.PortQosCounters
	Alarm              *events.Alarm
}

// SetValueRequest writes one piece of config down to the switch driver.
type SetValueRequest struct {
	Field        Field
	NodeID       uint64
	PortID       uint64
	MacAddress   uint64
	SpeedBps     uint64
	AdminEnabled bool
}

// SwitchInterface is the switch driver abstraction the publisher and the
// leaf handlers are written against.
type SwitchInterface interface {
	// RetrieveValue answers a typed data request for one node.
	RetrieveValue(nodeID uint64, req *DataRequest) (*DataResponse, error)

	// SetValue applies a typed config write to one node.
	SetValue(nodeID uint64, req *SetValueRequest) error

	// RegisterEventNotifyWriter hands the driver the channel it should
	// emit change events on. The driver must stop writing after
	// UnregisterEventNotifyWriter returns; the channel is closed by the
	// caller as the shutdown signal for the event reader.
	RegisterEventNotifyWriter(ch chan<- events.Event) error

	// UnregisterEventNotifyWriter detaches the previously registered
	// channel.
	UnregisterEventNotifyWriter() error
}
