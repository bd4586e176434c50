// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package events

// PortState is the operational state of a port.
type PortState int32

// Values of the PortState enumeration.
const (
	PortStateUnknown PortState = iota
	PortStateUp
	PortStateDown
	PortStateFailed
)

func (s PortState) String() string {
	switch s {
	case PortStateUp:
		return "UP"
	case PortStateDown:
		return "DOWN"
	case PortStateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// AdminState is the administrative state of a port.
type AdminState int32

// Values of the AdminState enumeration.
const (
	AdminStateUnknown AdminState = iota
	AdminStateEnabled
	AdminStateDisabled
)

func (s AdminState) String() string {
	switch s {
	case AdminStateEnabled:
		return "UP"
	case AdminStateDisabled:
		return "DOWN"
	default:
		return "UNKNOWN"
	}
}

// Severity is the severity of an alarm.
type Severity int32

// Values of the Severity enumeration.
const (
	SeverityUnknown Severity = iota
	SeverityMinor
	SeverityWarning
	SeverityMajor
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityMinor:
		return "MINOR"
	case SeverityWarning:
		return "WARNING"
	case SeverityMajor:
		return "MAJOR"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// TrafficClass identifies an egress queue purpose. The wire rendering is the
// symbolic name; the queue id used by the switch is numeric.
type TrafficClass int32

// Values of the TrafficClass enumeration.
const (
	TrafficClassBE1 TrafficClass = iota
	TrafficClassAF1
	TrafficClassAF2
	TrafficClassAF3
	TrafficClassAF4
	TrafficClassNC1
)

func (tc TrafficClass) String() string {
	switch tc {
	case TrafficClassBE1:
		return "BE1"
	case TrafficClassAF1:
		return "AF1"
	case TrafficClassAF2:
		return "AF2"
	case TrafficClassAF3:
		return "AF3"
	case TrafficClassAF4:
		return "AF4"
	case TrafficClassNC1:
		return "NC1"
	default:
		return "BE1"
	}
}

// TrafficClassFromString maps a symbolic queue name back to its enum value.
func TrafficClassFromString(name string) (TrafficClass, bool) {
	switch name {
	case "BE1":
		return TrafficClassBE1, true
	case "AF1":
		return TrafficClassAF1, true
	case "AF2":
		return TrafficClassAF2, true
	case "AF3":
		return TrafficClassAF3, true
	case "AF4":
		return TrafficClassAF4, true
	case "NC1":
		return TrafficClassNC1, true
	default:
		return TrafficClassBE1, false
	}
}

// PortCounters is the full block of per-port packet and octet counters.
type PortCounters struct {
	InOctets         uint64
	OutOctets        uint64
	InUnicastPkts    uint64
	OutUnicastPkts   uint64
	InBroadcastPkts  uint64
	OutBroadcastPkts uint64
	InMulticastPkts  uint64
	OutMulticastPkts uint64
	InDiscards       uint64
	OutDiscards      uint64
	InUnknownProtos  uint64
	InErrors         uint64
	OutErrors        uint64
	InFcsErrors      uint64
}

// PortQosCounters is the per-queue block of egress QoS counters.
type PortQosCounters struct {
	QueueID        uint32
	OutPkts        uint64
	OutOctets      uint64
	OutDroppedPkts uint64
}

// Alarm is the state of one chassis alarm.
type Alarm struct {
	Description string
	Severity    Severity
	Status      bool
	TimeCreated uint64
}
