// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package events defines the typed events the switch driver emits and the
// control events (timer tick, poll request, config push) the publisher
// injects into the same distribution machinery.
package events

import (
	"time"
)

// Kind is an enumeration of the kind of events that can occur.
type Kind uint16

// Values of the Kind enumeration.
const (
	KindOperStateChanged Kind = iota
	KindAdminStateChanged
	KindPortSpeedChanged
	KindNegotiatedSpeedChanged
	KindMacAddressChanged
	KindLacpSystemPriorityChanged
	KindLacpSystemIDMacChanged
	KindPortCountersChanged
	KindPortQosCountersChanged
	KindMemoryErrorAlarm
	KindFlowProgrammingExceptionAlarm
	KindConfigPushed
	KindTimerTick
	KindPollRequest
)

func (k Kind) String() string {
	return [...]string{
		"OperStateChanged",
		"AdminStateChanged",
		"PortSpeedChanged",
		"NegotiatedSpeedChanged",
		"MacAddressChanged",
		"LacpSystemPriorityChanged",
		"LacpSystemIDMacChanged",
		"PortCountersChanged",
		"PortQosCountersChanged",
		"MemoryErrorAlarm",
		"FlowProgrammingExceptionAlarm",
		"ConfigPushed",
		"TimerTick",
		"PollRequest",
	}[k]
}

// Event an interface which defines the Event methods
type Event interface {
	GetKind() Kind
	GetTime() time.Time
}

// EventHappened is a general purpose base type of event.
type EventHappened struct {
	Etype Kind
	Time  time.Time
}

// GetKind returns the kind of an Event.
func (eh *EventHappened) GetKind() Kind {
	return eh.Etype
}

// GetTime returns the time when the event occurred.
func (eh *EventHappened) GetTime() time.Time {
	return eh.Time
}

func happened(kind Kind) EventHappened {
	return EventHappened{Etype: kind, Time: time.Now()}
}

// TimerEvent is delivered to SAMPLE subscriptions by the timer daemon.
type TimerEvent struct {
	EventHappened
}

// NewTimerEvent creates a TimerEvent stamped with the current time.
func NewTimerEvent() *TimerEvent {
	return &TimerEvent{EventHappened: happened(KindTimerTick)}
}

// PollEvent is delivered to POLL subscriptions when the client sends a poll
// request.
type PollEvent struct {
	EventHappened
}

// NewPollEvent creates a PollEvent stamped with the current time.
func NewPollEvent() *PollEvent {
	return &PollEvent{EventHappened: happened(KindPollRequest)}
}
