// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package events

// AlarmEvent is the base of chassis alarm events. A raised alarm is always
// reported with status true and CRITICAL severity; clearing is reported by
// the switch re-sending the alarm state.
type AlarmEvent struct {
	EventHappened
	Alarm Alarm
}

func alarmEvent(kind Kind, timeCreated uint64, description string) AlarmEvent {
	return AlarmEvent{
		EventHappened: happened(kind),
		Alarm: Alarm{
			Description: description,
			Severity:    SeverityCritical,
			Status:      true,
			TimeCreated: timeCreated,
		},
	}
}

// MemoryErrorAlarmEvent reports a memory error alarm on the chassis.
type MemoryErrorAlarmEvent struct {
	AlarmEvent
}

// NewMemoryErrorAlarmEvent creates a MemoryErrorAlarmEvent.
func NewMemoryErrorAlarmEvent(timeCreated uint64, description string) *MemoryErrorAlarmEvent {
	return &MemoryErrorAlarmEvent{AlarmEvent: alarmEvent(KindMemoryErrorAlarm, timeCreated, description)}
}

// FlowProgrammingExceptionAlarmEvent reports a flow programming exception
// alarm on the chassis.
type FlowProgrammingExceptionAlarmEvent struct {
	AlarmEvent
}

// NewFlowProgrammingExceptionAlarmEvent creates a
// FlowProgrammingExceptionAlarmEvent.
func NewFlowProgrammingExceptionAlarmEvent(timeCreated uint64, description string) *FlowProgrammingExceptionAlarmEvent {
	return &FlowProgrammingExceptionAlarmEvent{AlarmEvent: alarmEvent(KindFlowProgrammingExceptionAlarm, timeCreated, description)}
}
