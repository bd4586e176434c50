// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onosproject/gnmi-agent/pkg/events"
	"github.com/onosproject/gnmi-agent/pkg/southbound"
)

func respondAlarm(fake *southbound.FakeSwitch, field southbound.Field) {
	fake.Respond(field, &southbound.DataResponse{
		Alarm: &events.Alarm{
			Description: "alarm",
			Severity:    events.SeverityCritical,
			Status:      true,
			TimeCreated: 12345,
		},
	})
}

func TestAlarmLeavesOnPoll(t *testing.T) {
	tr, fake, _ := newTestTree(t)
	respondAlarm(fake, southbound.FieldMemoryErrorAlarm)

	base := "/components/component[name=chassis-1]/chassis/alarms/memory-error"

	stream := executeOnPoll(t, tr, base+"/status")
	require.Len(t, stream.updates(), 1)
	assert.Equal(t, true, stream.updates()[0].GetVal().GetBoolVal())

	stream = executeOnPoll(t, tr, base+"/info")
	require.Len(t, stream.updates(), 1)
	assert.Equal(t, "alarm", stream.updates()[0].GetVal().GetStringVal())

	stream = executeOnPoll(t, tr, base+"/severity")
	require.Len(t, stream.updates(), 1)
	assert.Equal(t, "CRITICAL", stream.updates()[0].GetVal().GetStringVal())

	stream = executeOnPoll(t, tr, base+"/time-created")
	require.Len(t, stream.updates(), 1)
	assert.Equal(t, uint64(12345), stream.updates()[0].GetVal().GetUintVal())
}

func TestAlarmGroupOnPollReadsInFixedOrder(t *testing.T) {
	tr, fake, _ := newTestTree(t)
	respondAlarm(fake, southbound.FieldMemoryErrorAlarm)

	stream := executeOnPoll(t, tr, "/components/component[name=chassis-1]/chassis/alarms/memory-error")
	updates := stream.updates()
	require.Len(t, updates, 4)
	// Description, severity, status, time-created, one retrieve each.
	assert.Equal(t, "alarm", updates[0].GetVal().GetStringVal())
	assert.Equal(t, "CRITICAL", updates[1].GetVal().GetStringVal())
	assert.Equal(t, true, updates[2].GetVal().GetBoolVal())
	assert.Equal(t, uint64(12345), updates[3].GetVal().GetUintVal())
	assert.Len(t, fake.Requests(), 4)
}

func TestAlarmGroupOnChange(t *testing.T) {
	tr, _, _ := newTestTree(t)
	stream := executeOnChange(t, tr,
		"/components/component[name=chassis-1]/chassis/alarms/flow-programming-exception",
		events.NewFlowProgrammingExceptionAlarmEvent(12345, "alarm"))
	updates := stream.updates()
	require.Len(t, updates, 4)
	assert.Equal(t, "alarm", updates[0].GetVal().GetStringVal())
	assert.Equal(t, "CRITICAL", updates[1].GetVal().GetStringVal())
	assert.Equal(t, true, updates[2].GetVal().GetBoolVal())
	assert.Equal(t, uint64(12345), updates[3].GetVal().GetUintVal())
}

func TestAlarmLeafOnChangeIgnoresOtherAlarm(t *testing.T) {
	tr, _, _ := newTestTree(t)
	stream := executeOnChange(t, tr,
		"/components/component[name=chassis-1]/chassis/alarms/memory-error/status",
		events.NewFlowProgrammingExceptionAlarmEvent(12345, "alarm"))
	assert.Len(t, stream.updates(), 0)
}

func TestAlarmLeafOnChange(t *testing.T) {
	tr, _, _ := newTestTree(t)
	stream := executeOnChange(t, tr,
		"/components/component[name=chassis-1]/chassis/alarms/memory-error/time-created",
		events.NewMemoryErrorAlarmEvent(12345, "alarm"))
	updates := stream.updates()
	require.Len(t, updates, 1)
	assert.Equal(t, uint64(12345), updates[0].GetVal().GetUintVal())
}
