// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onosproject/gnmi-agent/pkg/config"
	"github.com/onosproject/gnmi-agent/pkg/events"
	"github.com/onosproject/gnmi-agent/pkg/southbound"
)

const queueBase = "/qos/interfaces/interface[name=interface-1]/output/queues/queue[name=BE1]/state"

func TestQueueStateNameOnPoll(t *testing.T) {
	tr, _, _ := newTestTree(t)
	stream := executeOnPoll(t, tr, queueBase+"/name")
	updates := stream.updates()
	require.Len(t, updates, 1)
	assert.Equal(t, "BE1", updates[0].GetVal().GetStringVal())
}

func TestQueueStateIdOnPoll(t *testing.T) {
	tr, fake, _ := newTestTree(t)
	fake.Respond(southbound.FieldPortQosCounters, &southbound.DataResponse{
		QosCounters: &events.PortQosCounters{QueueID: 0},
	})
	stream := executeOnPoll(t, tr, queueBase+"/id")
	updates := stream.updates()
	require.Len(t, updates, 1)
	assert.Equal(t, uint64(0), updates[0].GetVal().GetUintVal())

	requests := fake.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, uint32(0), requests[0].QueueID)
}

func TestQueueTransmitPktsOnChange(t *testing.T) {
	tr, _, _ := newTestTree(t)
	stream := executeOnChange(t, tr, queueBase+"/transmit-pkts",
		events.NewPortQosCountersChangedEvent(3, 3, events.PortQosCounters{QueueID: 0, OutPkts: 42}))
	updates := stream.updates()
	require.Len(t, updates, 1)
	assert.Equal(t, uint64(42), updates[0].GetVal().GetUintVal())
}

func TestQueueOnChangeIgnoresOtherQueues(t *testing.T) {
	tr, _, _ := newTestTree(t)
	stream := executeOnChange(t, tr, queueBase+"/transmit-pkts",
		events.NewPortQosCountersChangedEvent(3, 3, events.PortQosCounters{QueueID: 5, OutPkts: 42}))
	assert.Len(t, stream.updates(), 0)
}

func TestQueueDroppedPktsOnPoll(t *testing.T) {
	tr, fake, _ := newTestTree(t)
	fake.Respond(southbound.FieldPortQosCounters, &southbound.DataResponse{
		QosCounters: &events.PortQosCounters{QueueID: 0, OutDroppedPkts: 7},
	})
	stream := executeOnPoll(t, tr, queueBase+"/dropped-pkts")
	updates := stream.updates()
	require.Len(t, updates, 1)
	assert.Equal(t, uint64(7), updates[0].GetVal().GetUintVal())
}

func TestUnknownTrafficClassIsSkipped(t *testing.T) {
	tr, _, _ := newTestTree(t)
	tr.AddSubtreeInterface(&config.SingletonPort{
		Name:   "interface-9",
		NodeID: 9,
		PortID: 9,
		Queues: []config.QueueConfig{{ID: 9, Purpose: "XX9"}},
	})
	assert.Nil(t, tr.FindNode(mustPath(t, "/qos/interfaces/interface[name=interface-9]/output/queues/queue[name=XX9]/state/name")))
	// The interface itself is still created.
	assert.NotNil(t, tr.FindNode(mustPath(t, "/interfaces/interface[name=interface-9]/state/name")))
}
