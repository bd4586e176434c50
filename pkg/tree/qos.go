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

// addSubtreeQueueLocked creates the per-queue state subtree
// /qos/interfaces/interface[name]/output/queues/queue[name]/state. The queue
// is keyed by its symbolic traffic-class name; the switch is addressed with
// the numeric queue id.
func (t *Tree) addSubtreeQueueLocked(ifaceName string, nodeID, portID uint64, q config.QueueConfig) {
	tc, ok := events.TrafficClassFromString(q.Purpose)
	if !ok {
		log.Warnf("Unknown traffic class %q for queue %d on interface %s, skipping", q.Purpose, q.ID, ifaceName)
		return
	}
	queueName := tc.String()
	queueID := q.ID

	state := t.root.
		getOrAddChild("qos", nil).
		getOrAddChild("interfaces", nil).
		getOrAddChild("interface", map[string]string{"name": ifaceName}).
		getOrAddChild("output", nil).
		getOrAddChild("queues", nil).
		getOrAddChild("queue", map[string]string{"name": queueName}).
		getOrAddChild("state", nil)

	req := southbound.DataRequest{
		Field:   southbound.FieldPortQosCounters,
		NodeID:  nodeID,
		PortID:  portID,
		QueueID: queueID,
	}

	nameNode := state.getOrAddChild("name", nil)
	namePath := nameNode.GetPath()
	t.setLeaf(nameNode, leafSpec{
		poll: func(e events.Event, stream bus.Stream) error {
			return sendUpdate(stream, namePath, strVal(queueName))
		},
	})

	qosLeaves := []struct {
		name string
		get  func(*events.PortQosCounters) uint64
	}{
		{"id", func(c *events.PortQosCounters) uint64 { return uint64(c.QueueID) }},
		{"transmit-pkts", func(c *events.PortQosCounters) uint64 { return c.OutPkts }},
		{"transmit-octets", func(c *events.PortQosCounters) uint64 { return c.OutOctets }},
		{"dropped-pkts", func(c *events.PortQosCounters) uint64 { return c.OutDroppedPkts }},
	}
	for _, leaf := range qosLeaves {
		node := state.getOrAddChild(leaf.name, nil)
		leafPath := node.GetPath()
		get := leaf.get
		t.setLeaf(node, leafSpec{
			poll: t.pollValue(req, leafPath, func(resp *southbound.DataResponse) *pb.TypedValue {
				return uintVal(get(resp.QosCounters))
			}),
			onChange: func(e events.Event, stream bus.Stream) error {
				ev, ok := e.(*events.PortQosCountersChangedEvent)
				if !ok || ev.NodeID != nodeID || ev.PortID != portID || ev.Counters.QueueID != queueID {
					return nil
				}
				return sendUpdate(stream, leafPath, uintVal(get(&ev.Counters)))
			},
			kinds: []events.Kind{events.KindPortQosCountersChanged},
		})
	}
}
