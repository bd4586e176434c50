// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onosproject/gnmi-agent/pkg/events"
	gpath "github.com/onosproject/gnmi-agent/pkg/path"
	"github.com/onosproject/gnmi-agent/pkg/southbound"
)

func TestStateNameOnPoll(t *testing.T) {
	tr, _, _ := newTestTree(t)
	stream := executeOnPoll(t, tr, "/interfaces/interface[name=interface-1]/state/name")
	updates := stream.updates()
	require.Len(t, updates, 1)
	assert.Equal(t, "interface-1", updates[0].GetVal().GetStringVal())
}

func TestStateIfindexOnPoll(t *testing.T) {
	tr, _, _ := newTestTree(t)
	stream := executeOnPoll(t, tr, "/interfaces/interface[name=interface-1]/state/ifindex")
	updates := stream.updates()
	require.Len(t, updates, 1)
	assert.Equal(t, uint64(3), updates[0].GetVal().GetUintVal())
}

func TestStateOperStatusOnPoll(t *testing.T) {
	tr, fake, _ := newTestTree(t)
	fake.Respond(southbound.FieldOperStatus, &southbound.DataResponse{OperStatus: events.PortStateUp})

	stream := executeOnPoll(t, tr, "/interfaces/interface[name=interface-1]/state/oper-status")
	updates := stream.updates()
	require.Len(t, updates, 1)
	assert.Equal(t, "UP", updates[0].GetVal().GetStringVal())

	requests := fake.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, southbound.FieldOperStatus, requests[0].Field)
	assert.Equal(t, uint64(3), requests[0].NodeID)
	assert.Equal(t, uint64(3), requests[0].PortID)
}

func TestStateOperStatusOnChange(t *testing.T) {
	tr, _, _ := newTestTree(t)
	stream := executeOnChange(t, tr,
		"/interfaces/interface[name=interface-1]/state/oper-status",
		events.NewPortOperStateChangedEvent(3, 3, events.PortStateUp))
	updates := stream.updates()
	require.Len(t, updates, 1)
	assert.Equal(t, "UP", updates[0].GetVal().GetStringVal())
}

func TestStateOperStatusOnChangeIgnoresOtherPorts(t *testing.T) {
	tr, _, _ := newTestTree(t)
	stream := executeOnChange(t, tr,
		"/interfaces/interface[name=interface-1]/state/oper-status",
		events.NewPortOperStateChangedEvent(7, 7, events.PortStateUp))
	assert.Len(t, stream.updates(), 0)
}

func TestStateAdminStatusOnPollAndChange(t *testing.T) {
	tr, fake, _ := newTestTree(t)
	fake.Respond(southbound.FieldAdminStatus, &southbound.DataResponse{AdminStatus: events.AdminStateEnabled})

	stream := executeOnPoll(t, tr, "/interfaces/interface[name=interface-1]/state/admin-status")
	updates := stream.updates()
	require.Len(t, updates, 1)
	assert.Equal(t, "UP", updates[0].GetVal().GetStringVal())

	stream = executeOnChange(t, tr,
		"/interfaces/interface[name=interface-1]/state/admin-status",
		events.NewPortAdminStateChangedEvent(3, 3, events.AdminStateDisabled))
	updates = stream.updates()
	require.Len(t, updates, 1)
	assert.Equal(t, "DOWN", updates[0].GetVal().GetStringVal())
}

func TestEthernetStateMacAddressOnPoll(t *testing.T) {
	tr, fake, _ := newTestTree(t)
	fake.Respond(southbound.FieldMacAddress, &southbound.DataResponse{MacAddress: 0x112233445566})

	stream := executeOnPoll(t, tr, "/interfaces/interface[name=interface-1]/ethernet/state/mac-address")
	updates := stream.updates()
	require.Len(t, updates, 1)
	assert.Equal(t, "11:22:33:44:55:66", updates[0].GetVal().GetStringVal())
}

func TestEthernetStateMacAddressOnChange(t *testing.T) {
	tr, _, _ := newTestTree(t)
	stream := executeOnChange(t, tr,
		"/interfaces/interface[name=interface-1]/ethernet/state/mac-address",
		events.NewPortMacAddressChangedEvent(3, 3, 0x112233445566))
	updates := stream.updates()
	require.Len(t, updates, 1)
	assert.Equal(t, "11:22:33:44:55:66", updates[0].GetVal().GetStringVal())
}

func TestEthernetStatePortSpeedOnPoll(t *testing.T) {
	tr, fake, _ := newTestTree(t)
	fake.Respond(southbound.FieldPortSpeed, &southbound.DataResponse{SpeedBps: 25000000000})

	stream := executeOnPoll(t, tr, "/interfaces/interface[name=interface-1]/ethernet/state/port-speed")
	updates := stream.updates()
	require.Len(t, updates, 1)
	assert.Equal(t, "SPEED_25GB", updates[0].GetVal().GetStringVal())
}

func TestEthernetStatePortSpeedOnChange(t *testing.T) {
	tr, _, _ := newTestTree(t)
	stream := executeOnChange(t, tr,
		"/interfaces/interface[name=interface-1]/ethernet/state/port-speed",
		events.NewPortSpeedBpsChangedEvent(3, 3, 25000000000))
	updates := stream.updates()
	require.Len(t, updates, 1)
	assert.Equal(t, "SPEED_25GB", updates[0].GetVal().GetStringVal())
}

func TestEthernetConfigPortSpeedOnPoll(t *testing.T) {
	tr, _, _ := newTestTree(t)
	// The configured speed is answered without a switch round trip.
	stream := executeOnPoll(t, tr, "/interfaces/interface[name=interface-1]/ethernet/config/port-speed")
	updates := stream.updates()
	require.Len(t, updates, 1)
	assert.Equal(t, "SPEED_25GB", updates[0].GetVal().GetStringVal())
}

func TestEthernetStateNegotiatedPortSpeedOnChange(t *testing.T) {
	tr, _, _ := newTestTree(t)
	stream := executeOnChange(t, tr,
		"/interfaces/interface[name=interface-1]/ethernet/state/negotiated-port-speed",
		events.NewPortNegotiatedSpeedBpsChangedEvent(3, 3, 40000000000))
	updates := stream.updates()
	require.Len(t, updates, 1)
	assert.Equal(t, "SPEED_40GB", updates[0].GetVal().GetStringVal())
}

func TestCountersInOctetsOnPoll(t *testing.T) {
	tr, fake, _ := newTestTree(t)
	fake.Respond(southbound.FieldPortCounters, &southbound.DataResponse{
		PortCounters: &events.PortCounters{InOctets: 1001},
	})

	stream := executeOnPoll(t, tr, "/interfaces/interface[name=interface-1]/state/counters/in-octets")
	updates := stream.updates()
	require.Len(t, updates, 1)
	assert.Equal(t, uint64(1001), updates[0].GetVal().GetUintVal())
}

func TestCountersInOctetsOnChange(t *testing.T) {
	tr, _, _ := newTestTree(t)
	stream := executeOnChange(t, tr,
		"/interfaces/interface[name=interface-1]/state/counters/in-octets",
		events.NewPortCountersChangedEvent(3, 3, events.PortCounters{InOctets: 1001}))
	updates := stream.updates()
	require.Len(t, updates, 1)
	assert.Equal(t, uint64(1001), updates[0].GetVal().GetUintVal())
}

func TestCountersGroupOnPollEmitsEveryLeaf(t *testing.T) {
	tr, fake, _ := newTestTree(t)
	fake.Respond(southbound.FieldPortCounters, &southbound.DataResponse{
		PortCounters: &events.PortCounters{InOctets: 1, OutOctets: 2, InErrors: 3},
	})

	stream := executeOnPoll(t, tr, "/interfaces/interface[name=interface-1]/state/counters")
	updates := stream.updates()
	require.Len(t, updates, len(counterLeaves))
	// One retrieve answers the whole block.
	assert.Len(t, fake.Requests(), 1)

	byLeaf := map[string]uint64{}
	for _, u := range updates {
		elems := u.GetPath().GetElem()
		byLeaf[elems[len(elems)-1].GetName()] = u.GetVal().GetUintVal()
	}
	assert.Equal(t, uint64(1), byLeaf["in-octets"])
	assert.Equal(t, uint64(2), byLeaf["out-octets"])
	assert.Equal(t, uint64(3), byLeaf["in-errors"])
}

func TestCountersGroupOnChangeEmitsEveryLeaf(t *testing.T) {
	tr, _, _ := newTestTree(t)
	stream := executeOnChange(t, tr,
		"/interfaces/interface[name=interface-1]/state/counters",
		events.NewPortCountersChangedEvent(3, 3, events.PortCounters{OutErrors: 17}))
	updates := stream.updates()
	require.Len(t, updates, len(counterLeaves))
}

func TestLacpSystemIdMacOnPollAndChange(t *testing.T) {
	tr, fake, _ := newTestTree(t)
	fake.Respond(southbound.FieldLacpSystemIDMac, &southbound.DataResponse{LacpSystemIDMac: 0x112233445566})

	stream := executeOnPoll(t, tr, "/lacp/interfaces/interface[name=interface-1]/state/system-id-mac")
	updates := stream.updates()
	require.Len(t, updates, 1)
	assert.Equal(t, "11:22:33:44:55:66", updates[0].GetVal().GetStringVal())

	stream = executeOnChange(t, tr,
		"/lacp/interfaces/interface[name=interface-1]/state/system-id-mac",
		events.NewPortLacpSystemIDMacChangedEvent(3, 3, 0xaabbccddeeff))
	updates = stream.updates()
	require.Len(t, updates, 1)
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", updates[0].GetVal().GetStringVal())
}

func TestLacpSystemPriorityOnChange(t *testing.T) {
	tr, _, _ := newTestTree(t)
	stream := executeOnChange(t, tr,
		"/lacp/interfaces/interface[name=interface-1]/state/system-priority",
		events.NewPortLacpSystemPriorityChangedEvent(3, 3, 10))
	updates := stream.updates()
	require.Len(t, updates, 1)
	assert.Equal(t, uint64(10), updates[0].GetVal().GetUintVal())
}

func TestWildcardSubtreeProjectsEvents(t *testing.T) {
	tr, _, _ := newTestTree(t)
	stream := executeOnChange(t, tr,
		"/interfaces/interface",
		events.NewPortOperStateChangedEvent(3, 3, events.PortStateUp))
	updates := stream.updates()
	require.Len(t, updates, 1)
	assert.True(t, gpath.Equal(
		mustPath(t, "/interfaces/interface[name=interface-1]/state/oper-status"),
		updates[0].GetPath()))
	assert.Equal(t, "UP", updates[0].GetVal().GetStringVal())
}

func TestWildcardSubtreeDropsUnknownPorts(t *testing.T) {
	tr, _, _ := newTestTree(t)
	stream := executeOnChange(t, tr,
		"/interfaces/interface",
		events.NewPortOperStateChangedEvent(9, 9, events.PortStateUp))
	assert.Len(t, stream.updates(), 0)
}
