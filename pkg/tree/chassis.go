// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package tree

import (
	pb "github.com/openconfig/gnmi/proto/gnmi"

	"github.com/onosproject/gnmi-agent/pkg/bus"
	"github.com/onosproject/gnmi-agent/pkg/events"
	"github.com/onosproject/gnmi-agent/pkg/southbound"
)

func (t *Tree) addSubtreeChassisLocked(name string) {
	alarms := t.root.
		getOrAddChild("components", nil).
		getOrAddChild("component", map[string]string{"name": name}).
		getOrAddChild("chassis", nil).
		getOrAddChild("alarms", nil)

	t.addAlarmLocked(alarms, "memory-error",
		southbound.FieldMemoryErrorAlarm,
		events.KindMemoryErrorAlarm,
		func(e events.Event) (*events.Alarm, bool) {
			ev, ok := e.(*events.MemoryErrorAlarmEvent)
			if !ok {
				return nil, false
			}
			return &ev.Alarm, true
		})
	t.addAlarmLocked(alarms, "flow-programming-exception",
		southbound.FieldFlowProgrammingExceptionAlarm,
		events.KindFlowProgrammingExceptionAlarm,
		func(e events.Event) (*events.Alarm, bool) {
			ev, ok := e.(*events.FlowProgrammingExceptionAlarmEvent)
			if !ok {
				return nil, false
			}
			return &ev.Alarm, true
		})
}

// addAlarmLocked creates one alarm subtree. Polling the alarm node itself
// reads description, severity, status and time-created in that fixed order
// and writes one update per field.
func (t *Tree) addAlarmLocked(alarms *Node, name string, field southbound.Field, kind events.Kind, match func(events.Event) (*events.Alarm, bool)) {
	alarm := alarms.getOrAddChild(name, nil)
	req := southbound.DataRequest{Field: field}

	alarmLeaves := []struct {
		name   string
		render func(*events.Alarm) *pb.TypedValue
	}{
		{"info", func(a *events.Alarm) *pb.TypedValue { return strVal(a.Description) }},
		{"severity", func(a *events.Alarm) *pb.TypedValue { return strVal(a.Severity.String()) }},
		{"status", func(a *events.Alarm) *pb.TypedValue { return boolVal(a.Status) }},
		{"time-created", func(a *events.Alarm) *pb.TypedValue { return uintVal(a.TimeCreated) }},
	}

	paths := make([]*pb.Path, len(alarmLeaves))
	for i, leaf := range alarmLeaves {
		node := alarm.getOrAddChild(leaf.name, nil)
		leafPath := node.GetPath()
		paths[i] = leafPath
		render := leaf.render
		t.setLeaf(node, leafSpec{
			poll: t.pollValue(req, leafPath, func(resp *southbound.DataResponse) *pb.TypedValue {
				return render(resp.Alarm)
			}),
			onChange: func(e events.Event, stream bus.Stream) error {
				a, ok := match(e)
				if !ok {
					return nil
				}
				return sendUpdate(stream, leafPath, render(a))
			},
			kinds: []events.Kind{kind},
		})
	}

	alarm.onPoll = func(e events.Event, stream bus.Stream) error {
		for i, leaf := range alarmLeaves {
			resp, err := t.retrieve(&req)
			if err != nil {
				return err
			}
			if err := sendUpdate(stream, paths[i], leaf.render(resp.Alarm)); err != nil {
				return err
			}
		}
		return nil
	}
	alarm.onTimer = alarm.onPoll
	alarm.onChange = func(e events.Event, stream bus.Stream) error {
		a, ok := match(e)
		if !ok {
			return nil
		}
		for i, leaf := range alarmLeaves {
			if err := sendUpdate(stream, paths[i], leaf.render(a)); err != nil {
				return err
			}
		}
		return nil
	}
}
