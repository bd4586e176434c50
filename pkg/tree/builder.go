// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package tree

import (
	"github.com/onosproject/gnmi-agent/pkg/bus"
	"github.com/onosproject/gnmi-agent/pkg/config"
	"github.com/onosproject/gnmi-agent/pkg/events"
	"github.com/onosproject/gnmi-agent/pkg/southbound"
)

// leafSpec collects everything needed to arm one leaf node.
type leafSpec struct {
	poll     bus.Handler
	onChange bus.Handler
	kinds    []events.Kind
	noTimer  bool
}

// ignoreEvents is the on-change handler of leaves that never emit events
// (static config like the interface name). They still support ON_CHANGE so
// subscribing to an enclosing subtree is not rejected.
func ignoreEvents(events.Event, bus.Stream) error {
	return nil
}

func (t *Tree) setLeaf(n *Node, spec leafSpec) {
	n.onPoll = spec.poll
	n.supportsOnPoll = spec.poll != nil
	if !spec.noTimer {
		n.onTimer = spec.poll
		n.supportsOnTimer = spec.poll != nil
	}
	if spec.onChange == nil {
		spec.onChange = ignoreEvents
	}
	n.onChange = spec.onChange
	n.supportsOnChange = true
	kinds := spec.kinds
	n.onChangeRegistration = t.registrationFor(kinds)
}

// registrationFor builds the hook attaching a record to the event lists of
// the given kinds.
func (t *Tree) registrationFor(kinds []events.Kind) func(rec *bus.Record) error {
	registry := t.registry
	return func(rec *bus.Record) error {
		for _, kind := range kinds {
			if err := registry.List(kind).Register(rec); err != nil {
				return err
			}
		}
		return nil
	}
}

// ProcessPushedConfig grows the tree to cover everything the pushed chassis
// config declares. The whole growth is one writer-lock critical section and
// is idempotent: pushing the same config twice yields the same tree.
func (t *Tree) ProcessPushedConfig(cfg *config.ChassisConfig) error {
	if cfg == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if cfg.Chassis.Name != "" {
		t.addSubtreeChassisLocked(cfg.Chassis.Name)
	}
	for i := range cfg.SingletonPorts {
		t.addSubtreeInterfaceLocked(&cfg.SingletonPorts[i])
	}
	log.Infof("Parse tree grown from pushed config: chassis %q, %d singleton ports",
		cfg.Chassis.Name, len(cfg.SingletonPorts))
	return nil
}

// AddSubtreeInterface creates the /interfaces, /lacp and /qos subtrees of
// one singleton port.
func (t *Tree) AddSubtreeInterface(port *config.SingletonPort) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.addSubtreeInterfaceLocked(port)
}

// AddSubtreeChassis creates the /components chassis alarm subtree.
func (t *Tree) AddSubtreeChassis(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.addSubtreeChassisLocked(name)
}

// AddSubtreeNode creates a plain platform component (fan tray, PSU tray,
// LED group) under /components with name-only state.
func (t *Tree) AddSubtreeNode(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	component := t.root.
		getOrAddChild("components", nil).
		getOrAddChild("component", map[string]string{"name": name})
	state := component.getOrAddChild("state", nil)
	nameNode := state.getOrAddChild("name", nil)
	namePath := nameNode.GetPath()
	componentName := name
	t.setLeaf(nameNode, leafSpec{
		poll: func(e events.Event, stream bus.Stream) error {
			return sendUpdate(stream, namePath, strVal(componentName))
		},
	})
}

// retrieve issues one typed data request against the switch driver.
func (t *Tree) retrieve(req *southbound.DataRequest) (*southbound.DataResponse, error) {
	return t.switchIface.RetrieveValue(req.NodeID, req)
}
