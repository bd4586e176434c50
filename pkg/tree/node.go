// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package tree

import (
	pb "github.com/openconfig/gnmi/proto/gnmi"

	"github.com/onosproject/gnmi-agent/pkg/bus"
	"github.com/onosproject/gnmi-agent/pkg/events"
	gpath "github.com/onosproject/gnmi-agent/pkg/path"
)

// Node is one element of the parse tree. Structure is immutable once a node
// has been linked under its parent; only handlers and children are added
// later, always under the tree writer lock.
type Node struct {
	name     string
	keys     map[string]string
	parent   *Node
	children []*Node

	onChange bus.Handler
	onPoll   bus.Handler
	onTimer  bus.Handler

	supportsOnChange bool
	supportsOnPoll   bool
	supportsOnTimer  bool

	targetDefinedMode    func(sub *pb.Subscription) error
	onChangeRegistration func(rec *bus.Record) error
}

// Name returns the node's element name.
func (n *Node) Name() string {
	return n.name
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.children) == 0
}

// GetPath reconstructs the node's own path, preserving wildcard keys.
func (n *Node) GetPath() *pb.Path {
	var elems []*pb.PathElem
	for node := n; node != nil && node.parent != nil; node = node.parent {
		elem := &pb.PathElem{Name: node.name}
		if len(node.keys) > 0 {
			elem.Key = make(map[string]string, len(node.keys))
			for k, v := range node.keys {
				elem.Key[k] = v
			}
		}
		elems = append([]*pb.PathElem{elem}, elems...)
	}
	return &pb.Path{Elem: elems}
}

func (n *Node) String() string {
	return gpath.String(n.GetPath())
}

// elem renders the node's own name and keys as a path element.
func (n *Node) elem() *pb.PathElem {
	e := &pb.PathElem{Name: n.name}
	if len(n.keys) > 0 {
		e.Key = n.keys
	}
	return e
}

// getOrAddChild returns the child with exactly this name and key set,
// creating it when absent. Name plus key set is unique among siblings.
func (n *Node) getOrAddChild(name string, keys map[string]string) *Node {
	want := &pb.PathElem{Name: name, Key: keys}
	for _, child := range n.children {
		if gpath.EqualElem(child.elem(), want) {
			return child
		}
	}
	child := &Node{name: name, keys: keys, parent: n}
	n.children = append(n.children, child)
	return child
}

// findChild resolves one path element against the node's children. An exact
// structural match wins; otherwise wildcard-tolerant matching applies and
// must be unambiguous. Among several tolerant matches a single wildcard
// child is preferred (a keyless element addresses the class node); several
// concrete matches are a miss.
func (n *Node) findChild(elem *pb.PathElem) *Node {
	for _, child := range n.children {
		if gpath.EqualElem(child.elem(), elem) {
			return child
		}
	}
	var matches []*Node
	for _, child := range n.children {
		if gpath.MatchElem(child.elem(), elem) {
			matches = append(matches, child)
		}
	}
	if len(matches) == 1 {
		return matches[0]
	}
	var wildcard *Node
	for _, m := range matches {
		if gpath.IsWildcardElem(m.elem()) {
			if wildcard != nil {
				return nil
			}
			wildcard = m
		}
	}
	return wildcard
}

// AllSubtreeLeavesSupportOnChange reports whether every leaf under the node
// supports ON_CHANGE subscriptions.
func (n *Node) AllSubtreeLeavesSupportOnChange() bool {
	if n.IsLeaf() {
		return n.supportsOnChange
	}
	for _, child := range n.children {
		if !child.AllSubtreeLeavesSupportOnChange() {
			return false
		}
	}
	return true
}

// AllSubtreeLeavesSupportOnPoll reports whether every leaf under the node
// supports POLL subscriptions.
func (n *Node) AllSubtreeLeavesSupportOnPoll() bool {
	if n.IsLeaf() {
		return n.supportsOnPoll
	}
	for _, child := range n.children {
		if !child.AllSubtreeLeavesSupportOnPoll() {
			return false
		}
	}
	return true
}

// AllSubtreeLeavesSupportOnTimer reports whether every leaf under the node
// supports SAMPLE subscriptions.
func (n *Node) AllSubtreeLeavesSupportOnTimer() bool {
	if n.IsLeaf() {
		return n.supportsOnTimer
	}
	for _, child := range n.children {
		if !child.AllSubtreeLeavesSupportOnTimer() {
			return false
		}
	}
	return true
}

// GetOnChangeHandler returns the handler processing switch events for this
// subtree. Interior nodes without an explicit handler fan the event out to
// their children; each leaf handler filters by event kind and ids.
func (n *Node) GetOnChangeHandler() bus.Handler {
	if n.onChange != nil {
		return n.onChange
	}
	return n.compositeHandler((*Node).GetOnChangeHandler)
}

// GetOnPollHandler returns the handler answering a poll for this subtree.
// Interior nodes without an explicit handler poll their children in order.
func (n *Node) GetOnPollHandler() bus.Handler {
	if n.onPoll != nil {
		return n.onPoll
	}
	return n.compositeHandler((*Node).GetOnPollHandler)
}

// GetOnTimerHandler returns the handler run on a sample timer tick.
func (n *Node) GetOnTimerHandler() bus.Handler {
	if n.onTimer != nil {
		return n.onTimer
	}
	return n.compositeHandler((*Node).GetOnTimerHandler)
}

func (n *Node) compositeHandler(get func(*Node) bus.Handler) bus.Handler {
	children := n.children
	return func(e events.Event, stream bus.Stream) error {
		for _, child := range children {
			if err := get(child)(e, stream); err != nil {
				return err
			}
		}
		return nil
	}
}

// DoOnChangeRegistration attaches the record to every event list the
// subtree emits events on. The per-list idempotence of Register keeps the
// count at exactly one entry per list.
func (n *Node) DoOnChangeRegistration(rec *bus.Record) error {
	if n.onChangeRegistration != nil {
		return n.onChangeRegistration(rec)
	}
	for _, child := range n.children {
		if err := child.DoOnChangeRegistration(rec); err != nil {
			return err
		}
	}
	return nil
}

// ApplyTargetDefinedModeToSubscription rewrites an under-specified
// TARGET_DEFINED subscription into the mode this subtree prefers. The
// default leaves the subscription untouched (it is treated as ON_CHANGE);
// leaves may override, e.g. counters turn into SAMPLE at 10s.
func (n *Node) ApplyTargetDefinedModeToSubscription(sub *pb.Subscription) error {
	if n.targetDefinedMode != nil {
		return n.targetDefinedMode(sub)
	}
	return nil
}
