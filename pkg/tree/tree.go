// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package tree implements the schema-shaped parse tree the publisher matches
// subscription paths against, the builder that grows it on config pushes and
// the per-leaf handler closures.
package tree

import (
	"sync"

	"github.com/onosproject/onos-lib-go/pkg/logging"
	pb "github.com/openconfig/gnmi/proto/gnmi"

	gpath "github.com/onosproject/gnmi-agent/pkg/path"

	"github.com/onosproject/gnmi-agent/pkg/bus"
	"github.com/onosproject/gnmi-agent/pkg/southbound"
)

var log = logging.GetLogger("tree")

type portKey struct {
	nodeID uint64
	portID uint64
}

// Tree is the parse tree. Structural growth takes the writer lock; path
// lookup and handler invocation take readers.
type Tree struct {
	mu          sync.RWMutex
	root        *Node
	switchIface southbound.SwitchInterface
	registry    *bus.Registry
	portNames   map[portKey]string
}

// New creates a tree holding the interface-less schema skeleton: the
// wildcard interface node subscriptions may bind to before the first config
// push.
func New(switchIface southbound.SwitchInterface, registry *bus.Registry) *Tree {
	t := &Tree{
		root:        &Node{},
		switchIface: switchIface,
		registry:    registry,
		portNames:   make(map[portKey]string),
	}
	t.addSubtreeAllInterfaces()
	return t
}

// Root returns the root node. The root is unique and carries no keys.
func (t *Tree) Root() *Node {
	return t.root
}

// View runs fn while holding the tree reader lock. Event delivery runs
// under it so handlers never observe a partially grown tree.
func (t *Tree) View(fn func()) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	fn()
}

// FindNode resolves a path to a node, walking the tree element by element
// with wildcard tolerance. It returns nil when the path is unsupported.
func (t *Tree) FindNode(p *pb.Path) *Node {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.findNodeLocked(p)
}

func (t *Tree) findNodeLocked(p *pb.Path) *Node {
	node := t.root
	for _, elem := range p.GetElem() {
		node = node.findChild(elem)
		if node == nil {
			return nil
		}
	}
	return node
}

// PerformActionForAllNonWildcardNodes applies action to the node at suffix
// under every concrete (non-wildcard) child matching the last element of
// prefix. Children without the suffix sub-path are skipped.
func (t *Tree) PerformActionForAllNonWildcardNodes(prefix, suffix *pb.Path, action func(n *Node) error) error {
	t.mu.RLock()
	defer t.mu.RUnlock()

	parents := []*Node{t.root}
	for _, elem := range prefix.GetElem() {
		var next []*Node
		for _, parent := range parents {
			for _, child := range parent.children {
				if child.name == elem.GetName() && gpath.MatchElem(child.elem(), elem) {
					next = append(next, child)
				}
			}
		}
		parents = next
	}

	for _, node := range parents {
		if gpath.IsWildcard(node.GetPath()) {
			continue
		}
		target := node
		for _, elem := range suffix.GetElem() {
			target = target.findChild(elem)
			if target == nil {
				break
			}
		}
		if target == nil {
			continue
		}
		if err := action(target); err != nil {
			return err
		}
	}
	return nil
}

// lookupPortName maps (node, port) ids back to the configured interface
// name. Used by the wildcard interface subtree to address updates.
func (t *Tree) lookupPortName(nodeID, portID uint64) (string, bool) {
	name, ok := t.portNames[portKey{nodeID: nodeID, portID: portID}]
	return name, ok
}
