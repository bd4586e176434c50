// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package phal

import (
	"fmt"
	"sync"
	"time"

	"github.com/onosproject/onos-lib-go/pkg/logging"
)

var log = logging.GetLogger("phal")

// subscribeDepth bounds the snapshot channel between a poller and the
// subscribe stream writer.
const subscribeDepth = 128

type attrNode struct {
	children map[string]*attrNode
	repeated map[string][]*attrNode
	value    interface{}
	isLeaf   bool
}

func newAttrNode() *attrNode {
	return &attrNode{
		children: make(map[string]*attrNode),
		repeated: make(map[string][]*attrNode),
	}
}

// Database is the attribute store. Writers take the writer lock; Get and
// the subscription pollers read concurrently.
type Database struct {
	mu   sync.RWMutex
	root *attrNode
}

// NewDatabase creates an empty attribute database.
func NewDatabase() *Database {
	return &Database{root: newAttrNode()}
}

// Set writes one attribute value. Intermediate groups are created on the
// way; indexed entries extend their repeated group as needed. Wildcard and
// terminal-group entries cannot be written to.
func (d *Database) Set(path Path, value interface{}) error {
	if len(path) == 0 {
		return fmt.Errorf("no path")
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	node := d.root
	for i, entry := range path {
		if entry.All || entry.TerminalGroup {
			return fmt.Errorf("path %s does not address a single attribute", path)
		}
		last := i == len(path)-1
		if entry.Indexed {
			group := node.repeated[entry.Name]
			for len(group) <= entry.Index {
				group = append(group, newAttrNode())
			}
			node.repeated[entry.Name] = group
			node = group[entry.Index]
		} else {
			next, ok := node.children[entry.Name]
			if !ok {
				next = newAttrNode()
				node.children[entry.Name] = next
			}
			node = next
		}
		if last {
			node.value = value
			node.isLeaf = true
		}
	}
	return nil
}

// Get returns a snapshot of the subtree the path addresses, rendered as
// nested maps; repeated groups render as slices. A missing path yields an
// entry-not-found error.
func (d *Database) Get(path Path) (map[string]interface{}, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("no path")
	}
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make(map[string]interface{})
	if err := collect(d.root, path, out); err != nil {
		return nil, err
	}
	return out, nil
}

// collect walks one path step and fills dst with what it finds.
func collect(node *attrNode, path Path, dst map[string]interface{}) error {
	entry := path[0]
	rest := path[1:]

	switch {
	case entry.All:
		group, ok := node.repeated[entry.Name]
		if !ok {
			return fmt.Errorf("entry %s not found", entry.Name)
		}
		slice := make([]interface{}, len(group))
		for i, member := range group {
			sub := make(map[string]interface{})
			if len(rest) == 0 {
				slice[i] = snapshot(member)
				continue
			}
			if err := collect(member, rest, sub); err != nil {
				return err
			}
			slice[i] = sub
		}
		dst[entry.Name] = slice
		return nil
	case entry.Indexed:
		group, ok := node.repeated[entry.Name]
		if !ok || entry.Index >= len(group) {
			return fmt.Errorf("entry %s[%d] not found", entry.Name, entry.Index)
		}
		member := group[entry.Index]
		if len(rest) == 0 {
			dst[entry.Name] = snapshot(member)
			return nil
		}
		sub := make(map[string]interface{})
		if err := collect(member, rest, sub); err != nil {
			return err
		}
		dst[entry.Name] = sub
		return nil
	default:
		child, ok := node.children[entry.Name]
		if !ok {
			return fmt.Errorf("entry %s not found", entry.Name)
		}
		if len(rest) == 0 || entry.TerminalGroup {
			dst[entry.Name] = snapshot(child)
			return nil
		}
		sub := make(map[string]interface{})
		if err := collect(child, rest, sub); err != nil {
			return err
		}
		dst[entry.Name] = sub
		return nil
	}
}

// snapshot renders a whole subtree.
func snapshot(node *attrNode) interface{} {
	if node.isLeaf {
		return node.value
	}
	out := make(map[string]interface{})
	for name, child := range node.children {
		out[name] = snapshot(child)
	}
	for name, group := range node.repeated {
		slice := make([]interface{}, len(group))
		for i, member := range group {
			slice[i] = snapshot(member)
		}
		out[name] = slice
	}
	return out
}

// Subscribe polls the subtree at the given interval and delivers each
// snapshot on the returned channel until stop is closed. The channel is
// closed when the poller exits.
func (d *Database) Subscribe(path Path, interval time.Duration, stop <-chan struct{}) (<-chan map[string]interface{}, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("no path")
	}
	if interval <= 0 {
		return nil, fmt.Errorf("polling interval must be positive, got %v", interval)
	}
	ch := make(chan map[string]interface{}, subscribeDepth)
	go func() {
		defer close(ch)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				snap, err := d.Get(path)
				if err != nil {
					log.Errorf("Subscription poll of %s failed: %v", path, err)
					continue
				}
				select {
				case ch <- snap:
				case <-stop:
					return
				}
			}
		}
	}()
	return ch, nil
}
