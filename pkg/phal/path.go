// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package phal implements the attribute database of the platform hardware
// abstraction layer and its service surface: a path-indexed Get/Set/Subscribe
// over a tree that is addressed independently of the gNMI parse tree.
package phal

import (
	"fmt"
	"strconv"
	"strings"

	pb "github.com/openconfig/gnmi/proto/gnmi"
)

// PathEntry addresses one step into the attribute tree. Repeated groups are
// addressed either by a concrete index or by all indices at once; a terminal
// group entry selects the whole remaining subtree.
type PathEntry struct {
	Name          string
	Index         int
	Indexed       bool
	All           bool
	TerminalGroup bool
}

// Path is an ordered sequence of path entries.
type Path []PathEntry

func (p Path) String() string {
	var b strings.Builder
	for _, entry := range p {
		b.WriteByte('/')
		b.WriteString(entry.Name)
		switch {
		case entry.All:
			b.WriteString("[*]")
		case entry.Indexed:
			fmt.Fprintf(&b, "[%d]", entry.Index)
		}
		if entry.TerminalGroup {
			b.WriteString("/...")
		}
	}
	return b.String()
}

// ParsePath maps a gNMI path onto an attribute database path: an "index"
// key addresses one element of a repeated group ("*" addresses all of
// them), and a trailing "..." element marks the preceding entry as a
// terminal group.
func ParsePath(p *pb.Path) (Path, error) {
	if len(p.GetElem()) == 0 {
		return nil, fmt.Errorf("no path")
	}
	var out Path
	for i, elem := range p.GetElem() {
		if elem.GetName() == "..." {
			if len(out) == 0 {
				return nil, fmt.Errorf("path cannot start with a terminal group")
			}
			if i != len(p.GetElem())-1 {
				return nil, fmt.Errorf("terminal group must be the last path element")
			}
			out[len(out)-1].TerminalGroup = true
			break
		}
		entry := PathEntry{Name: elem.GetName()}
		if idx, ok := elem.GetKey()["index"]; ok {
			if idx == "*" {
				entry.All = true
			} else {
				n, err := strconv.Atoi(idx)
				if err != nil || n < 0 {
					return nil, fmt.Errorf("invalid index %q in path element %s", idx, elem.GetName())
				}
				entry.Index = n
				entry.Indexed = true
			}
		}
		out = append(out, entry)
	}
	return out, nil
}
