// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package path implements the canonical representation of hierarchical gNMI
// paths with positional keys, including wildcard-tolerant matching and
// prefix+suffix concatenation.
package path

import (
	pb "github.com/openconfig/gnmi/proto/gnmi"
	"github.com/openconfig/ygot/ygot"
)

// Wildcard is the key value that matches any key value on the other side.
const Wildcard = "*"

// MatchElem reports whether two path elements match. Names must be equal;
// every key present on both sides must either be equal or be the wildcard on
// one side. A key absent on one side matches any value on the other.
func MatchElem(a, b *pb.PathElem) bool {
	if a.GetName() != b.GetName() {
		return false
	}
	for k, av := range a.GetKey() {
		bv, ok := b.GetKey()[k]
		if !ok {
			continue
		}
		if av != bv && av != Wildcard && bv != Wildcard {
			return false
		}
	}
	return true
}

// Match reports whether two paths match element by element with wildcard
// tolerance. Paths of different lengths never match.
func Match(a, b *pb.Path) bool {
	if len(a.GetElem()) != len(b.GetElem()) {
		return false
	}
	for i, elem := range a.GetElem() {
		if !MatchElem(elem, b.GetElem()[i]) {
			return false
		}
	}
	return true
}

// EqualElem reports structural equality of two path elements.
func EqualElem(a, b *pb.PathElem) bool {
	if a.GetName() != b.GetName() {
		return false
	}
	if len(a.GetKey()) != len(b.GetKey()) {
		return false
	}
	for k, av := range a.GetKey() {
		if bv, ok := b.GetKey()[k]; !ok || av != bv {
			return false
		}
	}
	return true
}

// Equal reports structural equality of two paths.
func Equal(a, b *pb.Path) bool {
	if len(a.GetElem()) != len(b.GetElem()) {
		return false
	}
	for i, elem := range a.GetElem() {
		if !EqualElem(elem, b.GetElem()[i]) {
			return false
		}
	}
	return true
}

// IsWildcardElem reports whether any key of the element is the wildcard.
func IsWildcardElem(elem *pb.PathElem) bool {
	for _, v := range elem.GetKey() {
		if v == Wildcard {
			return true
		}
	}
	return false
}

// IsWildcard reports whether any element of the path carries a wildcard key.
func IsWildcard(p *pb.Path) bool {
	for _, elem := range p.GetElem() {
		if IsWildcardElem(elem) {
			return true
		}
	}
	return false
}

// CloneElem deep-copies a path element.
func CloneElem(elem *pb.PathElem) *pb.PathElem {
	out := &pb.PathElem{Name: elem.GetName()}
	if len(elem.GetKey()) > 0 {
		out.Key = make(map[string]string, len(elem.GetKey()))
		for k, v := range elem.GetKey() {
			out.Key[k] = v
		}
	}
	return out
}

// Join concatenates a prefix path and a suffix path into a new path.
func Join(prefix, suffix *pb.Path) *pb.Path {
	out := &pb.Path{Origin: suffix.GetOrigin()}
	if out.Origin == "" {
		out.Origin = prefix.GetOrigin()
	}
	for _, elem := range prefix.GetElem() {
		out.Elem = append(out.Elem, CloneElem(elem))
	}
	for _, elem := range suffix.GetElem() {
		out.Elem = append(out.Elem, CloneElem(elem))
	}
	return out
}

// String renders a path for logs and error messages.
func String(p *pb.Path) string {
	if p == nil {
		return "/"
	}
	str, err := ygot.PathToString(p)
	if err != nil {
		return p.String()
	}
	return str
}
