// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package gnmi

import (
	pb "github.com/openconfig/gnmi/proto/gnmi"
	"golang.org/x/net/context"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/onosproject/gnmi-agent/pkg/config"
	gpath "github.com/onosproject/gnmi-agent/pkg/path"
	"github.com/onosproject/gnmi-agent/pkg/southbound"
	"github.com/onosproject/gnmi-agent/pkg/tree"
)

// Set implements the Set RPC in gNMI spec. A replace of the root carries a
// new chassis config; leaf updates are forwarded to the switch driver as
// typed writes. Failed operations do not stop the remaining ones; they are
// aggregated into the details of a non-OK status.
func (s *Server) Set(ctx context.Context, req *pb.SetRequest) (*pb.SetResponse, error) {
	prefix := req.GetPrefix()
	var results []*pb.UpdateResult
	var errs []*pathError
	total := 0

	for _, path := range req.GetDelete() {
		total++
		errs = append(errs, &pathError{
			path: path,
			err:  status.Error(codes.InvalidArgument, "configured subtrees cannot be deleted"),
		})
	}

	apply := func(op pb.UpdateResult_Operation, upd *pb.Update) {
		total++
		fullPath := gnmiFullPath(prefix, upd.GetPath())
		if err := s.applyUpdate(op, fullPath, upd.GetVal()); err != nil {
			errs = append(errs, &pathError{path: upd.GetPath(), err: err})
			return
		}
		results = append(results, &pb.UpdateResult{Path: upd.GetPath(), Op: op})
	}
	for _, upd := range req.GetReplace() {
		apply(pb.UpdateResult_REPLACE, upd)
	}
	for _, upd := range req.GetUpdate() {
		apply(pb.UpdateResult_UPDATE, upd)
	}

	if len(errs) > 0 {
		return nil, aggregateStatus(total, errs)
	}
	return &pb.SetResponse{Prefix: req.GetPrefix(), Response: results}, nil
}

// applyUpdate performs one replace/update operation.
func (s *Server) applyUpdate(op pb.UpdateResult_Operation, fullPath *pb.Path, val *pb.TypedValue) error {
	if len(fullPath.GetElem()) == 0 {
		return s.applyConfigPush(val)
	}

	port, err := s.portForPath(fullPath)
	if err != nil {
		return err
	}

	elems := fullPath.GetElem()
	leaf := elems[len(elems)-1].GetName()
	container := ""
	if len(elems) > 1 {
		container = elems[len(elems)-2].GetName()
	}

	switch {
	case container == "config" && leaf == "mac-address":
		str, ok := val.GetValue().(*pb.TypedValue_StringVal)
		if !ok {
			return errInvalidValue(val)
		}
		mac, err := tree.MacAddressFromString(str.StringVal)
		if err != nil {
			return status.Error(codes.InvalidArgument, err.Error())
		}
		return s.switchIface.SetValue(port.NodeID, &southbound.SetValueRequest{
			Field:      southbound.FieldMacAddress,
			NodeID:     port.NodeID,
			PortID:     port.PortID,
			MacAddress: mac,
		})
	case container == "config" && leaf == "port-speed":
		var bps uint64
		switch v := val.GetValue().(type) {
		case *pb.TypedValue_StringVal:
			speed, ok := tree.SpeedBpsFromString(v.StringVal)
			if !ok {
				return status.Errorf(codes.InvalidArgument, "unknown port speed %q", v.StringVal)
			}
			bps = speed
		case *pb.TypedValue_UintVal:
			bps = v.UintVal
		default:
			return errInvalidValue(val)
		}
		return s.switchIface.SetValue(port.NodeID, &southbound.SetValueRequest{
			Field:    southbound.FieldPortSpeed,
			NodeID:   port.NodeID,
			PortID:   port.PortID,
			SpeedBps: bps,
		})
	case container == "config" && leaf == "enabled":
		b, ok := val.GetValue().(*pb.TypedValue_BoolVal)
		if !ok {
			return errInvalidValue(val)
		}
		return s.switchIface.SetValue(port.NodeID, &southbound.SetValueRequest{
			Field:        southbound.FieldAdminStatus,
			NodeID:       port.NodeID,
			PortID:       port.PortID,
			AdminEnabled: b.BoolVal,
		})
	default:
		return status.Errorf(codes.InvalidArgument, "the path (%s) is not writable", gpath.String(fullPath))
	}
}

// applyConfigPush accepts a whole-chassis config replace.
func (s *Server) applyConfigPush(val *pb.TypedValue) error {
	var data []byte
	switch v := val.GetValue().(type) {
	case *pb.TypedValue_JsonIetfVal:
		data = v.JsonIetfVal
	case *pb.TypedValue_JsonVal:
		data = v.JsonVal
	case *pb.TypedValue_BytesVal:
		data = v.BytesVal
	default:
		return errInvalidValue(val)
	}
	cfg, err := config.Parse(data)
	if err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return s.applyConfig(cfg)
}

// portForPath finds the singleton port the path addresses through its
// interface[name=...] key.
func (s *Server) portForPath(path *pb.Path) (*config.SingletonPort, error) {
	cfg := s.currentConfig()
	if cfg == nil {
		return nil, status.Error(codes.InvalidArgument, "no chassis config has been pushed")
	}
	for _, elem := range path.GetElem() {
		if elem.GetName() != "interface" {
			continue
		}
		name, ok := elem.GetKey()["name"]
		if !ok {
			continue
		}
		for i := range cfg.SingletonPorts {
			if cfg.SingletonPorts[i].Name == name {
				return &cfg.SingletonPorts[i], nil
			}
		}
		return nil, status.Errorf(codes.InvalidArgument, "unknown interface %q", name)
	}
	return nil, status.Errorf(codes.InvalidArgument, "the path (%s) is not writable", gpath.String(path))
}
