// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package tree

import (
	"time"

	pb "github.com/openconfig/gnmi/proto/gnmi"

	"github.com/onosproject/gnmi-agent/pkg/bus"
)

func strVal(s string) *pb.TypedValue {
	return &pb.TypedValue{Value: &pb.TypedValue_StringVal{StringVal: s}}
}

func uintVal(u uint64) *pb.TypedValue {
	return &pb.TypedValue{Value: &pb.TypedValue_UintVal{UintVal: u}}
}

func boolVal(b bool) *pb.TypedValue {
	return &pb.TypedValue{Value: &pb.TypedValue_BoolVal{BoolVal: b}}
}

// sendUpdate writes one update notification for path/val on the stream.
func sendUpdate(stream bus.Stream, path *pb.Path, val *pb.TypedValue) error {
	resp := &pb.SubscribeResponse{
		Response: &pb.SubscribeResponse_Update{
			Update: &pb.Notification{
				Timestamp: time.Now().UnixNano(),
				Update:    []*pb.Update{{Path: path, Val: val}},
			},
		},
	}
	return stream.Send(resp)
}
