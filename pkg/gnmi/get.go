// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package gnmi

import (
	"time"

	pb "github.com/openconfig/gnmi/proto/gnmi"
	"golang.org/x/net/context"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Get implements the Get RPC in gNMI spec. Each requested path is resolved
// against the parse tree and answered by running the node's on-poll
// machinery against a collecting stream.
func (s *Server) Get(ctx context.Context, req *pb.GetRequest) (*pb.GetResponse, error) {
	if err := checkEncoding(req.GetEncoding()); err != nil {
		return nil, status.Error(codes.Unimplemented, err.Error())
	}

	prefix := req.GetPrefix()
	paths := req.GetPath()
	if len(paths) == 0 {
		return nil, status.Error(codes.InvalidArgument, "no paths requested")
	}

	notifications := make([]*pb.Notification, len(paths))
	for i, path := range paths {
		fullPath := gnmiFullPath(prefix, path)
		if fullPath.GetElem() == nil && fullPath.GetElement() != nil {
			return nil, status.Error(codes.Unimplemented, "deprecated path element type is unsupported")
		}

		c := &collector{}
		rec, err := s.publisher.SubscribePoll(fullPath, c)
		if err != nil {
			return nil, err
		}
		pollErr := s.publisher.HandlePoll(rec)
		if err := s.publisher.UnSubscribe(rec); err != nil {
			log.Errorf("Cannot release poll subscription: %v", err)
		}
		if pollErr != nil {
			return nil, status.Errorf(codes.Internal, "error in reading %v: %v", path, pollErr)
		}

		notifications[i] = &pb.Notification{
			Timestamp: time.Now().UnixNano(),
			Prefix:    prefix,
			Update:    c.collected(),
		}
	}

	return &pb.GetResponse{Notification: notifications}, nil
}
