// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package gnmi

import (
	"fmt"
	"sync"

	"github.com/golang/protobuf/ptypes"
	pb "github.com/openconfig/gnmi/proto/gnmi"
	cpb "google.golang.org/genproto/googleapis/rpc/code"
	spb "google.golang.org/genproto/googleapis/rpc/status"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	gpath "github.com/onosproject/gnmi-agent/pkg/path"
)

// checkEncoding returns an error when the requested encoding is not
// supported by the server.
func checkEncoding(encoding pb.Encoding) error {
	for _, supported := range supportedEncodings {
		if encoding == supported {
			return nil
		}
	}
	return fmt.Errorf("unsupported encoding: %s", pb.Encoding_name[int32(encoding)])
}

// gnmiFullPath builds the full path from the prefix and path.
func gnmiFullPath(prefix, path *pb.Path) *pb.Path {
	if prefix == nil {
		return path
	}
	return gpath.Join(prefix, path)
}

// collector is a bus.Stream accumulating the updates a poll handler writes,
// so Get can reuse the on-poll machinery of the parse tree.
type collector struct {
	mu      sync.Mutex
	updates []*pb.Update
}

func (c *collector) Send(resp *pb.SubscribeResponse) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if update := resp.GetUpdate(); update != nil {
		c.updates = append(c.updates, update.GetUpdate()...)
	}
	return nil
}

func (c *collector) collected() []*pb.Update {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.updates
}

// pathError is one failed operation of a multi-update Set.
type pathError struct {
	path *pb.Path
	err  error
}

// aggregateStatus folds the per-path errors of a Set into a single non-OK
// status whose details carry one entry per failed path.
func aggregateStatus(total int, errs []*pathError) error {
	if len(errs) == 0 {
		return nil
	}
	top := &spb.Status{
		Code:    int32(cpb.Code_INVALID_ARGUMENT),
		Message: fmt.Sprintf("%d of %d operations failed", len(errs), total),
	}
	for _, pe := range errs {
		detail := &spb.Status{
			Code:    int32(status.Code(pe.err)),
			Message: fmt.Sprintf("%s: %v", gpath.String(pe.path), pe.err),
		}
		packed, err := ptypes.MarshalAny(detail)
		if err != nil {
			log.Errorf("Cannot pack error detail: %v", err)
			continue
		}
		top.Details = append(top.Details, packed)
	}
	return status.ErrorProto(top)
}

// errInvalidValue builds the error for a Set update whose value type does
// not fit the leaf.
func errInvalidValue(val *pb.TypedValue) error {
	return status.Errorf(codes.InvalidArgument, "unknown value type %T", val.GetValue())
}
