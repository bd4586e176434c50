// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package phal

import (
	"encoding/json"
	"time"

	pb "github.com/openconfig/gnmi/proto/gnmi"
	"github.com/openconfig/gnmi/value"
	"golang.org/x/net/context"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Service exposes the attribute database over the gNMI surface on the local
// PHAL URL. Addressing is richer than the telemetry tree's: an "index" key
// selects one member of a repeated group, "*" selects all members and a
// trailing "..." element selects the terminal subtree.
type Service struct {
	db *Database
}

// NewService creates a Service over a database.
func NewService(db *Database) *Service {
	return &Service{db: db}
}

// Capabilities reports the encodings the service answers with.
func (s *Service) Capabilities(ctx context.Context, req *pb.CapabilityRequest) (*pb.CapabilityResponse, error) {
	return &pb.CapabilityResponse{
		SupportedEncodings: []pb.Encoding{pb.Encoding_JSON_IETF, pb.Encoding_PROTO},
	}, nil
}

// Get answers one notification per requested path carrying the subtree
// snapshot.
func (s *Service) Get(ctx context.Context, req *pb.GetRequest) (*pb.GetResponse, error) {
	paths := req.GetPath()
	if len(paths) == 0 {
		return nil, status.Error(codes.InvalidArgument, "no path")
	}
	notifications := make([]*pb.Notification, len(paths))
	for i, reqPath := range paths {
		dbPath, err := ParsePath(reqPath)
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		snap, err := s.db.Get(dbPath)
		if err != nil {
			return nil, status.Error(codes.NotFound, err.Error())
		}
		val, err := snapshotValue(snap, dbPath)
		if err != nil {
			return nil, status.Error(codes.Internal, err.Error())
		}
		notifications[i] = &pb.Notification{
			Timestamp: time.Now().UnixNano(),
			Update:    []*pb.Update{{Path: reqPath, Val: val}},
		}
	}
	return &pb.GetResponse{Notification: notifications}, nil
}

// Set writes every update's typed value into the database. Deletes are not
// supported; attribute groups exist as long as the process does.
func (s *Service) Set(ctx context.Context, req *pb.SetRequest) (*pb.SetResponse, error) {
	if len(req.GetDelete()) > 0 {
		return nil, status.Error(codes.InvalidArgument, "attribute deletion is unsupported")
	}
	var results []*pb.UpdateResult
	apply := func(op pb.UpdateResult_Operation, upd *pb.Update) error {
		dbPath, err := ParsePath(upd.GetPath())
		if err != nil {
			return status.Error(codes.InvalidArgument, err.Error())
		}
		v, err := scalarValue(upd.GetVal())
		if err != nil {
			return err
		}
		if err := s.db.Set(dbPath, v); err != nil {
			return status.Error(codes.InvalidArgument, err.Error())
		}
		results = append(results, &pb.UpdateResult{Path: upd.GetPath(), Op: op})
		return nil
	}
	for _, upd := range req.GetReplace() {
		if err := apply(pb.UpdateResult_REPLACE, upd); err != nil {
			return nil, err
		}
	}
	for _, upd := range req.GetUpdate() {
		if err := apply(pb.UpdateResult_UPDATE, upd); err != nil {
			return nil, err
		}
	}
	return &pb.SetResponse{Response: results}, nil
}

// Subscribe streams subtree snapshots at the polling interval the request
// names (in seconds). The poller stops when the client goes away; an empty
// snapshot closes the stream with an internal error.
func (s *Service) Subscribe(stream pb.GNMI_SubscribeServer) error {
	sr, err := stream.Recv()
	if err != nil {
		return err
	}
	list := sr.GetSubscribe()
	if list == nil || len(list.GetSubscription()) == 0 {
		return status.Error(codes.InvalidArgument, "first request must carry a subscription list")
	}
	sub := list.GetSubscription()[0]
	dbPath, err := ParsePath(sub.GetPath())
	if err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	intervalSeconds := sub.GetSampleInterval()
	if intervalSeconds == 0 {
		intervalSeconds = 1
	}

	stop := make(chan struct{})
	defer close(stop)
	snapshots, err := s.db.Subscribe(dbPath, time.Duration(intervalSeconds)*time.Second, stop)
	if err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}

	for {
		select {
		case <-stream.Context().Done():
			return status.Error(codes.Canceled, "stream closed")
		case snap, ok := <-snapshots:
			if !ok {
				return status.Error(codes.Internal, "subscription channel closed")
			}
			if snap == nil {
				// A poll should never produce a nil snapshot; log and move on.
				log.Error("Subscription read returned no snapshot.")
				continue
			}
			if len(snap) == 0 {
				return status.Error(codes.Internal, "subscribe read returned zero bytes")
			}
			val, err := snapshotValue(snap, dbPath)
			if err != nil {
				return status.Error(codes.Internal, err.Error())
			}
			resp := &pb.SubscribeResponse{
				Response: &pb.SubscribeResponse_Update{
					Update: &pb.Notification{
						Timestamp: time.Now().UnixNano(),
						Update:    []*pb.Update{{Path: sub.GetPath(), Val: val}},
					},
				},
			}
			if err := stream.Send(resp); err != nil {
				return status.Errorf(codes.Internal, "subscribe stream write failed: %v", err)
			}
		}
	}
}

// snapshotValue renders a snapshot: a scalar leaf becomes its typed value,
// anything structured is carried as JSON.
func snapshotValue(snap map[string]interface{}, dbPath Path) (*pb.TypedValue, error) {
	var cur interface{} = snap
	for _, entry := range dbPath {
		m, ok := cur.(map[string]interface{})
		if !ok {
			break
		}
		next, ok := m[entry.Name]
		if !ok {
			break
		}
		cur = next
	}
	switch cur.(type) {
	case map[string]interface{}, []interface{}:
		data, err := json.Marshal(snap)
		if err != nil {
			return nil, err
		}
		return &pb.TypedValue{Value: &pb.TypedValue_JsonIetfVal{JsonIetfVal: data}}, nil
	default:
		return value.FromScalar(cur)
	}
}

// scalarValue unpacks the typed value of a Set update.
func scalarValue(val *pb.TypedValue) (interface{}, error) {
	switch v := val.GetValue().(type) {
	case *pb.TypedValue_FloatVal:
		return v.FloatVal, nil
	case *pb.TypedValue_IntVal:
		return v.IntVal, nil
	case *pb.TypedValue_UintVal:
		return v.UintVal, nil
	case *pb.TypedValue_BoolVal:
		return v.BoolVal, nil
	case *pb.TypedValue_StringVal:
		return v.StringVal, nil
	case *pb.TypedValue_BytesVal:
		return v.BytesVal, nil
	default:
		return nil, status.Errorf(codes.InvalidArgument, "unknown value type %T", val.GetValue())
	}
}
