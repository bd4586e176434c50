// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package gnmi

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/gnxi/utils/xpath"
	pb "github.com/openconfig/gnmi/proto/gnmi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/onosproject/gnmi-agent/pkg/config"
	"github.com/onosproject/gnmi-agent/pkg/events"
	"github.com/onosproject/gnmi-agent/pkg/southbound"
)

func mustPath(t *testing.T, p string) *pb.Path {
	t.Helper()
	parsed, err := xpath.ToGNMIPath(p)
	require.NoError(t, err)
	return parsed
}

func testChassisConfig() *config.ChassisConfig {
	return &config.ChassisConfig{
		Chassis: config.Chassis{Name: "chassis-1"},
		SingletonPorts: []config.SingletonPort{{
			Name:     "interface-1",
			NodeID:   3,
			PortID:   3,
			SpeedBps: 25000000000,
			Queues:   []config.QueueConfig{{ID: 0, Purpose: "BE1"}},
		}},
	}
}

func seededSwitch() *southbound.FakeSwitch {
	fake := southbound.NewFakeSwitch()
	fake.Respond(southbound.FieldOperStatus, &southbound.DataResponse{OperStatus: events.PortStateUp})
	fake.Respond(southbound.FieldAdminStatus, &southbound.DataResponse{AdminStatus: events.AdminStateEnabled})
	fake.Respond(southbound.FieldMacAddress, &southbound.DataResponse{MacAddress: 0x112233445566})
	fake.Respond(southbound.FieldPortSpeed, &southbound.DataResponse{SpeedBps: 25000000000})
	return fake
}

func newTestServer(t *testing.T) (*Server, *southbound.FakeSwitch) {
	t.Helper()
	fake := seededSwitch()
	s, err := NewServer(fake, testChassisConfig())
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})
	return s, fake
}

// fakeSubscribeServer implements pb.GNMI_SubscribeServer over channels.
type fakeSubscribeServer struct {
	ctx      context.Context
	requests chan *pb.SubscribeRequest

	mu        sync.Mutex
	responses []*pb.SubscribeResponse
}

func newFakeSubscribeServer() *fakeSubscribeServer {
	return &fakeSubscribeServer{
		ctx:      context.Background(),
		requests: make(chan *pb.SubscribeRequest, 8),
	}
}

func (f *fakeSubscribeServer) Send(resp *pb.SubscribeResponse) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, resp)
	return nil
}

func (f *fakeSubscribeServer) Recv() (*pb.SubscribeRequest, error) {
	req, ok := <-f.requests
	if !ok {
		return nil, io.EOF
	}
	return req, nil
}

func (f *fakeSubscribeServer) snapshot() []*pb.SubscribeResponse {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*pb.SubscribeResponse, len(f.responses))
	copy(out, f.responses)
	return out
}

func (f *fakeSubscribeServer) updates() []*pb.Update {
	var out []*pb.Update
	for _, resp := range f.snapshot() {
		if n := resp.GetUpdate(); n != nil {
			out = append(out, n.GetUpdate()...)
		}
	}
	return out
}

func (f *fakeSubscribeServer) syncResponses() int {
	count := 0
	for _, resp := range f.snapshot() {
		if resp.GetSyncResponse() {
			count++
		}
	}
	return count
}

func (f *fakeSubscribeServer) SetHeader(metadata.MD) error  { return nil }
func (f *fakeSubscribeServer) SendHeader(metadata.MD) error { return nil }
func (f *fakeSubscribeServer) SetTrailer(metadata.MD)       {}
func (f *fakeSubscribeServer) Context() context.Context     { return f.ctx }
func (f *fakeSubscribeServer) SendMsg(interface{}) error    { return nil }
func (f *fakeSubscribeServer) RecvMsg(interface{}) error    { return nil }

func subscriptionList(mode pb.SubscriptionList_Mode, subs ...*pb.Subscription) *pb.SubscribeRequest {
	return &pb.SubscribeRequest{
		Request: &pb.SubscribeRequest_Subscribe{
			Subscribe: &pb.SubscriptionList{Mode: mode, Subscription: subs},
		},
	}
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestCapabilities(t *testing.T) {
	s, _ := newTestServer(t)
	resp, err := s.Capabilities(context.Background(), &pb.CapabilityRequest{})
	require.NoError(t, err)
	assert.Contains(t, resp.SupportedEncodings, pb.Encoding_PROTO)
	assert.NotEmpty(t, resp.SupportedModels)
	assert.NotEmpty(t, resp.GNMIVersion)
}

func TestGetNameAndIfindex(t *testing.T) {
	s, _ := newTestServer(t)
	resp, err := s.Get(context.Background(), &pb.GetRequest{
		Encoding: pb.Encoding_PROTO,
		Path: []*pb.Path{
			mustPath(t, "/interfaces/interface[name=interface-1]/state/ifindex"),
			mustPath(t, "/interfaces/interface[name=interface-1]/state/name"),
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Notification, 2)
	require.Len(t, resp.Notification[0].Update, 1)
	assert.Equal(t, uint64(3), resp.Notification[0].Update[0].GetVal().GetUintVal())
	require.Len(t, resp.Notification[1].Update, 1)
	assert.Equal(t, "interface-1", resp.Notification[1].Update[0].GetVal().GetStringVal())
}

func TestGetOperStatus(t *testing.T) {
	s, _ := newTestServer(t)
	resp, err := s.Get(context.Background(), &pb.GetRequest{
		Encoding: pb.Encoding_PROTO,
		Path:     []*pb.Path{mustPath(t, "/interfaces/interface[name=interface-1]/state/oper-status")},
	})
	require.NoError(t, err)
	require.Len(t, resp.Notification, 1)
	require.Len(t, resp.Notification[0].Update, 1)
	assert.Equal(t, "UP", resp.Notification[0].Update[0].GetVal().GetStringVal())
}

func TestGetWithPrefix(t *testing.T) {
	s, _ := newTestServer(t)
	resp, err := s.Get(context.Background(), &pb.GetRequest{
		Encoding: pb.Encoding_PROTO,
		Prefix:   mustPath(t, "/interfaces/interface[name=interface-1]"),
		Path:     []*pb.Path{mustPath(t, "/ethernet/state/mac-address")},
	})
	require.NoError(t, err)
	require.Len(t, resp.Notification, 1)
	require.Len(t, resp.Notification[0].Update, 1)
	assert.Equal(t, "11:22:33:44:55:66", resp.Notification[0].Update[0].GetVal().GetStringVal())
}

func TestGetUnsupportedPath(t *testing.T) {
	s, _ := newTestServer(t)
	_, err := s.Get(context.Background(), &pb.GetRequest{
		Encoding: pb.Encoding_PROTO,
		Path:     []*pb.Path{mustPath(t, "/interfaces/interface[name=interface-1]/state/no-such-leaf")},
	})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestGetNoPaths(t *testing.T) {
	s, _ := newTestServer(t)
	_, err := s.Get(context.Background(), &pb.GetRequest{Encoding: pb.Encoding_PROTO})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestSetConfigPush(t *testing.T) {
	fake := seededSwitch()
	s, err := NewServer(fake, nil)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, s.Close())
	}()

	data, err := json.Marshal(testChassisConfig())
	require.NoError(t, err)

	_, err = s.Set(context.Background(), &pb.SetRequest{
		Replace: []*pb.Update{{
			Path: &pb.Path{},
			Val:  &pb.TypedValue{Value: &pb.TypedValue_JsonIetfVal{JsonIetfVal: data}},
		}},
	})
	require.NoError(t, err)

	resp, err := s.Get(context.Background(), &pb.GetRequest{
		Encoding: pb.Encoding_PROTO,
		Path:     []*pb.Path{mustPath(t, "/interfaces/interface[name=interface-1]/state/name")},
	})
	require.NoError(t, err)
	require.Len(t, resp.Notification, 1)
	require.Len(t, resp.Notification[0].Update, 1)
	assert.Equal(t, "interface-1", resp.Notification[0].Update[0].GetVal().GetStringVal())
}

func TestSetLeafWritesReachSwitch(t *testing.T) {
	s, fake := newTestServer(t)

	_, err := s.Set(context.Background(), &pb.SetRequest{
		Update: []*pb.Update{{
			Path: mustPath(t, "/interfaces/interface[name=interface-1]/ethernet/config/mac-address"),
			Val:  &pb.TypedValue{Value: &pb.TypedValue_StringVal{StringVal: "aa:bb:cc:dd:ee:ff"}},
		}, {
			Path: mustPath(t, "/interfaces/interface[name=interface-1]/ethernet/config/port-speed"),
			Val:  &pb.TypedValue{Value: &pb.TypedValue_StringVal{StringVal: "SPEED_40GB"}},
		}},
	})
	require.NoError(t, err)

	writes := fake.Writes()
	require.Len(t, writes, 2)
	assert.Equal(t, southbound.FieldMacAddress, writes[0].Field)
	assert.Equal(t, uint64(0xaabbccddeeff), writes[0].MacAddress)
	assert.Equal(t, southbound.FieldPortSpeed, writes[1].Field)
	assert.Equal(t, uint64(40000000000), writes[1].SpeedBps)
}

func TestSetUnknownValueTypeAggregatesErrors(t *testing.T) {
	s, fake := newTestServer(t)

	_, err := s.Set(context.Background(), &pb.SetRequest{
		Update: []*pb.Update{{
			Path: mustPath(t, "/interfaces/interface[name=interface-1]/ethernet/config/mac-address"),
			Val:  &pb.TypedValue{Value: &pb.TypedValue_UintVal{UintVal: 42}},
		}, {
			Path: mustPath(t, "/interfaces/interface[name=interface-1]/ethernet/config/port-speed"),
			Val:  &pb.TypedValue{Value: &pb.TypedValue_StringVal{StringVal: "SPEED_40GB"}},
		}},
	})
	require.Error(t, err)
	st := status.Convert(err)
	assert.Equal(t, codes.InvalidArgument, st.Code())
	assert.Len(t, st.Proto().GetDetails(), 1)

	// The healthy update of the batch was still applied.
	writes := fake.Writes()
	require.Len(t, writes, 1)
	assert.Equal(t, southbound.FieldPortSpeed, writes[0].Field)
}

func TestSetDeleteIsRejected(t *testing.T) {
	s, _ := newTestServer(t)
	_, err := s.Set(context.Background(), &pb.SetRequest{
		Delete: []*pb.Path{mustPath(t, "/interfaces/interface[name=interface-1]")},
	})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestSubscribeOnce(t *testing.T) {
	s, _ := newTestServer(t)
	stream := newFakeSubscribeServer()
	stream.requests <- subscriptionList(pb.SubscriptionList_ONCE, &pb.Subscription{
		Path: mustPath(t, "/interfaces/interface[name=interface-1]/state/oper-status"),
	})

	require.NoError(t, s.Subscribe(stream))
	updates := stream.updates()
	require.Len(t, updates, 1)
	assert.Equal(t, "UP", updates[0].GetVal().GetStringVal())
	assert.Equal(t, 1, stream.syncResponses())
}

func TestSubscribePollMode(t *testing.T) {
	s, _ := newTestServer(t)
	stream := newFakeSubscribeServer()
	stream.requests <- subscriptionList(pb.SubscriptionList_POLL, &pb.Subscription{
		Path: mustPath(t, "/interfaces/interface[name=interface-1]/state/oper-status"),
	})
	stream.requests <- &pb.SubscribeRequest{
		Request: &pb.SubscribeRequest_Poll{Poll: &pb.Poll{}},
	}
	close(stream.requests)

	require.NoError(t, s.Subscribe(stream))
	// One update from the poll round; a sync after the list and one closing
	// each poll round.
	assert.Len(t, stream.updates(), 1)
	assert.Equal(t, 2, stream.syncResponses())
}

func TestSubscribeStreamOnChange(t *testing.T) {
	s, fake := newTestServer(t)
	stream := newFakeSubscribeServer()
	stream.requests <- subscriptionList(pb.SubscriptionList_STREAM, &pb.Subscription{
		Path: mustPath(t, "/interfaces/interface[name=interface-1]/state/oper-status"),
		Mode: pb.SubscriptionMode_ON_CHANGE,
	})

	done := make(chan error, 1)
	go func() { done <- s.Subscribe(stream) }()

	// Initial snapshot plus the sync response end the initial exchange.
	waitFor(t, func() bool { return stream.syncResponses() == 1 }, "sync response never arrived")
	require.Len(t, stream.updates(), 1)

	fake.Notify(events.NewPortOperStateChangedEvent(3, 3, events.PortStateDown))
	waitFor(t, func() bool { return len(stream.updates()) == 2 }, "on-change update never arrived")
	assert.Equal(t, "DOWN", stream.updates()[1].GetVal().GetStringVal())

	close(stream.requests)
	require.NoError(t, <-done)
}

func TestSubscribeStreamTargetDefinedCounters(t *testing.T) {
	s, fake := newTestServer(t)
	fake.Respond(southbound.FieldPortCounters, &southbound.DataResponse{
		PortCounters: &events.PortCounters{InOctets: 5},
	})
	stream := newFakeSubscribeServer()
	// TARGET_DEFINED on counters becomes SAMPLE@10s; the first sample is
	// scheduled but does not land within the test.
	stream.requests <- subscriptionList(pb.SubscriptionList_STREAM, &pb.Subscription{
		Path: mustPath(t, "/interfaces/interface[name=interface-1]/state/counters"),
		Mode: pb.SubscriptionMode_TARGET_DEFINED,
	})

	done := make(chan error, 1)
	go func() { done <- s.Subscribe(stream) }()

	waitFor(t, func() bool { return stream.syncResponses() == 1 }, "sync response never arrived")
	close(stream.requests)
	require.NoError(t, <-done)
}

func TestSubscribeEmptyList(t *testing.T) {
	s, _ := newTestServer(t)
	stream := newFakeSubscribeServer()
	stream.requests <- subscriptionList(pb.SubscriptionList_STREAM)

	err := s.Subscribe(stream)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestSubscribeUnsupportedPath(t *testing.T) {
	s, _ := newTestServer(t)
	stream := newFakeSubscribeServer()
	stream.requests <- subscriptionList(pb.SubscriptionList_STREAM, &pb.Subscription{
		Path: mustPath(t, "/no/such/path"),
		Mode: pb.SubscriptionMode_ON_CHANGE,
	})

	err := s.Subscribe(stream)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
