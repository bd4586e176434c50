// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package gnmi

import (
	"io"
	"time"

	pb "github.com/openconfig/gnmi/proto/gnmi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/onosproject/gnmi-agent/pkg/publisher"
)

// Subscribe handles one bidirectional subscribe stream. The first message
// must carry a SubscriptionList; later inbound messages are Poll or Aliases
// control messages. The stream's records are released when the loop exits,
// whether by EOF, client cancellation or a write failure.
func (s *Server) Subscribe(stream pb.GNMI_SubscribeServer) error {
	c := &streamClient{stream: stream, out: &syncStream{stream: stream}}
	defer s.releaseStream(c)

	for {
		sr, err := stream.Recv()
		switch {
		case err == io.EOF:
			return nil
		case err != nil:
			return err
		}

		switch {
		case sr.GetSubscribe() != nil:
			list := sr.GetSubscribe()
			if err := s.processSubscriptionList(c, list); err != nil {
				return err
			}
			if list.GetMode() == pb.SubscriptionList_ONCE {
				return nil
			}
		case sr.GetPoll() != nil:
			s.processPoll(c)
		case sr.GetAliases() != nil:
			log.Warn("Aliases are not supported, ignoring")
		default:
			return status.Error(codes.InvalidArgument, "unknown subscribe request")
		}
	}
}

// processSubscriptionList validates the list and installs one subscription
// per entry according to the list and per-subscription modes.
func (s *Server) processSubscriptionList(c *streamClient, list *pb.SubscriptionList) error {
	if len(list.GetSubscription()) == 0 {
		return status.Error(codes.InvalidArgument, "subscription list is empty")
	}
	prefix := list.GetPrefix()

	switch list.GetMode() {
	case pb.SubscriptionList_STREAM:
		for _, sub := range list.GetSubscription() {
			if err := s.subscribeStream(c, prefix, sub, list.GetUpdatesOnly()); err != nil {
				return err
			}
		}
	case pb.SubscriptionList_ONCE, pb.SubscriptionList_POLL:
		for _, sub := range list.GetSubscription() {
			path := gnmiFullPath(prefix, sub.GetPath())
			rec, err := s.publisher.SubscribePoll(path, c.out)
			if err != nil {
				return err
			}
			if list.GetMode() == pb.SubscriptionList_POLL {
				c.addPolled(rec)
				continue
			}
			pollErr := s.publisher.HandlePoll(rec)
			if err := s.publisher.UnSubscribe(rec); err != nil {
				log.Errorf("Cannot release poll subscription: %v", err)
			}
			if pollErr != nil {
				return status.Errorf(codes.Internal, "error in reading %v: %v", sub.GetPath(), pollErr)
			}
		}
	default:
		return status.Errorf(codes.InvalidArgument, "unknown subscription list mode %v", list.GetMode())
	}

	return s.publisher.SendSyncResponse(c.out)
}

// subscribeStream installs one STREAM-mode subscription entry.
func (s *Server) subscribeStream(c *streamClient, prefix *pb.Path, sub *pb.Subscription, updatesOnly bool) error {
	path := gnmiFullPath(prefix, sub.GetPath())

	mode := sub.GetMode()
	if mode == pb.SubscriptionMode_TARGET_DEFINED {
		if err := s.publisher.UpdateSubscriptionWithTargetSpecificModeSpecification(path, sub); err != nil {
			return err
		}
		mode = sub.GetMode()
	}

	switch mode {
	case pb.SubscriptionMode_SAMPLE:
		intervalMs := sub.GetSampleInterval()
		if intervalMs == 0 {
			intervalMs = defaultSampleIntervalMs
		}
		interval := time.Duration(intervalMs) * time.Millisecond
		rec, err := s.publisher.SubscribePeriodic(publisher.Frequency{Delay: interval, Period: interval}, path, c.out)
		if err != nil {
			return err
		}
		c.addHandle(rec)
	default:
		// TARGET_DEFINED without a leaf-specific policy is ON_CHANGE.
		rec, err := s.publisher.SubscribeOnChange(path, c.out)
		if err != nil {
			return err
		}
		c.addHandle(rec)
		if !updatesOnly {
			s.sendInitialSnapshot(path, c)
		}
	}
	return nil
}

// sendInitialSnapshot writes the current state of the subtree before the
// sync response, reusing the on-poll machinery. Subtrees that cannot answer
// a poll simply contribute nothing to the snapshot.
func (s *Server) sendInitialSnapshot(path *pb.Path, c *streamClient) {
	rec, err := s.publisher.SubscribePoll(path, c.out)
	if err != nil {
		log.Infof("No initial snapshot for %v: %v", path, err)
		return
	}
	if err := s.publisher.HandlePoll(rec); err != nil {
		log.Errorf("Error in reading initial snapshot for %v: %v", path, err)
	}
	if err := s.publisher.UnSubscribe(rec); err != nil {
		log.Errorf("Cannot release poll subscription: %v", err)
	}
}

// processPoll answers one Poll control message: every polled record fires
// once, then the poll round is closed with a sync response.
func (s *Server) processPoll(c *streamClient) {
	for _, rec := range c.polledRecords() {
		if err := s.publisher.HandlePoll(rec); err != nil {
			log.Errorf("Poll failed: %v", err)
		}
	}
	if err := s.publisher.SendSyncResponse(c.out); err != nil {
		log.Errorf("Cannot send sync response: %v", err)
	}
}

// releaseStream unsubscribes every record the stream owns. Event-list
// entries decay to dead records and are pruned on the next delivery.
func (s *Server) releaseStream(c *streamClient) {
	for _, rec := range c.allHandles() {
		if err := s.publisher.UnSubscribe(rec); err != nil {
			log.Errorf("Cannot unsubscribe record: %v", err)
		}
	}
}
