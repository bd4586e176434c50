// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package gnmi

import (
	"github.com/eapache/channels"
	"github.com/onosproject/onos-lib-go/pkg/logging"

	"github.com/onosproject/gnmi-agent/pkg/bus"
	"github.com/onosproject/gnmi-agent/pkg/config"
	"github.com/onosproject/gnmi-agent/pkg/publisher"
	"github.com/onosproject/gnmi-agent/pkg/southbound"
	"github.com/onosproject/gnmi-agent/pkg/timer"
)

var log = logging.GetLogger("gnmi")

// NewServer creates an instance of Server wired to the given switch driver,
// optionally applying a startup chassis config.
func NewServer(switchIface southbound.SwitchInterface, startup *config.ChassisConfig) (*Server, error) {
	registry := bus.NewRegistry()
	timers := timer.NewDaemon()
	if err := timers.Start(); err != nil {
		return nil, err
	}
	s := &Server{
		switchIface:  switchIface,
		registry:     registry,
		timers:       timers,
		publisher:    publisher.New(switchIface, registry, timers),
		ConfigUpdate: channels.NewRingChannel(100),
	}
	if err := s.publisher.RegisterEventWriter(); err != nil {
		timers.Stop()
		return nil, err
	}
	if startup != nil {
		if err := s.applyConfig(startup); err != nil {
			timers.Stop()
			return nil, err
		}
	}
	return s, nil
}

// applyConfig accepts a chassis config: the parse tree grows to cover it
// and observers of ConfigUpdate are notified.
func (s *Server) applyConfig(cfg *config.ChassisConfig) error {
	if err := s.publisher.HandleConfigPush(cfg); err != nil {
		return err
	}
	s.configMu.Lock()
	s.config = cfg
	s.configMu.Unlock()
	s.ConfigUpdate.In() <- cfg
	return nil
}

// currentConfig returns the last accepted chassis config.
func (s *Server) currentConfig() *config.ChassisConfig {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.config
}

// Publisher exposes the subscription manager.
func (s *Server) Publisher() *publisher.Publisher {
	return s.publisher
}

// Close detaches the server from the switch driver and stops the timer
// daemon.
func (s *Server) Close() error {
	err := s.publisher.UnregisterEventWriter()
	s.timers.Stop()
	s.ConfigUpdate.Close()
	return err
}
