// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Binary gnmi_agent implements the gNMI telemetry and configuration surface
// of a switch control plane, together with the local PHAL attribute
// database service.
package main

import (
	"flag"
	"net"

	grpc_middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	"github.com/onosproject/onos-lib-go/pkg/logging"

	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"github.com/onosproject/gnmi-agent/pkg/config"
	"github.com/onosproject/gnmi-agent/pkg/events"
	"github.com/onosproject/gnmi-agent/pkg/gnmi"
	"github.com/onosproject/gnmi-agent/pkg/phal"
	"github.com/onosproject/gnmi-agent/pkg/southbound"

	"github.com/google/gnxi/utils/credentials"

	pb "github.com/openconfig/gnmi/proto/gnmi"
)

var log = logging.GetLogger("main")

func main() {
	flag.Parse()

	var startup *config.ChassisConfig
	if *configFile != "" {
		var err error
		startup, err = config.Load(*configFile)
		if err != nil {
			log.Fatalf("Error in reading chassis config: %v", err)
		}
	}

	// Without a hardware driver linked in, the agent runs against the
	// in-memory switch so it can be exercised end to end.
	switchIface := seededFakeSwitch()

	s, err := gnmi.NewServer(switchIface, startup)
	if err != nil {
		log.Fatalf("Error in creating gnmi agent: %v", err)
	}

	opts := credentials.ServerCredentials()
	opts = append(opts,
		grpc_middleware.WithUnaryServerChain(grpc_recovery.UnaryServerInterceptor()),
		grpc_middleware.WithStreamServerChain(grpc_recovery.StreamServerInterceptor()),
	)
	g := grpc.NewServer(opts...)
	pb.RegisterGNMIServer(g, s)
	reflection.Register(g)

	go servePhalDb()
	go logConfigPushes(s)

	log.Infof("Starting gNMI agent to listen on %s", *bindAddr)
	listen, err := net.Listen("tcp", *bindAddr)
	if err != nil {
		log.Fatalf("Failed to listen: %v", err)
	}
	if err := g.Serve(listen); err != nil {
		log.Fatalf("Failed to serve: %v", err)
	}
}

// servePhalDb starts the PHAL attribute database service on its local URL.
func servePhalDb() {
	service := phal.NewService(phal.NewDatabase())
	g := grpc.NewServer(
		grpc_middleware.WithUnaryServerChain(grpc_recovery.UnaryServerInterceptor()),
		grpc_middleware.WithStreamServerChain(grpc_recovery.StreamServerInterceptor()),
	)
	pb.RegisterGNMIServer(g, service)

	log.Infof("PhalDB service is listening to %s", *phalBindAddr)
	listen, err := net.Listen("tcp", *phalBindAddr)
	if err != nil {
		log.Fatalf("Failed to listen for the PhalDB service: %v", err)
	}
	if err := g.Serve(listen); err != nil {
		log.Fatalf("Failed to serve the PhalDB service: %v", err)
	}
}

// logConfigPushes drains the server's config update channel.
func logConfigPushes(s *gnmi.Server) {
	for raw := range s.ConfigUpdate.Out() {
		cfg, ok := raw.(*config.ChassisConfig)
		if !ok {
			continue
		}
		log.Infof("Chassis config accepted: chassis %q, %d singleton ports",
			cfg.Chassis.Name, len(cfg.SingletonPorts))
	}
}

// seededFakeSwitch builds the in-memory switch the agent answers from.
func seededFakeSwitch() southbound.SwitchInterface {
	fake := southbound.NewFakeSwitch()
	fake.Respond(southbound.FieldOperStatus, &southbound.DataResponse{OperStatus: events.PortStateUp})
	fake.Respond(southbound.FieldAdminStatus, &southbound.DataResponse{AdminStatus: events.AdminStateEnabled})
	fake.Respond(southbound.FieldMacAddress, &southbound.DataResponse{MacAddress: 0x112233445566})
	fake.Respond(southbound.FieldPortSpeed, &southbound.DataResponse{SpeedBps: 25000000000})
	fake.Respond(southbound.FieldNegotiatedPortSpeed, &southbound.DataResponse{NegotiatedSpeedBps: 25000000000})
	fake.Respond(southbound.FieldLacpSystemPriority, &southbound.DataResponse{LacpSystemPriority: 10})
	fake.Respond(southbound.FieldLacpSystemIDMac, &southbound.DataResponse{LacpSystemIDMac: 0x112233445566})
	fake.Respond(southbound.FieldPortCounters, &southbound.DataResponse{PortCounters: &events.PortCounters{}})
	fake.Respond(southbound.FieldPortQosCounters, &southbound.DataResponse{QosCounters: &events.PortQosCounters{}})
	fake.Respond(southbound.FieldMemoryErrorAlarm, &southbound.DataResponse{Alarm: &events.Alarm{}})
	fake.Respond(southbound.FieldFlowProgrammingExceptionAlarm, &southbound.DataResponse{Alarm: &events.Alarm{}})
	return fake
}
