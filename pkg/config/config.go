// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package config defines the chassis configuration pushed to the agent and
// applied to the parse tree.
package config

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
)

// QueueConfig describes one egress queue of a singleton port.
type QueueConfig struct {
	ID      uint32 `json:"id"`
	Purpose string `json:"purpose"`
}

// SingletonPort describes one physical port of the switch.
type SingletonPort struct {
	Name     string        `json:"name"`
	NodeID   uint64        `json:"node"`
	PortID   uint64        `json:"id"`
	SpeedBps uint64        `json:"speed_bps"`
	Queues   []QueueConfig `json:"queues,omitempty"`
}

// Chassis describes the chassis itself.
type Chassis struct {
	Name string `json:"name"`
}

// ChassisConfig is the configuration the agent accepts on a config push.
type ChassisConfig struct {
	Chassis        Chassis         `json:"chassis"`
	SingletonPorts []SingletonPort `json:"singleton_ports"`
}

// Parse decodes a JSON encoded chassis config.
func Parse(data []byte) (*ChassisConfig, error) {
	cfg := &ChassisConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error in unmarshaling chassis config: %v", err)
	}
	return cfg, nil
}

// Load reads and decodes a chassis config file.
func Load(path string) (*ChassisConfig, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error in reading chassis config file: %v", err)
	}
	return Parse(data)
}
