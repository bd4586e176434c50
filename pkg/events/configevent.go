// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package events

import (
	"github.com/onosproject/gnmi-agent/pkg/config"
)

// ConfigPushedEvent reports that a new chassis config has been pushed and
// accepted. The publisher reacts to it by growing the parse tree.
type ConfigPushedEvent struct {
	EventHappened
	Config *config.ChassisConfig
}

// NewConfigPushedEvent creates a ConfigPushedEvent.
func NewConfigPushedEvent(cfg *config.ChassisConfig) *ConfigPushedEvent {
	return &ConfigPushedEvent{
		EventHappened: happened(KindConfigPushed),
		Config:        cfg,
	}
}
