// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package modeldata contains the following model data in gnmi proto struct:
//
//	openconfig-interfaces 2017-07-14,
//	openconfig-if-ethernet 2018-01-05,
//	openconfig-lacp 2017-05-05,
//	openconfig-platform 2016-12-22,
//	openconfig-qos 2016-12-16.
package modeldata

import (
	pb "github.com/openconfig/gnmi/proto/gnmi"
)

const (
	// OpenconfigInterfacesModel is the openconfig YANG model for interfaces.
	OpenconfigInterfacesModel = "openconfig-interfaces"
	// OpenconfigIfEthernetModel is the openconfig YANG model for ethernet interfaces.
	OpenconfigIfEthernetModel = "openconfig-if-ethernet"
	// OpenconfigLacpModel is the openconfig YANG model for LACP.
	OpenconfigLacpModel = "openconfig-lacp"
	// OpenconfigPlatformModel is the openconfig YANG model for platform.
	OpenconfigPlatformModel = "openconfig-platform"
	// OpenconfigQosModel is the openconfig YANG model for QoS.
	OpenconfigQosModel = "openconfig-qos"
)

var (
	// ModelData is a list of supported models.
	ModelData = []*pb.ModelData{{
		Name:         OpenconfigInterfacesModel,
		Organization: "OpenConfig working group",
		Version:      "2017-07-14",
	}, {
		Name:         OpenconfigIfEthernetModel,
		Organization: "OpenConfig working group",
		Version:      "2018-01-05",
	}, {
		Name:         OpenconfigLacpModel,
		Organization: "OpenConfig working group",
		Version:      "2017-05-05",
	}, {
		Name:         OpenconfigPlatformModel,
		Organization: "OpenConfig working group",
		Version:      "2016-12-22",
	}, {
		Name:         OpenconfigQosModel,
		Organization: "OpenConfig working group",
		Version:      "2016-12-16",
	}}
)
