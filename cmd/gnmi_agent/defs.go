// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"flag"
)

var (
	bindAddr     = flag.String("bind_address", ":9339", "Bind to address:port or just :port for the gNMI service")
	phalBindAddr = flag.String("phal_bind_address", "localhost:28002", "Bind address of the local PHAL attribute database service")
	configFile   = flag.String("chassis_config", "", "JSON file with the chassis startup config")
)
