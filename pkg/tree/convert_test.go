// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package tree

import (
	"testing"
)

func TestMacAddressToString(t *testing.T) {
	if got := MacAddressToString(0x112233445566); got != "11:22:33:44:55:66" {
		t.Errorf("MacAddressToString = %q", got)
	}
	if got := MacAddressToString(0xaabbccddeeff); got != "aa:bb:cc:dd:ee:ff" {
		t.Errorf("MacAddressToString = %q, want lowercase hex", got)
	}
	if got := MacAddressToString(0x1); got != "00:00:00:00:00:01" {
		t.Errorf("MacAddressToString = %q, want zero padding", got)
	}
}

func TestMacAddressFromString(t *testing.T) {
	mac, err := MacAddressFromString("11:22:33:44:55:66")
	if err != nil {
		t.Fatalf("MacAddressFromString failed: %v", err)
	}
	if mac != 0x112233445566 {
		t.Errorf("MacAddressFromString = %#x", mac)
	}
	for _, bad := range []string{"", "11:22:33", "11:22:33:44:55:zz", "11-22-33-44-55-66"} {
		if _, err := MacAddressFromString(bad); err == nil {
			t.Errorf("expected an error for %q", bad)
		}
	}
}

func TestSpeedBpsToString(t *testing.T) {
	if got := SpeedBpsToString(25000000000); got != "SPEED_25GB" {
		t.Errorf("SpeedBpsToString(25G) = %q", got)
	}
	if got := SpeedBpsToString(100000000000); got != "SPEED_100GB" {
		t.Errorf("SpeedBpsToString(100G) = %q", got)
	}
	if got := SpeedBpsToString(1234); got != "SPEED_UNKNOWN" {
		t.Errorf("SpeedBpsToString(1234) = %q", got)
	}
}

func TestSpeedBpsFromString(t *testing.T) {
	bps, ok := SpeedBpsFromString("SPEED_40GB")
	if !ok || bps != 40000000000 {
		t.Errorf("SpeedBpsFromString(SPEED_40GB) = %d, %v", bps, ok)
	}
	if _, ok := SpeedBpsFromString("SPEED_9GB"); ok {
		t.Errorf("expected SPEED_9GB to be unknown")
	}
}
