// Package config holds the tunable constants of the mOSPF core.
package config

import "time"

const (
	// MospfVersion is the protocol version carried in every mOSPF header.
	MospfVersion = 2

	// MospfProtocolNumber is the IPv4 protocol number reserved for mOSPF.
	MospfProtocolNumber = 90

	// AreaID is the only area this daemon ever speaks in.
	AreaID = 0

	// HelloInterval is the default period between HELLO emissions on an interface.
	HelloInterval = 5 * time.Second

	// NeighborTimeoutFactor sets NEIGHBOR_TIMEOUT = NeighborTimeoutFactor * HelloInterval.
	NeighborTimeoutFactor = 3

	// LSUInt is the default LSU refresh period (left_interval reset value).
	LSUInt = 30 * time.Second

	// MaxLSUTTL is the TTL stamped on originated LSUs.
	MaxLSUTTL = 16

	// HelloTTL is the TTL stamped on HELLO packets (never forwarded).
	HelloTTL = 1

	// DumpEveryNHellos triggers the routing-table debug dump every Nth Hello Emitter cycle.
	DumpEveryNHellos = 4
)

// AllSPFRoutersIPv4 is the reserved multicast destination for HELLO packets (224.0.0.5).
var AllSPFRoutersIPv4 = [4]byte{224, 0, 0, 5}

// AllSPFRoutersMAC is the Ethernet multicast address that maps to AllSPFRoutersIPv4.
var AllSPFRoutersMAC = [6]byte{0x01, 0x00, 0x5E, 0x00, 0x00, 0x05}

// NeighborTimeout returns NEIGHBOR_TIMEOUT for a given hello interval.
func NeighborTimeout(helloInterval time.Duration) time.Duration {
	return NeighborTimeoutFactor * helloInterval
}
