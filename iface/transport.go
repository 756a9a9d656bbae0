// Package iface models a router interface: its address, the neighbors
// discovered on it, and the raw packet transport it rides on.
//
// Raw interface enumeration, ARP resolution, and Ethernet/IP header
// construction are explicitly out of scope for the core (spec.md §1) — they
// are consumed here only through the Transport interface below. The one
// concrete Transport this package ships is an in-memory fake wired between
// peer Interfaces in tests; a real raw-socket/ARP implementation is a
// separate collaborator the core never needs to know about.
package iface

import "net/netip"

// Frame is one inbound mOSPF packet as delivered to the core: the raw bytes
// plus the source address it arrived from on the shared link. The core
// needs Src to populate a newly-discovered neighbor's IP (spec.md §4.4's
// "record the sending interface's IP"); the wire header alone only carries
// the sender's router id, not its link address.
type Frame struct {
	Src  netip.Addr
	Data []byte
}

// Transport is the external, raw-packet-I/O collaborator for one Interface.
// It corresponds to spec.md §6's iface_send_packet /
// iface_send_packet_by_arp primitives.
type Transport interface {
	// SendMulticast transmits buf to the reserved AllSPFRouters group on
	// this interface (used for HELLO). Mirrors iface_send_packet.
	SendMulticast(buf []byte) error

	// SendUnicast transmits buf to dst, resolving its link-layer address
	// via ARP (or an equivalent external resolver) as needed. Mirrors
	// iface_send_packet_by_arp.
	SendUnicast(dst netip.Addr, buf []byte) error

	// Inbound returns the channel of frames received on this interface.
	// The core subscribes to it once per interface.
	Inbound() <-chan Frame
}
