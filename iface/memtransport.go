package iface

import (
	"net/netip"
	"sync"
)

// MemTransport is an in-memory, channel-based Transport. It has no ARP; it
// knows only its own address on the simulated link (stamped as the source of
// every frame it sends) and is wired to a set of peer MemTransports, keyed by
// their addresses, that represent the other routers reachable on that link. This mirrors the shape of the teacher's single concrete
// sock.Socket (a real net.UDPConn wrapped behind the Socket interface):
// one interface, one concrete transport, reached only through the
// interface type by callers.
//
// It exists so the daemon and its end-to-end tests can exercise HELLO/LSU
// flooding without a real NIC, ARP table, or raw socket — all of which are
// out of scope for this repository (spec.md §1).
type MemTransport struct {
	mu      sync.Mutex
	self    netip.Addr
	peers   map[netip.Addr]*MemTransport
	inbound chan Frame
}

// NewMemTransport creates a transport addressed as selfAddr on its
// simulated link, with no peers wired yet.
func NewMemTransport(selfAddr netip.Addr, bufferSize int) *MemTransport {
	return &MemTransport{
		self:    selfAddr,
		peers:   make(map[netip.Addr]*MemTransport),
		inbound: make(chan Frame, bufferSize),
	}
}

// Link wires two transports together as peers on the same simulated subnet.
func Link(local *MemTransport, remote *MemTransport) {
	local.mu.Lock()
	local.peers[remote.self] = remote
	local.mu.Unlock()

	remote.mu.Lock()
	remote.peers[local.self] = local
	remote.mu.Unlock()
}

// SendMulticast delivers buf to every peer wired to this transport.
func (t *MemTransport) SendMulticast(buf []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, peer := range t.peers {
		deliver(t.self, peer, buf)
	}
	return nil
}

// SendUnicast delivers buf to the peer registered under dst, if any.
// A missing peer is treated as an ARP-resolution failure: the send is
// dropped rather than erroring loudly, matching the "may queue" slack
// spec.md §6 grants iface_send_packet_by_arp.
func (t *MemTransport) SendUnicast(dst netip.Addr, buf []byte) error {
	t.mu.Lock()
	peer, ok := t.peers[dst]
	t.mu.Unlock()

	if !ok {
		return nil
	}
	deliver(t.self, peer, buf)
	return nil
}

func deliver(src netip.Addr, peer *MemTransport, buf []byte) {
	cp := make([]byte, len(buf))
	copy(cp, buf)

	select {
	case peer.inbound <- Frame{Src: src, Data: cp}:
	default:
		// Receiver's buffer is full; drop, same as a lossy link would.
	}
}

// Inbound returns the channel of frames addressed to this transport.
func (t *MemTransport) Inbound() <-chan Frame {
	return t.inbound
}
