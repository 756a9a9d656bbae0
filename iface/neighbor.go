package iface

import (
	"net/netip"
	"time"
)

// Neighbor is one entry in an interface's neighbor table.
//
// Lifecycle: created on the first HELLO from a previously-unknown router id
// observed on the owning interface, and destroyed when Alive reaches zero.
// Both transitions mark the owning daemon's topology dirty; the daemon
// package, not this one, is responsible for that bookkeeping since it alone
// holds core_lock.
type Neighbor struct {
	RouterID netip.Addr // the neighbor's router id
	IP       netip.Addr // the neighbor's IPv4 address on this shared link
	Mask     netip.Addr // the subnet mask the neighbor advertised for the link
	Alive    int         // seconds remaining before expiry
}

// Reset refreshes a neighbor's liveness countdown, e.g. on HELLO receipt.
func (n *Neighbor) Reset(timeout time.Duration) {
	n.Alive = int(timeout / time.Second)
}

// Tick decrements the liveness countdown by one second and reports whether
// the neighbor has expired.
func (n *Neighbor) Tick() (expired bool) {
	n.Alive--
	return n.Alive <= 0
}
