package iface

import (
	"net/netip"

	"mospfd/internal/assert"
)

// Interface is one of the router's directly-attached links.
type Interface struct {
	Name          string
	IP            netip.Addr
	Mask          netip.Addr
	MAC           [6]byte
	HelloInterval int // seconds

	// Neighbors is the ordered list of neighbors discovered on this
	// interface. Order matters only for deterministic iteration in tests;
	// the protocol itself is insensitive to it.
	Neighbors []*Neighbor

	Transport Transport
}

// Subnet returns the directly-attached subnet this interface advertises
// when it has no neighbors (iface.ip & iface.mask).
func (i *Interface) Subnet() netip.Addr {
	ipBytes := i.IP.As4()
	maskBytes := i.Mask.As4()
	var out [4]byte
	for k := range out {
		out[k] = ipBytes[k] & maskBytes[k]
	}
	return netip.AddrFrom4(out)
}

// AddNeighbor appends a newly-discovered neighbor. Callers must already have
// checked NeighborByRouterID themselves (the dispatcher resets an existing
// neighbor instead of calling this); a duplicate here means that check was
// skipped, so it is a programming error rather than a runtime condition.
func (i *Interface) AddNeighbor(n *Neighbor) {
	_, exists := i.NeighborByRouterID(n.RouterID)
	assert.Assert(!exists, "neighbor already exists on interface %s: %s", i.Name, n.RouterID)
	i.Neighbors = append(i.Neighbors, n)
}

// NeighborByRouterID returns the neighbor entry with the given router id, if any.
func (i *Interface) NeighborByRouterID(rid netip.Addr) (*Neighbor, bool) {
	for _, n := range i.Neighbors {
		if n.RouterID == rid {
			return n, true
		}
	}
	return nil, false
}

// RemoveNeighbor removes the neighbor with the given router id, reporting
// whether one was found and removed.
func (i *Interface) RemoveNeighbor(rid netip.Addr) bool {
	for idx, n := range i.Neighbors {
		if n.RouterID == rid {
			i.Neighbors = append(i.Neighbors[:idx], i.Neighbors[idx+1:]...)
			return true
		}
	}
	return false
}
