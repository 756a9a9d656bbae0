package daemon

import (
	"net/netip"

	"mospfd/util/observer"
)

// EventKind classifies a daemon Event for an observer that only cares about
// some of them.
type EventKind int

const (
	// NeighborUp fires when a new adjacency is formed on an interface.
	NeighborUp EventKind = iota
	// NeighborDown fires when a neighbor's liveness timer expires.
	NeighborDown
	// LSUAccepted fires when an LSU passes the sequence-number freshness
	// check and is installed in the LSDB.
	LSUAccepted
	// SPFRecomputed fires whenever the forwarding table is rebuilt.
	SPFRecomputed
)

// Event is one notable occurrence in the daemon's lifecycle, delivered to
// anything observing Daemon.Events. Iface and RouterID are zero-valued
// (empty string / invalid Addr) for kinds that don't apply to them.
type Event struct {
	Kind     EventKind
	Iface    string
	RouterID netip.Addr
}

// newEvents creates Events as an Observable[Event], grounded on the teacher's
// generic util/observer package. The console attaches observers to this to
// print adjacency/LSU activity live instead of polling.
func newEvents() *observer.Observable[Event] {
	return observer.NewObservable[Event]()
}
