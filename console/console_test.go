package console

import (
	"net/netip"
	"testing"

	"mospfd/daemon"
)

// TestRegisterWiresAllCommands exercises every registered handler against an
// idle daemon, mainly to guard against a handler panicking on the
// empty-state case (no interfaces, no neighbors, no LSDB entries).
func TestRegisterWiresAllCommands(t *testing.T) {
	d := daemon.New(netip.MustParseAddr("10.0.0.1"))
	ir := NewInputReader("test")
	Register(ir, d)

	for _, cmd := range []Command{"ifaces", "neighbors", "lsdb", "rt", "spf", "loglvl", "exit"} {
		handlers, ok := ir.handlers[cmd]
		if !ok || len(handlers) == 0 {
			t.Fatalf("no handler registered for %q", cmd)
		}
		for _, h := range handlers {
			h(nil)
		}
	}
}

func TestWatchEventsDoesNotPanicOnNeighborUp(t *testing.T) {
	d := daemon.New(netip.MustParseAddr("10.0.0.1"))
	WatchEvents(d)
	d.Events.NotifyObservers(daemon.Event{Kind: daemon.NeighborUp, Iface: "eth0", RouterID: netip.MustParseAddr("10.0.0.2")})
}
