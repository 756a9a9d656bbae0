package console

import (
	"fmt"

	"github.com/mitchellh/colorstring"

	"mospfd/daemon"
)

// eventPrinter implements observer.Observer[daemon.Event], printing a one-line
// colorized feed of adjacency and LSU activity as it happens, instead of the
// operator having to poll "neighbors"/"lsdb" to notice a change.
type eventPrinter struct{}

func (eventPrinter) Update(e daemon.Event) {
	switch e.Kind {
	case daemon.NeighborUp:
		colorstring.Printf("[green]+ neighbor %s up on %s[reset]\n", e.RouterID, e.Iface)
	case daemon.NeighborDown:
		colorstring.Printf("[red]- neighbor %s down on %s[reset]\n", e.RouterID, e.Iface)
	case daemon.LSUAccepted:
		colorstring.Printf("[cyan]* LSU accepted from %s[reset]\n", e.RouterID)
	case daemon.SPFRecomputed:
		fmt.Println("  SPF recomputed")
	}
}

// WatchEvents subscribes a live event printer to d, so adjacency/LSU
// activity shows up in the console without an explicit command.
func WatchEvents(d *daemon.Daemon) {
	d.Events.AddObserver(eventPrinter{})
}
