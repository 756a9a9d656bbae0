package daemon

import (
	"time"

	"mospfd/internal/logger"
)

// runNeighborMonitor ticks once a second, decrementing every neighbor's
// liveness countdown and removing any that reach zero (spec.md §4.2). A
// removal marks the topology dirty so the next LSU Generator cycle
// re-floods without the expired neighbor.
func (d *Daemon) runNeighborMonitor() {
	defer d.wg.Done()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-d.stop:
			return
		case <-ticker.C:
			d.tickNeighbors()
		}
	}
}

func (d *Daemon) tickNeighbors() {
	d.coreLock.Lock()
	defer d.coreLock.Unlock()

	for _, i := range d.interfaces {
		var expired []int
		for idx, n := range i.Neighbors {
			if n.Tick() {
				expired = append(expired, idx)
			}
		}
		for k := len(expired) - 1; k >= 0; k-- {
			idx := expired[k]
			rid := i.Neighbors[idx].RouterID
			i.RemoveNeighbor(rid)
			d.topologyDirty = true
			logger.Infof("neighbor %s on %s timed out", rid, i.Name)
			d.Events.NotifyObservers(Event{Kind: NeighborDown, Iface: i.Name, RouterID: rid})
		}
	}
}
