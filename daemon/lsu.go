package daemon

import (
	"time"

	"mospfd/internal/config"
	"mospfd/internal/logger"
	"mospfd/lsdb"
	"mospfd/wire"
)

// runLSUGenerator rebuilds and floods this router's own LSAs whenever the
// topology changed since the last cycle, or the refresh interval elapses
// regardless (spec.md §4.3). Either trigger bumps sequence_num and
// retriggers SPF.
func (d *Daemon) runLSUGenerator() {
	defer d.wg.Done()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	refresh := d.lsuInterval
	elapsed := time.Duration(0)

	for {
		select {
		case <-d.stop:
			return
		case <-ticker.C:
			elapsed += time.Second
			force := elapsed >= refresh
			if d.maybeRegenerate(force) {
				// spec.md §4.3 step 1 resets left_interval on either
				// trigger, not only the forced refresh: a dirty-triggered
				// flood pushes the next forced refresh back by a full
				// interval, same as a forced one would.
				elapsed = 0
			}
		}
	}
}

// maybeRegenerate regenerates and floods this router's self-LSAs if force is
// set or the topology is dirty, reporting whether it did.
func (d *Daemon) maybeRegenerate(force bool) bool {
	d.coreLock.Lock()
	defer d.coreLock.Unlock()

	if !force && !d.topologyDirty {
		return false
	}
	d.topologyDirty = false
	d.sequenceNum++

	lsas := d.buildSelfLSAsLocked()
	d.lsdb.SetSelf(d.RouterID, d.sequenceNum, lsas)
	logger.Debugf("self LSU regenerated: seq %d, %d LSA(s)", d.sequenceNum, len(lsas))

	d.recomputeSPF()
	d.Events.NotifyObservers(Event{Kind: SPFRecomputed})
	d.floodSelfLocked(lsas)
	return true
}

// buildSelfLSAsLocked derives this router's own LSA set from its current
// interfaces: one LSA per neighbor, plus one LSA for each interface that has
// no neighbor at all (a directly attached, unrouted subnet). Must be called
// with core_lock held.
func (d *Daemon) buildSelfLSAsLocked() []lsdb.LSA {
	var lsas []lsdb.LSA
	for _, i := range d.interfaces {
		if len(i.Neighbors) == 0 {
			lsas = append(lsas, lsdb.LSA{
				Subnet:         i.Subnet(),
				Mask:           i.Mask,
				AdvertisingRID: lsdb.DirectSentinel,
			})
			continue
		}
		for _, n := range i.Neighbors {
			lsas = append(lsas, lsdb.LSA{
				Subnet:         i.Subnet(),
				Mask:           i.Mask,
				AdvertisingRID: n.RouterID,
			})
		}
	}
	return lsas
}

// floodSelfLocked sends this router's own freshly regenerated LSU to every
// neighbor on every interface. Must be called with core_lock held.
func (d *Daemon) floodSelfLocked(lsas []lsdb.LSA) {
	wireLSAs := make([]wire.LSA, len(lsas))
	for i, l := range lsas {
		wireLSAs[i] = wire.LSA{
			Subnet:         wire.AddrToUint32(l.Subnet),
			Mask:           wire.AddrToUint32(l.Mask),
			AdvertisingRID: wire.AddrToUint32(l.AdvertisingRID),
		}
	}

	pkt := wire.NewLSU(wire.AddrToUint32(d.RouterID), config.AreaID, d.sequenceNum, config.MaxLSUTTL, wireLSAs)
	buf := pkt.Encode()

	for _, i := range d.interfaces {
		for _, n := range i.Neighbors {
			if err := i.Transport.SendUnicast(n.IP, buf); err != nil {
				logger.Warnf("LSU send to %s on %s failed: %v", n.RouterID, i.Name, err)
			}
		}
	}
}
