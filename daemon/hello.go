package daemon

import (
	"net/netip"
	"time"

	"github.com/mitchellh/colorstring"

	"mospfd/iface"
	"mospfd/internal/config"
	"mospfd/internal/logger"
	"mospfd/wire"
)

// helloTarget is a snapshot of the interface fields the Hello Emitter needs,
// taken under core_lock so the send itself can happen lock-free.
type helloTarget struct {
	name      string
	transport iface.Transport
	mask      netip.Addr
	interval  int
}

// runHelloEmitter periodically multicasts a HELLO on every interface
// (spec.md §4.1). Every DumpEveryNHellos-th cycle it also logs the current
// forwarding table, matching the teacher's habit of a periodic debug dump
// rather than a separate ticker for it.
func (d *Daemon) runHelloEmitter() {
	defer d.wg.Done()

	ticker := time.NewTicker(d.helloInterval)
	defer ticker.Stop()

	cycle := 0
	for {
		select {
		case <-d.stop:
			return
		case <-ticker.C:
			d.emitHellos()
			cycle++
			if cycle%config.DumpEveryNHellos == 0 {
				d.dumpRTable()
			}
		}
	}
}

func (d *Daemon) emitHellos() {
	d.coreLock.Lock()
	targets := make([]helloTarget, 0, len(d.interfaces))
	for _, i := range d.interfaces {
		targets = append(targets, helloTarget{
			name:      i.Name,
			transport: i.Transport,
			mask:      i.Mask,
			interval:  i.HelloInterval,
		})
	}
	d.coreLock.Unlock()

	for _, t := range targets {
		pkt := wire.NewHello(
			wire.AddrToUint32(d.RouterID),
			config.AreaID,
			wire.AddrToUint32(t.mask),
			uint16(t.interval),
		)
		if err := t.transport.SendMulticast(pkt.Encode()); err != nil {
			logger.Warnf("HELLO send on %s failed: %v", t.name, err)
			continue
		}
		logger.Tracef("HELLO sent on %s", t.name)
	}
}

// dumpRTable logs the current forwarding table, colorized the same way the
// console's "rt" command is (spec.md §4.1's periodic debug dump).
func (d *Daemon) dumpRTable() {
	entries := d.rt.Snapshot()
	logger.Infof("routing table: %d entr%s", len(entries), pluralIes(len(entries)))
	for _, e := range entries {
		if e.IsDirect() {
			logger.Infof(colorstring.Color("[green]  %s/%s direct via %s[reset]"), e.Destination, e.Mask, e.Iface)
		} else {
			logger.Infof(colorstring.Color("[white]  %s/%s via %s dist %d iface %s[reset]"), e.Destination, e.Mask, e.NextHopRID, e.Distance, e.Iface)
		}
	}
}

func pluralIes(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
