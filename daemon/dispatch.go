package daemon

import (
	"net/netip"

	"mospfd/iface"
	"mospfd/internal/config"
	"mospfd/internal/logger"
	"mospfd/lsdb"
	"mospfd/wire"
)

// runDispatcher reads frames off one interface's Transport and validates and
// dispatches each one (spec.md §4.4). One goroutine per interface.
func (d *Daemon) runDispatcher(i *iface.Interface) {
	defer d.wg.Done()

	for {
		select {
		case <-d.stop:
			return
		case frame, ok := <-i.Transport.Inbound():
			if !ok {
				return
			}
			d.handleFrame(i, frame)
		}
	}
}

func (d *Daemon) handleFrame(i *iface.Interface, frame iface.Frame) {
	pkt, err := wire.Parse(frame.Data)
	if err != nil {
		logger.Warnf("%s: malformed packet: %v", i.Name, err)
		return
	}
	if pkt.Header.Version != wire.ProtocolVersion {
		logger.Warnf("%s: unsupported version %d", i.Name, pkt.Header.Version)
		return
	}
	if pkt.Header.AreaID != config.AreaID {
		logger.Warnf("%s: dropping packet for foreign area %d", i.Name, pkt.Header.AreaID)
		return
	}
	if !wire.VerifyChecksum(pkt) {
		logger.Warnf("%s: checksum mismatch, dropping packet", i.Name)
		return
	}

	switch pkt.Header.Type {
	case wire.TypeHello:
		d.handleHello(i, frame.Src, pkt)
	case wire.TypeLSU:
		d.handleLSU(i, pkt)
	default:
		logger.Warnf("%s: unknown packet type %d", i.Name, pkt.Header.Type)
	}
}

func (d *Daemon) handleHello(i *iface.Interface, src netip.Addr, pkt *wire.Packet) {
	hello, err := wire.ParseHelloPayload(pkt.Payload)
	if err != nil {
		logger.Warnf("%s: malformed HELLO: %v", i.Name, err)
		return
	}
	rid := wire.Uint32ToAddr(pkt.Header.RouterID)
	mask := wire.Uint32ToAddr(hello.Mask)
	timeout := config.NeighborTimeout(d.helloInterval)

	d.coreLock.Lock()
	defer d.coreLock.Unlock()

	n, exists := i.NeighborByRouterID(rid)
	if exists {
		n.Reset(timeout)
		n.IP = src
		n.Mask = mask
		return
	}

	n = &iface.Neighbor{RouterID: rid, IP: src, Mask: mask}
	n.Reset(timeout)
	i.AddNeighbor(n)
	d.topologyDirty = true
	logger.Infof("new neighbor %s discovered on %s", rid, i.Name)
	d.Events.NotifyObservers(Event{Kind: NeighborUp, Iface: i.Name, RouterID: rid})
}

func (d *Daemon) handleLSU(i *iface.Interface, pkt *wire.Packet) {
	lsu, err := wire.ParseLSUPayload(pkt.Payload)
	if err != nil {
		logger.Warnf("%s: malformed LSU: %v", i.Name, err)
		return
	}
	originator := wire.Uint32ToAddr(pkt.Header.RouterID)
	if originator == d.RouterID {
		return // our own LSU looped back; never process it as foreign
	}

	lsas := make([]lsdb.LSA, len(lsu.LSAs))
	for k, l := range lsu.LSAs {
		lsas[k] = lsdb.LSA{
			Subnet:         wire.Uint32ToAddr(l.Subnet),
			Mask:           wire.Uint32ToAddr(l.Mask),
			AdvertisingRID: wire.Uint32ToAddr(l.AdvertisingRID),
		}
	}

	d.coreLock.Lock()
	defer d.coreLock.Unlock()

	accepted := d.lsdb.AcceptReceived(originator, lsu.Seq, lsas)
	if !accepted {
		logger.Debugf("dropping stale LSU from %s (seq %d)", originator, lsu.Seq)
		return
	}

	d.Events.NotifyObservers(Event{Kind: LSUAccepted, RouterID: originator})
	d.recomputeSPF()
	d.Events.NotifyObservers(Event{Kind: SPFRecomputed})

	if lsu.TTL <= 1 {
		return // do not re-flood once TTL is exhausted
	}
	d.reflood(i, pkt, lsu)
}

// reflood forwards an accepted LSU out every interface except the one it
// arrived on, with its protocol TTL decremented (spec.md §4.4's controlled
// flooding). Must be called with core_lock held.
func (d *Daemon) reflood(arrivedOn *iface.Interface, orig *wire.Packet, lsu wire.LSUPayload) {
	forwarded := wire.NewLSU(orig.Header.RouterID, orig.Header.AreaID, lsu.Seq, lsu.TTL-1, lsu.LSAs)
	buf := forwarded.Encode()

	for _, i := range d.interfaces {
		if i == arrivedOn {
			continue
		}
		for _, n := range i.Neighbors {
			if err := i.Transport.SendUnicast(n.IP, buf); err != nil {
				logger.Warnf("LSU reflood to %s on %s failed: %v", n.RouterID, i.Name, err)
			}
		}
	}
}
