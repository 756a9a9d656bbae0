// Package daemon is the mOSPF core: the component that owns core_lock and
// orchestrates the Hello Emitter, Neighbor Monitor, LSU Generator, and
// Packet Dispatcher over a set of interfaces, an LSDB, and a forwarding
// table (spec.md §4, §5).
package daemon

import (
	"net/netip"
	"sync"
	"time"

	"mospfd/iface"
	"mospfd/internal/config"
	"mospfd/internal/logger"
	"mospfd/lsdb"
	"mospfd/rtable"
	"mospfd/util/observer"
)

// Daemon is one running mOSPF instance: one router id, its interfaces, its
// LSDB, and the forwarding table it maintains.
//
// core_lock guards everything that the Hello Emitter, Neighbor Monitor, LSU
// Generator, and Packet Dispatcher all touch: the interface list and their
// neighbor tables, the LSDB, topologyDirty, and sequenceNum. rtable.Table
// has its own lock (rt_lock); per spec.md §5 the lock order is always
// core_lock then rt_lock, and ComputeSPF (called with core_lock held)
// acquires rt_lock internally, so callers here never take rt_lock directly.
type Daemon struct {
	RouterID netip.Addr

	coreLock sync.Mutex

	interfaces []*iface.Interface
	lsdb       *lsdb.DB
	rt         *rtable.Table

	// topologyDirty is set whenever an interface's directly-attached
	// subnet set or neighbor adjacency set changes: a neighbor forms,
	// expires, or an interface is added. The LSU Generator checks and
	// clears it each cycle (spec.md §4.3 step 2).
	topologyDirty bool

	// sequenceNum is this router's own LSU sequence counter, owned
	// exclusively by the LSU Generator.
	sequenceNum uint16

	helloInterval time.Duration
	lsuInterval   time.Duration

	// Events notifies observers of adjacency changes, accepted LSUs, and
	// SPF recomputation — the console subscribes to it for a live feed
	// instead of polling the daemon's state.
	Events *observer.Observable[Event]

	stop chan struct{}
	wg   sync.WaitGroup
}

// New creates a daemon for routerID with no interfaces attached yet.
func New(routerID netip.Addr) *Daemon {
	return &Daemon{
		RouterID:      routerID,
		lsdb:          lsdb.New(),
		rt:            rtable.New(),
		topologyDirty: true, // force an initial self-LSA on the first LSU cycle
		helloInterval: config.HelloInterval,
		lsuInterval:   config.LSUInt,
		Events:        newEvents(),
		stop:          make(chan struct{}),
	}
}

// AddInterface attaches an interface to the daemon. Must be called before
// Start; the component goroutines assume the interface list is fixed once
// running.
func (d *Daemon) AddInterface(i *iface.Interface) {
	d.coreLock.Lock()
	defer d.coreLock.Unlock()
	d.interfaces = append(d.interfaces, i)
	d.topologyDirty = true
}

// RTable returns the daemon's forwarding table, for console inspection.
// Safe to call concurrently; rtable.Table is independently locked.
func (d *Daemon) RTable() *rtable.Table {
	return d.rt
}

// LSDB returns the daemon's link-state database, for console inspection.
// Callers must not mutate entries obtained through it; treat it as read-only
// outside the daemon's own goroutines.
func (d *Daemon) LSDB() *lsdb.DB {
	return d.lsdb
}

// Interfaces returns a snapshot of the attached interfaces, for console
// inspection.
func (d *Daemon) Interfaces() []*iface.Interface {
	d.coreLock.Lock()
	defer d.coreLock.Unlock()
	out := make([]*iface.Interface, len(d.interfaces))
	copy(out, d.interfaces)
	return out
}

// Start launches the four components as goroutines: Hello Emitter, Neighbor
// Monitor, LSU Generator, and one Packet Dispatcher per interface.
func (d *Daemon) Start() {
	d.wg.Add(3 + len(d.interfaces))
	go d.runHelloEmitter()
	go d.runNeighborMonitor()
	go d.runLSUGenerator()
	for _, i := range d.interfaces {
		go d.runDispatcher(i)
	}
	logger.Infof("mospfd started, router id %s, %d interface(s)", d.RouterID, len(d.interfaces))
}

// Stop signals every component goroutine to exit and waits for them.
func (d *Daemon) Stop() {
	close(d.stop)
	d.wg.Wait()
}

// subnetToIface implements lsdb.SubnetToIface: the interface whose own
// (ip & mask) equals the given directly-attached subnet (spec.md §4.5).
// Must be called with core_lock held.
func (d *Daemon) subnetToIface(subnet, mask netip.Addr) (string, bool) {
	for _, i := range d.interfaces {
		if i.Subnet() == subnet && i.Mask == mask {
			return i.Name, true
		}
	}
	return "", false
}

// gwToIface implements lsdb.GwToIface: the interface that has a neighbor
// with the given router id, plus that interface's mask (spec.md §4.5). Must
// be called with core_lock held.
func (d *Daemon) gwToIface(gwRID netip.Addr) (string, netip.Addr, bool) {
	for _, i := range d.interfaces {
		if _, ok := i.NeighborByRouterID(gwRID); ok {
			return i.Name, i.Mask, true
		}
	}
	return "", netip.Addr{}, false
}

// recomputeSPF rebuilds the forwarding table from the current LSDB. Must be
// called with core_lock held (it only acquires rt_lock, never releases and
// reacquires core_lock, honoring the §5 lock order).
func (d *Daemon) recomputeSPF() {
	d.lsdb.ComputeSPF(d.RouterID, d.rt, d.subnetToIface, d.gwToIface)
}

// ForceSPF recomputes the forwarding table from the current LSDB on demand,
// outside the LSU Generator's own cycle. Intended for the operator console's
// "spf" command.
func (d *Daemon) ForceSPF() {
	d.coreLock.Lock()
	defer d.coreLock.Unlock()
	d.recomputeSPF()
	d.Events.NotifyObservers(Event{Kind: SPFRecomputed})
}
