// Command mospfd runs a small in-process mOSPF network: a configurable
// chain of simulated routers linked by in-memory transports, each running
// the full daemon (Hello Emitter, Neighbor Monitor, LSU Generator, Packet
// Dispatcher). An operator console attaches to the first router so its
// neighbor table, LSDB, and forwarding table can be inspected live as
// adjacencies form and LSAs flood.
//
// Raw NIC access, real Ethernet/IP framing, and ARP are out of scope for
// this repository (see iface.Transport's doc comment); a real deployment
// would swap MemTransport for a raw-socket implementation of the same
// interface without touching the daemon package at all.
package main

import (
	"flag"
	"fmt"
	"net/netip"
	"time"

	"mospfd/console"
	"mospfd/daemon"
	"mospfd/iface"
	"mospfd/internal/config"
	"mospfd/internal/logger"
)

func main() {
	routerCount := flag.Int("routers", 3, "number of simulated routers in the demo chain")
	flag.Parse()

	if *routerCount < 1 {
		logger.Errorf("-routers must be at least 1, got %d", *routerCount)
	}

	daemons := buildChainTopology(*routerCount)

	console.WatchEvents(daemons[0])
	for _, d := range daemons {
		d.Start()
	}
	fmt.Printf("mospfd demo running: %d router(s) in a chain\n", len(daemons))

	// Give the first Hello cycle a head start before handing control to the
	// operator, so "neighbors" immediately shows something useful.
	// The first HELLOs go out one hello interval after Start.
	time.Sleep(config.HelloInterval + 100*time.Millisecond)

	reader := console.NewInputReader(fmt.Sprintf("router[%s]", daemons[0].RouterID))
	console.Register(reader, daemons[0])
	reader.InputLoop()

	for _, d := range daemons {
		d.Stop()
	}
}

// buildChainTopology builds n routers, each pair of consecutive routers
// sharing one simulated point-to-point subnet. Router k's router id is
// 10.0.0.(k+1); the link between router k and k+1 lives on 10.0.(k+1).0/24.
func buildChainTopology(n int) []*daemon.Daemon {
	daemons := make([]*daemon.Daemon, n)
	for k := 0; k < n; k++ {
		rid := netip.AddrFrom4([4]byte{10, 0, 0, byte(k + 1)})
		daemons[k] = daemon.New(rid)
	}

	for k := 0; k < n-1; k++ {
		mask := netip.AddrFrom4([4]byte{255, 255, 255, 0})
		linkIP := func(host byte) netip.Addr {
			return netip.AddrFrom4([4]byte{10, 0, byte(k + 1), host})
		}

		leftIP := linkIP(1)
		rightIP := linkIP(2)

		leftTransport := iface.NewMemTransport(leftIP, 64)
		rightTransport := iface.NewMemTransport(rightIP, 64)
		iface.Link(leftTransport, rightTransport)

		leftIface := &iface.Interface{
			Name:          fmt.Sprintf("eth%d", k),
			IP:            leftIP,
			Mask:          mask,
			HelloInterval: 5,
			Transport:     leftTransport,
		}
		rightIface := &iface.Interface{
			Name:          fmt.Sprintf("eth%d", k),
			IP:            rightIP,
			Mask:          mask,
			HelloInterval: 5,
			Transport:     rightTransport,
		}

		daemons[k].AddInterface(leftIface)
		daemons[k+1].AddInterface(rightIface)
	}

	return daemons
}
