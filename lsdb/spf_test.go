package lsdb

import (
	"net/netip"
	"testing"

	"mospfd/rtable"
)

// singleIfaceFixture builds a subnetToIface/gwToIface pair for tests that
// only ever have one interface name to report, keyed by neighbor router id.
func singleIfaceFixture(ifaceName string, mask netip.Addr, neighbors ...netip.Addr) (SubnetToIface, GwToIface) {
	nbrs := make(map[netip.Addr]bool, len(neighbors))
	for _, n := range neighbors {
		nbrs[n] = true
	}
	subnetToIface := func(subnet, m netip.Addr) (string, bool) {
		return ifaceName, true
	}
	gwToIface := func(gw netip.Addr) (string, netip.Addr, bool) {
		if nbrs[gw] {
			return ifaceName, mask, true
		}
		return "", netip.Addr{}, false
	}
	return subnetToIface, gwToIface
}

func TestComputeSPFLoneRouter(t *testing.T) {
	db := New()
	self := addr("10.0.0.1")
	mask := addr("255.255.255.0")
	subnet := addr("10.0.0.0")

	db.SetSelf(self, 1, []LSA{{Subnet: subnet, Mask: mask, AdvertisingRID: DirectSentinel}})

	rt := rtable.New()
	subnetToIface, gwToIface := singleIfaceFixture("eth0", mask)
	db.ComputeSPF(self, rt, subnetToIface, gwToIface)

	entries := rt.Snapshot()
	if len(entries) != 1 {
		t.Fatalf("Snapshot() = %+v, want exactly 1 directly-attached entry", entries)
	}
	e := entries[0]
	if !e.IsDirect() || e.Distance != 0 || e.Iface != "eth0" {
		t.Errorf("lone router entry = %+v, want direct, distance 0, iface eth0", e)
	}
}

func TestComputeSPFTwoRouterAdjacency(t *testing.T) {
	db := New()
	a := addr("10.0.0.1")
	b := addr("10.0.0.2")
	linkMask := addr("255.255.255.0")
	linkSubnet := addr("10.0.0.0")
	bOnlySubnet := addr("10.0.1.0")

	db.SetSelf(a, 1, []LSA{{Subnet: linkSubnet, Mask: linkMask, AdvertisingRID: b}})
	db.SetSelf(b, 1, []LSA{
		{Subnet: linkSubnet, Mask: linkMask, AdvertisingRID: a},
		{Subnet: bOnlySubnet, Mask: linkMask, AdvertisingRID: DirectSentinel},
	})

	rt := rtable.New()
	subnetToIface, gwToIface := singleIfaceFixture("eth0", linkMask, b)
	db.ComputeSPF(a, rt, subnetToIface, gwToIface)

	// The shared link is A's own directly-attached subnet too, and A's copy
	// of it (distance 0) is cheaper than B's copy (distance 1), so it wins.
	linkEntry, ok := rt.Lookup(linkSubnet)
	if !ok {
		t.Fatalf("expected an entry for the shared link subnet")
	}
	if !linkEntry.IsDirect() || linkEntry.Distance != 0 {
		t.Errorf("shared-link entry = %+v, want direct at distance 0", linkEntry)
	}

	remote, ok := rt.Lookup(bOnlySubnet)
	if !ok {
		t.Fatalf("expected an entry for b's own subnet reached via b")
	}
	if remote.Distance != 1 || remote.NextHopRID != b || remote.Iface != "eth0" {
		t.Errorf("remote entry = %+v, want distance 1, next hop b, iface eth0", remote)
	}
}

// TestComputeSPFThreeRouterLine builds A -- B -- C and checks that A reaches
// C's host-only subnet at distance 2 via next hop B, while the B-C link
// subnet itself is only 1 hop away (it's directly attached to B).
func TestComputeSPFThreeRouterLine(t *testing.T) {
	db := New()
	a := addr("10.0.0.1")
	b := addr("10.0.0.2")
	c := addr("10.0.0.3")
	maskAB := addr("255.255.255.0")
	subnetAB := addr("10.0.12.0")
	maskBC := addr("255.255.255.0")
	subnetBC := addr("10.0.23.0")
	cOnlySubnet := addr("10.0.3.0")

	db.SetSelf(a, 1, []LSA{{Subnet: subnetAB, Mask: maskAB, AdvertisingRID: b}})
	db.SetSelf(b, 1, []LSA{
		{Subnet: subnetAB, Mask: maskAB, AdvertisingRID: a},
		{Subnet: subnetBC, Mask: maskBC, AdvertisingRID: c},
	})
	db.SetSelf(c, 1, []LSA{
		{Subnet: subnetBC, Mask: maskBC, AdvertisingRID: b},
		{Subnet: cOnlySubnet, Mask: maskBC, AdvertisingRID: DirectSentinel},
	})

	rt := rtable.New()
	subnetToIface, gwToIface := singleIfaceFixture("eth0", maskAB, b)
	db.ComputeSPF(a, rt, subnetToIface, gwToIface)

	// A's own link to B is directly attached to A: distance 0, no next hop.
	linkAB, ok := rt.Lookup(subnetAB)
	if !ok || !linkAB.IsDirect() || linkAB.Distance != 0 {
		t.Errorf("A-B link entry = %+v (ok=%v), want direct at distance 0", linkAB, ok)
	}

	// The B-C link subnet is directly attached to B, so its cost collapses
	// to the cost of reaching B (1 hop), not 2 — it is both routers' LSA,
	// and the cheaper (B's) copy wins.
	linkBC, ok := rt.Lookup(subnetBC)
	if !ok || linkBC.Distance != 1 || linkBC.NextHopRID != b || linkBC.Iface != "eth0" {
		t.Errorf("B-C link entry = %+v (ok=%v), want distance 1 via b, iface eth0", linkBC, ok)
	}

	// C's own host-only subnet has no such shortcut: it is two hops away.
	cEntry, ok := rt.Lookup(cOnlySubnet)
	if !ok || cEntry.Distance != 2 || cEntry.NextHopRID != b {
		t.Errorf("C's own subnet entry = %+v (ok=%v), want distance 2 via b", cEntry, ok)
	}
}

func TestComputeSPFUnreachableRouterExcluded(t *testing.T) {
	db := New()
	a := addr("10.0.0.1")
	island := addr("10.0.0.9")
	mask := addr("255.255.255.0")

	db.SetSelf(a, 1, nil)
	db.SetSelf(island, 1, []LSA{{Subnet: addr("10.0.9.0"), Mask: mask, AdvertisingRID: DirectSentinel}})

	rt := rtable.New()
	subnetToIface, gwToIface := singleIfaceFixture("eth0", mask)
	db.ComputeSPF(a, rt, subnetToIface, gwToIface)

	if _, ok := rt.Lookup(addr("10.0.9.0")); ok {
		t.Errorf("subnet only reachable through an unconnected router must not appear in the forwarding table")
	}
}

// TestComputeSPFDropsStaleDestinationOnRecompute exercises the
// previously-routable -> unreachable transition: a neighbor link vanishing
// from the LSDB (e.g. after a timeout) must remove the destinations it
// uniquely provided on the very next recompute.
func TestComputeSPFDropsStaleDestinationOnRecompute(t *testing.T) {
	db := New()
	a := addr("10.0.0.1")
	b := addr("10.0.0.2")
	mask := addr("255.255.255.0")
	bSubnet := addr("10.0.1.0")

	db.SetSelf(a, 1, []LSA{{Subnet: addr("10.0.0.0"), Mask: mask, AdvertisingRID: b}})
	db.SetSelf(b, 1, []LSA{{Subnet: bSubnet, Mask: mask, AdvertisingRID: DirectSentinel}})

	rt := rtable.New()
	subnetToIface, gwToIface := singleIfaceFixture("eth0", mask, b)
	db.ComputeSPF(a, rt, subnetToIface, gwToIface)

	if _, ok := rt.Lookup(bSubnet); !ok {
		t.Fatalf("b's subnet should be routable while the adjacency exists")
	}

	// The neighbor link to b is gone: a no longer advertises it, and b's
	// entry is removed from the LSDB (as the LSU Generator/dispatcher would
	// do on neighbor expiry).
	db.SetSelf(a, 2, nil)
	db.Remove(b)
	db.ComputeSPF(a, rt, subnetToIface, gwToIface)

	if _, ok := rt.Lookup(bSubnet); ok {
		t.Errorf("b's subnet must be dropped from the forwarding table once b is unreachable")
	}
}

func TestComputeSPFNoSelfLSAClearsTable(t *testing.T) {
	db := New()
	a := addr("10.0.0.1")
	mask := addr("255.255.255.0")

	rt := rtable.New()
	rt.AddEntry(rtable.NewEntry(addr("10.0.0.0"), mask, DirectSentinel, "eth0", 0))

	subnetToIface, gwToIface := singleIfaceFixture("eth0", mask)
	db.ComputeSPF(a, rt, subnetToIface, gwToIface) // LSDB has no entry for a at all

	if len(rt.Snapshot()) != 0 {
		t.Errorf("table should be cleared when the local router has no self-LSA yet")
	}
}
