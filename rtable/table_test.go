package rtable

import (
	"net/netip"
	"testing"
)

func TestAddLookupRemove(t *testing.T) {
	table := New()
	dest := netip.MustParseAddr("10.0.0.0")
	mask := netip.MustParseAddr("255.255.255.0")
	gw := netip.MustParseAddr("10.0.0.2")

	e := NewEntry(dest, mask, gw, "eth0", 2)
	table.AddEntry(e)

	got, ok := table.Lookup(dest)
	if !ok {
		t.Fatalf("Lookup(%s) not found after AddEntry", dest)
	}
	if got != e {
		t.Errorf("Lookup(%s) = %+v, want %+v", dest, got, e)
	}
	if got.IsDirect() {
		t.Errorf("entry with a non-zero next hop should not report IsDirect")
	}

	table.Remove(dest)
	if _, ok := table.Lookup(dest); ok {
		t.Errorf("entry still present after Remove")
	}
}

func TestIsDirect(t *testing.T) {
	direct := NewEntry(netip.MustParseAddr("10.0.0.0"), netip.MustParseAddr("255.255.255.0"), netip.IPv4Unspecified(), "eth0", 0)
	if !direct.IsDirect() {
		t.Errorf("entry with unspecified next hop should report IsDirect")
	}
}

func TestInitWithDefaultGateway(t *testing.T) {
	table := New()
	table.AddEntry(NewEntry(netip.MustParseAddr("10.0.0.0"), netip.MustParseAddr("255.255.255.0"), netip.IPv4Unspecified(), "eth0", 0))

	gwEntry := NewEntry(netip.IPv4Unspecified(), netip.IPv4Unspecified(), netip.MustParseAddr("10.0.0.1"), "eth0", 1)
	table.Init(&gwEntry)

	entries := table.Snapshot()
	if len(entries) != 1 || entries[0] != gwEntry {
		t.Errorf("Snapshot() after Init = %+v, want exactly the default gateway entry", entries)
	}
}

func TestClear(t *testing.T) {
	table := New()
	table.AddEntry(NewEntry(netip.MustParseAddr("10.0.0.0"), netip.MustParseAddr("255.255.255.0"), netip.IPv4Unspecified(), "eth0", 0))
	table.Clear()

	if len(table.Snapshot()) != 0 {
		t.Errorf("table should be empty after Clear")
	}
}
