package iface

import (
	"net/netip"
	"testing"
	"time"
)

func TestInterfaceSubnet(t *testing.T) {
	i := &Interface{
		IP:   netip.MustParseAddr("10.0.0.5"),
		Mask: netip.MustParseAddr("255.255.255.0"),
	}
	want := netip.MustParseAddr("10.0.0.0")
	if got := i.Subnet(); got != want {
		t.Errorf("Subnet() = %s, want %s", got, want)
	}
}

func TestNeighborByRouterIDAndRemove(t *testing.T) {
	rid := netip.MustParseAddr("10.0.0.9")
	i := &Interface{Neighbors: []*Neighbor{{RouterID: rid}}}

	n, ok := i.NeighborByRouterID(rid)
	if !ok || n.RouterID != rid {
		t.Fatalf("NeighborByRouterID(%s) = %+v, %v, want found", rid, n, ok)
	}

	if !i.RemoveNeighbor(rid) {
		t.Errorf("RemoveNeighbor(%s) = false, want true", rid)
	}
	if _, ok := i.NeighborByRouterID(rid); ok {
		t.Errorf("neighbor still present after RemoveNeighbor")
	}
	if i.RemoveNeighbor(rid) {
		t.Errorf("RemoveNeighbor on an already-removed neighbor should report false")
	}
}

func TestNeighborTickExpiry(t *testing.T) {
	n := &Neighbor{}
	n.Reset(2 * time.Second)

	if n.Tick() {
		t.Fatalf("neighbor should not expire on its first tick")
	}
	if !n.Tick() {
		t.Errorf("neighbor should expire once Alive reaches zero")
	}
}

func TestMemTransportUnicastAndMulticast(t *testing.T) {
	aAddr := netip.MustParseAddr("10.0.0.1")
	bAddr := netip.MustParseAddr("10.0.0.2")
	cAddr := netip.MustParseAddr("10.0.0.3")

	a := NewMemTransport(aAddr, 4)
	b := NewMemTransport(bAddr, 4)
	c := NewMemTransport(cAddr, 4)
	Link(a, b)
	Link(a, c)

	if err := a.SendMulticast([]byte("hello")); err != nil {
		t.Fatalf("SendMulticast: %v", err)
	}

	for _, peer := range []*MemTransport{b, c} {
		select {
		case frame := <-peer.Inbound():
			if string(frame.Data) != "hello" || frame.Src != aAddr {
				t.Errorf("frame = %+v, want data=hello src=%s", frame, aAddr)
			}
		case <-time.After(time.Second):
			t.Fatalf("peer never received the multicast frame")
		}
	}

	if err := b.SendUnicast(aAddr, []byte("unicast")); err != nil {
		t.Fatalf("SendUnicast: %v", err)
	}
	select {
	case frame := <-a.Inbound():
		if string(frame.Data) != "unicast" || frame.Src != bAddr {
			t.Errorf("frame = %+v, want data=unicast src=%s", frame, bAddr)
		}
	case <-time.After(time.Second):
		t.Fatalf("a never received the unicast frame")
	}

	// Unicast to an address with no wired peer is a silent drop, not an error.
	if err := b.SendUnicast(netip.MustParseAddr("10.0.0.99"), []byte("nope")); err != nil {
		t.Errorf("SendUnicast to an unknown peer should not error, got %v", err)
	}
}
