// Package rtable is the forwarding table the core writes into.
//
// Per spec.md §1 the forwarding table container itself is an external
// collaborator: "the core writes into it through a documented mutation
// API." This package is that API and its one concrete (in-memory)
// implementation. It is guarded by its own lock, rt_lock, kept distinct
// from the daemon package's core_lock; lock order throughout the repo is
// core_lock then rt_lock, never the reverse (spec.md §5).
package rtable

import (
	"net/netip"
	"sync"
)

// Entry is one forwarding-table row.
type Entry struct {
	Destination netip.Addr // destination subnet
	Mask        netip.Addr
	NextHopRID  netip.Addr // zero value means "directly attached, no next hop"
	Iface       string     // egress interface name
	Distance    int
}

// IsDirect reports whether this entry has no next hop (a directly attached subnet).
func (e Entry) IsDirect() bool {
	return !e.NextHopRID.IsValid() || e.NextHopRID == netip.IPv4Unspecified()
}

// Table is the forwarding table, keyed by destination subnet.
type Table struct {
	mu      sync.Mutex
	entries map[netip.Addr]Entry
}

// New creates an empty forwarding table.
func New() *Table {
	return &Table{entries: make(map[netip.Addr]Entry)}
}

// Clear removes every entry. Mirrors spec.md §6's clear_rtable.
func (t *Table) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = make(map[netip.Addr]Entry)
}

// Init clears the table and, if defaultGW is non-nil, installs it as the
// default route. Mirrors spec.md §6's init_rtable.
func (t *Table) Init(defaultGW *Entry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = make(map[netip.Addr]Entry)
	if defaultGW != nil {
		t.entries[defaultGW.Destination] = *defaultGW
	}
}

// NewEntry constructs an Entry. Mirrors spec.md §6's new_rt_entry; exists
// as a named constructor (rather than a bare struct literal at call sites)
// so the mutation API reads the way spec.md documents it.
func NewEntry(dest, mask, nextHopRID netip.Addr, ifaceName string, distance int) Entry {
	return Entry{
		Destination: dest,
		Mask:        mask,
		NextHopRID:  nextHopRID,
		Iface:       ifaceName,
		Distance:    distance,
	}
}

// Lookup finds the entry for a destination subnet, if any.
func (t *Table) Lookup(dest netip.Addr) (Entry, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[dest]
	return e, ok
}

// AddEntry inserts or overwrites the entry for its destination subnet.
// Mirrors spec.md §6's add_rt_entry; callers (the SPF builder) decide
// whether an overwrite is warranted before calling this.
func (t *Table) AddEntry(e Entry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[e.Destination] = e
}

// Remove deletes the entry for a destination subnet, if present.
func (t *Table) Remove(dest netip.Addr) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, dest)
}

// Snapshot returns a copy of every entry currently in the table, for
// iteration outside the lock (dumps, console commands).
func (t *Table) Snapshot() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Entry, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e)
	}
	return out
}
