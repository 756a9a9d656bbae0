// Package lsdb is the link-state database: the set of accepted LSA
// bundles keyed by originating router id, and the SPF computation run
// over it.
package lsdb

import "net/netip"

// LSA is one Link-State Advertisement: (subnet, mask, advertising router id).
// AdvertisingRID being the unspecified address (0.0.0.0) is the sentinel
// meaning "this subnet is directly attached and has no neighbor."
type LSA struct {
	Subnet         netip.Addr
	Mask           netip.Addr
	AdvertisingRID netip.Addr
}

// DirectSentinel is the AdvertisingRID value meaning "no neighbor".
var DirectSentinel = netip.IPv4Unspecified()

// Entry is one LSDB row: everything known about a single originating router.
type Entry struct {
	RouterID netip.Addr
	Seq      uint16
	LSAs     []LSA
}

// DB is the link-state database. At most one Entry exists per router id; Seq
// is the highest sequence number yet accepted from that router. Iteration
// order is first-insertion order, since SPF's tie-breaking and the routing
// table builder's "first encounter wins" rule both depend on a stable order.
type DB struct {
	entries map[netip.Addr]*Entry
	order   []netip.Addr
}

// New creates an empty LSDB.
func New() *DB {
	return &DB{entries: make(map[netip.Addr]*Entry)}
}

// Get returns the entry for a router id, if known.
func (db *DB) Get(rid netip.Addr) (Entry, bool) {
	e, ok := db.entries[rid]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// SetSelf unconditionally installs the local router's self-LSA, replacing
// any prior entry for rid regardless of sequence number. Used only by the
// LSU Generator (spec.md §4.3 step 3), which owns sequence_num itself.
func (db *DB) SetSelf(rid netip.Addr, seq uint16, lsas []LSA) {
	db.insertOrReplace(rid, seq, lsas)
}

// AcceptReceived applies the spec.md §4.4 LSU acceptance rule: a new or
// strictly newer sequence number replaces the entry; seq <= the stored
// value is dropped. Reports whether the LSU was accepted.
func (db *DB) AcceptReceived(rid netip.Addr, seq uint16, lsas []LSA) bool {
	if existing, ok := db.entries[rid]; ok && seq <= existing.Seq {
		return false
	}
	db.insertOrReplace(rid, seq, lsas)
	return true
}

func (db *DB) insertOrReplace(rid netip.Addr, seq uint16, lsas []LSA) {
	if _, exists := db.entries[rid]; !exists {
		db.order = append(db.order, rid)
	}
	// Replacing an entry's LSA array releases the old one (spec.md §3's
	// ownership rule); Go's GC does this for us once the old *Entry is
	// unreferenced.
	db.entries[rid] = &Entry{RouterID: rid, Seq: seq, LSAs: lsas}
}

// Remove deletes the entry for a router id, if present.
func (db *DB) Remove(rid netip.Addr) {
	if _, ok := db.entries[rid]; !ok {
		return
	}
	delete(db.entries, rid)
	for i, r := range db.order {
		if r == rid {
			db.order = append(db.order[:i], db.order[i+1:]...)
			break
		}
	}
}

// Entries returns the LSDB entries in stable, first-insertion order.
func (db *DB) Entries() []Entry {
	out := make([]Entry, 0, len(db.order))
	for _, rid := range db.order {
		out = append(out, *db.entries[rid])
	}
	return out
}

// Len returns the number of entries currently in the LSDB.
func (db *DB) Len() int {
	return len(db.order)
}
