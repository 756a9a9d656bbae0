package lsdb

import (
	"net/netip"

	"mospfd/internal/logger"
	"mospfd/rtable"
)

// MaxDist stands in for "infinite"/unreached in the Dijkstra run below.
const MaxDist = 1 << 30

// SubnetToIface resolves the interface whose (ip & mask) equals a directly
// attached subnet. It is the spec.md §4.5 subnet_to_iface collaborator.
type SubnetToIface func(subnet, mask netip.Addr) (ifaceName string, ok bool)

// GwToIface resolves the egress interface for a next-hop router id — the
// interface that has a neighbor with that rid. It is the spec.md §4.5
// gw_to_iface collaborator, and also reports that interface's mask, since
// routed entries use the egress interface's mask rather than the LSA's own.
type GwToIface func(gwRID netip.Addr) (ifaceName string, mask netip.Addr, ok bool)

// ComputeSPF runs Dijkstra over the LSDB rooted at localRID and rewrites rt
// to hold the resulting forwarding entries. Callers must already hold
// core_lock; this function's writes into rt acquire rt_lock internally,
// respecting the core_lock -> rt_lock ordering (spec.md §5).
func (db *DB) ComputeSPF(localRID netip.Addr, rt *rtable.Table, subnetToIface SubnetToIface, gwToIface GwToIface) {
	entries := db.Entries()
	n := len(entries)
	if n == 0 {
		rt.Clear()
		return
	}

	index := make(map[netip.Addr]int, n)
	for i, e := range entries {
		index[e.RouterID] = i
	}

	localIdx, ok := index[localRID]
	if !ok {
		// No self-LSA yet; nothing to root the computation at.
		rt.Clear()
		return
	}

	graph := buildGraph(entries, index)

	dist := make([]int, n)
	gw := make([]netip.Addr, n)
	visited := make([]bool, n)
	for i := range dist {
		dist[i] = MaxDist
	}
	dist[localIdx] = 0
	for i := range gw {
		gw[i] = DirectSentinel
	}

	for _, lsa := range entries[localIdx].LSAs {
		if lsa.AdvertisingRID == DirectSentinel {
			continue
		}
		if j, ok := index[lsa.AdvertisingRID]; ok {
			dist[j] = 1
			gw[j] = lsa.AdvertisingRID
		}
	}

	for iter := 0; iter < n-1; iter++ {
		u := -1
		for v := 0; v < n; v++ {
			if visited[v] {
				continue
			}
			if u == -1 || dist[v] < dist[u] {
				u = v
			}
		}
		if u == -1 || dist[u] == MaxDist {
			break
		}
		visited[u] = true

		for v := 0; v < n; v++ {
			if graph[u][v] == 0 || visited[v] {
				continue
			}
			if dist[u]+1 < dist[v] {
				dist[v] = dist[u] + 1
				if u == localIdx {
					gw[v] = entries[v].RouterID
				} else {
					gw[v] = gw[u]
				}
			}
		}
	}

	previous := rt.Snapshot()
	rt.Clear()

	for j, e := range entries {
		if dist[j] == MaxDist {
			continue // unreachable; no entry
		}

		for _, lsa := range e.LSAs {
			existing, exists := rt.Lookup(lsa.Subnet)
			if exists {
				if dist[j] < existing.Distance {
					updated := existing
					updated.NextHopRID = gw[j]
					updated.Distance = dist[j]
					if gw[j] == DirectSentinel {
						ifaceName, ok := subnetToIface(lsa.Subnet, lsa.Mask)
						if !ok {
							logger.Warnf("No interface for directly attached subnet %s/%s, skipping overwrite", lsa.Subnet, lsa.Mask)
							continue
						}
						updated.Iface = ifaceName
					} else {
						ifaceName, mask, ok := gwToIface(gw[j])
						if !ok {
							logger.Warnf("No interface known for gateway %s, skipping overwrite for %s", gw[j], lsa.Subnet)
							continue
						}
						updated.Iface = ifaceName
						updated.Mask = mask
					}
					rt.AddEntry(updated)
				}
				continue
			}

			if gw[j] == DirectSentinel {
				ifaceName, ok := subnetToIface(lsa.Subnet, lsa.Mask)
				if !ok {
					logger.Warnf("No interface for directly attached subnet %s/%s, skipping", lsa.Subnet, lsa.Mask)
					continue
				}
				rt.AddEntry(rtable.NewEntry(lsa.Subnet, lsa.Mask, DirectSentinel, ifaceName, dist[j]))
				continue
			}

			ifaceName, mask, ok := gwToIface(gw[j])
			if !ok {
				logger.Warnf("No interface known for gateway %s, skipping destination %s", gw[j], lsa.Subnet)
				continue
			}
			rt.AddEntry(rtable.NewEntry(lsa.Subnet, mask, gw[j], ifaceName, dist[j]))
		}
	}

	logNewlyUnreachable(previous, rt)
}

// logNewlyUnreachable reports, at INFO level, destinations that were routable
// before this recompute and are not afterward. Adapted from the teacher's
// Router.getUnreachableHosts BFS (routing/lsdb.go): here it is a pure
// diagnostic over the before/after forwarding table snapshots rather than a
// trigger for clearing per-peer session state, since this daemon keeps no
// such state.
func logNewlyUnreachable(previous []rtable.Entry, rt *rtable.Table) {
	for _, old := range previous {
		if _, stillRoutable := rt.Lookup(old.Destination); !stillRoutable {
			logger.Infof("destination %s/%s is no longer reachable", old.Destination, old.Mask)
		}
	}
}

func buildGraph(entries []Entry, index map[netip.Addr]int) [][]int {
	n := len(entries)
	graph := make([][]int, n)
	for i := range graph {
		graph[i] = make([]int, n)
	}

	for k, e := range entries {
		for _, lsa := range e.LSAs {
			if lsa.AdvertisingRID == DirectSentinel {
				continue
			}
			if j, ok := index[lsa.AdvertisingRID]; ok {
				graph[k][j] = 1
			}
		}
	}
	return graph
}
