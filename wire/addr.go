package wire

import "net/netip"

// AddrToUint32 converts an IPv4 netip.Addr to its big-endian-ordered integer
// form, as carried in mOSPF header/payload fields.
func AddrToUint32(addr netip.Addr) uint32 {
	b := addr.As4()
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

// Uint32ToAddr is the inverse of AddrToUint32.
func Uint32ToAddr(v uint32) netip.Addr {
	return netip.AddrFrom4([4]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
}
