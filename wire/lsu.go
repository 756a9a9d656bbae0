package wire

import (
	"encoding/binary"
	"errors"
)

// LSULen is the size of the LSU payload header in bytes (before the LSAs).
const LSULen = 8

// LSALen is the size of a single LSA entry in bytes.
const LSALen = 12

// LSA is one Link-State Advertisement: a (subnet, mask, advertising router id)
// triple. AdvertisingRID == 0 means the subnet is directly attached with no
// neighbor on it.
type LSA struct {
	Subnet         uint32
	Mask           uint32
	AdvertisingRID uint32
}

// Encode serializes a single LSA.
func (l LSA) Encode() []byte {
	buf := make([]byte, LSALen)
	binary.BigEndian.PutUint32(buf[0:4], l.Subnet)
	binary.BigEndian.PutUint32(buf[4:8], l.Mask)
	binary.BigEndian.PutUint32(buf[8:12], l.AdvertisingRID)
	return buf
}

// LSUPayload is the payload carried by an LSU packet: a sequence number, a
// protocol TTL (distinct from the IP/header TTL, decremented on re-flood),
// and the list of LSAs.
type LSUPayload struct {
	Seq  uint16
	TTL  byte
	LSAs []LSA
}

// Encode serializes the LSU payload (header + LSAs).
func (p LSUPayload) Encode() []byte {
	buf := make([]byte, LSULen+len(p.LSAs)*LSALen)
	binary.BigEndian.PutUint16(buf[0:2], p.Seq)
	buf[2] = p.TTL
	buf[3] = 0 // unused
	binary.BigEndian.PutUint32(buf[4:8], uint32(len(p.LSAs)))
	for i, lsa := range p.LSAs {
		copy(buf[LSULen+i*LSALen:], lsa.Encode())
	}
	return buf
}

// ParseLSUPayload decodes an LSU payload.
func ParseLSUPayload(data []byte) (LSUPayload, error) {
	if len(data) < LSULen {
		return LSUPayload{}, errors.New("LSU payload shorter than its own header")
	}

	seq := binary.BigEndian.Uint16(data[0:2])
	ttl := data[2]
	nadv := binary.BigEndian.Uint32(data[4:8])

	remaining := data[LSULen:]
	if uint32(len(remaining)) != nadv*LSALen {
		return LSUPayload{}, errors.New("LSU payload length does not match nadv")
	}

	lsas := make([]LSA, 0, nadv)
	for i := uint32(0); i < nadv; i++ {
		off := i * LSALen
		lsas = append(lsas, LSA{
			Subnet:         binary.BigEndian.Uint32(remaining[off : off+4]),
			Mask:           binary.BigEndian.Uint32(remaining[off+4 : off+8]),
			AdvertisingRID: binary.BigEndian.Uint32(remaining[off+8 : off+12]),
		})
	}

	return LSUPayload{Seq: seq, TTL: ttl, LSAs: lsas}, nil
}

// NewLSU builds a complete LSU packet. lsuTTL is written into the LSU
// payload's own TTL field (MaxLSUTTL on origination, one less on each
// re-flood); the packet carries no per-neighbor addressing, so one encoding
// can be sent to every neighbor.
func NewLSU(routerID, areaID uint32, seq uint16, lsuTTL byte, lsas []LSA) *Packet {
	payload := LSUPayload{Seq: seq, TTL: lsuTTL, LSAs: lsas}
	return NewPacket(TypeLSU, routerID, areaID, payload.Encode())
}
