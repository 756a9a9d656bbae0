// Package wire implements the on-the-wire mOSPF packet formats: the common
// header, the HELLO and LSU payloads, and the checksum used to validate them.
package wire

import (
	"encoding/binary"
	"errors"
)

// Message types carried in the common header.
const (
	TypeHello = 1
	TypeLSU   = 4
)

// HeaderLen is the size of the common mOSPF header in bytes.
//
// The source spec's prose calls this header "24 bytes" but its own field
// list (version, type, length, router id, area id, checksum, padding) sums
// to 16. Real OSPFv2's 24-byte header spends the extra 8 bytes on
// authentication fields that this spec explicitly puts out of scope
// (spec.md's Non-goals list "authentication"). The field list, not the
// parenthetical byte count, is treated as authoritative here.
const HeaderLen = 16

// Header is the common mOSPF packet header.
type Header struct {
	Version  byte
	Type     byte
	Length   uint16 // header + payload, in bytes
	RouterID uint32
	AreaID   uint32
	Checksum uint16
	// Padding is always zero on the wire; kept for round-trip fidelity.
	Padding uint16
}

// Packet is a parsed mOSPF packet: the common header plus its raw payload.
// Payload is interpreted by HELLO/LSU-specific decoders.
type Packet struct {
	Header  Header
	Payload []byte
}

// Encode serializes the packet (header + payload) into a contiguous byte slice.
func (p *Packet) Encode() []byte {
	buf := make([]byte, HeaderLen+len(p.Payload))
	buf[0] = p.Header.Version
	buf[1] = p.Header.Type
	binary.BigEndian.PutUint16(buf[2:4], p.Header.Length)
	binary.BigEndian.PutUint32(buf[4:8], p.Header.RouterID)
	binary.BigEndian.PutUint32(buf[8:12], p.Header.AreaID)
	binary.BigEndian.PutUint16(buf[12:14], p.Header.Checksum)
	binary.BigEndian.PutUint16(buf[14:16], p.Header.Padding)
	copy(buf[HeaderLen:], p.Payload)
	return buf
}

// Parse decodes a raw byte slice into a Packet. It does not validate the
// checksum, version, or area id — callers run those checks separately so
// that each failure can be logged and the packet dropped without unwinding.
func Parse(data []byte) (*Packet, error) {
	if len(data) < HeaderLen {
		return nil, errors.New("mospf packet shorter than header")
	}

	h := Header{
		Version:  data[0],
		Type:     data[1],
		Length:   binary.BigEndian.Uint16(data[2:4]),
		RouterID: binary.BigEndian.Uint32(data[4:8]),
		AreaID:   binary.BigEndian.Uint32(data[8:12]),
		Checksum: binary.BigEndian.Uint16(data[12:14]),
		Padding:  binary.BigEndian.Uint16(data[14:16]),
	}

	payload := make([]byte, len(data)-HeaderLen)
	copy(payload, data[HeaderLen:])

	return &Packet{Header: h, Payload: payload}, nil
}

// NewPacket builds a packet with its length field set and checksum computed.
func NewPacket(msgType byte, routerID, areaID uint32, payload []byte) *Packet {
	p := &Packet{
		Header: Header{
			Version:  ProtocolVersion,
			Type:     msgType,
			Length:   uint16(HeaderLen + len(payload)),
			RouterID: routerID,
			AreaID:   areaID,
		},
		Payload: payload,
	}
	SetChecksum(p)
	return p
}

// ProtocolVersion is the mOSPF version stamped in every header.
const ProtocolVersion = 2
