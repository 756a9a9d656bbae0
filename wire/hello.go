package wire

import (
	"encoding/binary"
	"errors"
)

// HelloPayloadLen is the size of a HELLO payload in bytes.
const HelloPayloadLen = 8

// HelloPayload is the payload carried by a HELLO packet.
type HelloPayload struct {
	Mask         uint32
	HelloIntSecs uint16
	// Padding is always zero on the wire; kept for round-trip fidelity.
	Padding uint16
}

// Encode serializes the HELLO payload.
func (h HelloPayload) Encode() []byte {
	buf := make([]byte, HelloPayloadLen)
	binary.BigEndian.PutUint32(buf[0:4], h.Mask)
	binary.BigEndian.PutUint16(buf[4:6], h.HelloIntSecs)
	binary.BigEndian.PutUint16(buf[6:8], h.Padding)
	return buf
}

// ParseHelloPayload decodes a HELLO payload.
func ParseHelloPayload(data []byte) (HelloPayload, error) {
	if len(data) != HelloPayloadLen {
		return HelloPayload{}, errors.New("invalid HELLO payload length")
	}
	return HelloPayload{
		Mask:         binary.BigEndian.Uint32(data[0:4]),
		HelloIntSecs: binary.BigEndian.Uint16(data[4:6]),
		Padding:      binary.BigEndian.Uint16(data[6:8]),
	}, nil
}

// NewHello builds a complete HELLO packet.
func NewHello(routerID, areaID, mask uint32, helloIntSecs uint16) *Packet {
	payload := HelloPayload{Mask: mask, HelloIntSecs: helloIntSecs}
	return NewPacket(TypeHello, routerID, areaID, payload.Encode())
}
