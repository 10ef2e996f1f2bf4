package util

import (
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
)

// MessageHeaderLength is the byte length of the fixed message header:
// version(1) ‖ nonce(4) ‖ origin(4) ‖ sender(32) ‖ destination(4) ‖ recipient(32).
// The body runs from the end of the header to the end of the buffer with no
// length prefix.
const MessageHeaderLength = 1 + 4 + 4 + HexAddressLength + 4 + HexAddressLength

// HyperlaneMessage is the decoded form of a dispatched cross-chain message.
// Messages are created once by the origin mailbox and are immutable; all
// verifiers consume them read-only.
type HyperlaneMessage struct {
	Version     uint8
	Nonce       uint32
	Origin      uint32
	Sender      HexAddress
	Destination uint32
	Recipient   HexAddress
	Body        []byte
}

// ParseHyperlaneMessage decodes the byte-exact wire encoding of a message.
func ParseHyperlaneMessage(bz []byte) (HyperlaneMessage, error) {
	if len(bz) < MessageHeaderLength {
		return HyperlaneMessage{}, fmt.Errorf("message too short: expected at least %d bytes, got %d", MessageHeaderLength, len(bz))
	}

	offset := 0

	version := bz[offset]
	offset++

	nonce := binary.BigEndian.Uint32(bz[offset : offset+4])
	offset += 4

	origin := binary.BigEndian.Uint32(bz[offset : offset+4])
	offset += 4

	var sender HexAddress
	copy(sender[:], bz[offset:offset+HexAddressLength])
	offset += HexAddressLength

	destination := binary.BigEndian.Uint32(bz[offset : offset+4])
	offset += 4

	var recipient HexAddress
	copy(recipient[:], bz[offset:offset+HexAddressLength])
	offset += HexAddressLength

	return HyperlaneMessage{
		Version:     version,
		Nonce:       nonce,
		Origin:      origin,
		Sender:      sender,
		Destination: destination,
		Recipient:   recipient,
		Body:        bz[offset:],
	}, nil
}

// Bytes returns the wire encoding of the message.
func (m HyperlaneMessage) Bytes() []byte {
	bz := make([]byte, 0, MessageHeaderLength+len(m.Body))

	bz = append(bz, m.Version)
	bz = binary.BigEndian.AppendUint32(bz, m.Nonce)
	bz = binary.BigEndian.AppendUint32(bz, m.Origin)
	bz = append(bz, m.Sender[:]...)
	bz = binary.BigEndian.AppendUint32(bz, m.Destination)
	bz = append(bz, m.Recipient[:]...)
	bz = append(bz, m.Body...)

	return bz
}

// Id returns the keccak256 hash of the wire encoding. The id is the
// Merkle-tree leaf value at the origin and the implicit subject of every
// checkpoint signature.
func (m HyperlaneMessage) Id() HexAddress {
	return HexAddress(crypto.Keccak256Hash(m.Bytes()))
}

func (m HyperlaneMessage) String() string {
	return m.Id().String()
}
