package util

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// HexAddressLength is the canonical byte length of cross-chain addresses.
// Shorter native addresses (e.g. 20-byte EVM addresses) are left-padded.
const HexAddressLength = 32

// HexAddress is the 32-byte address representation used across all Hyperlane
// chains for senders, recipients and hook identifiers.
type HexAddress [HexAddressLength]byte

func (h HexAddress) String() string {
	return "0x" + hex.EncodeToString(h[:])
}

func (h HexAddress) Bytes() []byte {
	return h[:]
}

func (h HexAddress) IsZeroAddress() bool {
	return h == HexAddress{}
}

// EthAddress returns the trailing 20 bytes as an EVM address.
func (h HexAddress) EthAddress() common.Address {
	return common.BytesToAddress(h[12:])
}

// NewHexAddress copies bz into a HexAddress. bz must be exactly 32 bytes.
func NewHexAddress(bz []byte) (HexAddress, error) {
	if len(bz) != HexAddressLength {
		return HexAddress{}, fmt.Errorf("invalid hex address length: expected %d, got %d", HexAddressLength, len(bz))
	}

	var h HexAddress
	copy(h[:], bz)
	return h, nil
}

// HexAddressFromEthAddress left-pads a 20-byte EVM address to the canonical
// 32-byte representation.
func HexAddressFromEthAddress(addr common.Address) HexAddress {
	var h HexAddress
	copy(h[12:], addr.Bytes())
	return h
}

// DecodeHexAddress parses a hexadecimal address string, with or without the
// 0x prefix.
func DecodeHexAddress(s string) (HexAddress, error) {
	s = strings.TrimPrefix(s, "0x")

	bz, err := hex.DecodeString(s)
	if err != nil {
		return HexAddress{}, err
	}

	return NewHexAddress(bz)
}
