package types

import (
	"encoding/binary"

	errorsmod "cosmossdk.io/errors"
	"github.com/ethereum/go-ethereum/common"

	"github.com/hyperlane-xyz/hyperlane-monorepo-sub001/util"
	"github.com/hyperlane-xyz/hyperlane-monorepo-sub001/x/ism/internal/merkle"
)

const (
	// SignatureLength is the r(32) ‖ s(32) ‖ v(1) ECDSA encoding.
	SignatureLength = 65

	// multisigMetadataPrefixLength covers everything before the signature
	// region: root(32) ‖ index(4) ‖ hook(32) ‖ proof(32×32) ‖ sigCount(1).
	multisigMetadataPrefixLength = 32 + 4 + util.HexAddressLength + merkle.TreeDepth*32 + 1
)

// MultisigMetadata is the relayer-constructed proof blob for the multisig
// ISM. It is decoded once per verify call and discarded.
//
// Wire layout:
//
//	[   0:  32] checkpoint root
//	[  32:  36] checkpoint index (big endian)
//	[  36:  68] origin merkle tree hook address
//	[  68:1092] merkle proof, 32 siblings of 32 bytes
//	[1092:1093] signature count
//	[1093:....] signatures, 65 bytes each
//	[....:....] claimed validator addresses, 32 bytes each
//
// The one-byte signature count makes the split between the 65-byte signature
// region and the 32-byte validator region unambiguous.
type MultisigMetadata struct {
	Root           common.Hash
	Index          uint32
	MerkleTreeHook util.HexAddress
	Proof          merkle.Proof
	Signatures     [][]byte
	Validators     []util.HexAddress
}

// NewMultisigMetadata parses a raw metadata byte slice into a structured
// format.
func NewMultisigMetadata(metadata []byte) (MultisigMetadata, error) {
	if len(metadata) < multisigMetadataPrefixLength {
		return MultisigMetadata{}, errorsmod.Wrapf(ErrMalformedMetadata, "metadata too short: expected at least %d bytes, got %d", multisigMetadataPrefixLength, len(metadata))
	}

	offset := 0

	root := common.BytesToHash(metadata[offset : offset+32])
	offset += 32

	index := binary.BigEndian.Uint32(metadata[offset : offset+4])
	offset += 4

	var hook util.HexAddress
	copy(hook[:], metadata[offset:offset+util.HexAddressLength])
	offset += util.HexAddressLength

	var proof merkle.Proof
	for i := 0; i < merkle.TreeDepth; i++ {
		copy(proof[i][:], metadata[offset:offset+32])
		offset += 32
	}

	sigCount := int(metadata[offset])
	offset++

	if len(metadata[offset:]) < sigCount*SignatureLength {
		return MultisigMetadata{}, errorsmod.Wrapf(ErrMalformedMetadata, "metadata too short for %d signatures", sigCount)
	}

	signatures := make([][]byte, 0, sigCount)
	for i := 0; i < sigCount; i++ {
		signatures = append(signatures, metadata[offset:offset+SignatureLength])
		offset += SignatureLength
	}

	rest := metadata[offset:]
	if len(rest) == 0 || len(rest)%util.HexAddressLength != 0 {
		return MultisigMetadata{}, errorsmod.Wrapf(ErrMalformedMetadata, "validator region must be a non-empty multiple of %d bytes, got %d", util.HexAddressLength, len(rest))
	}

	validators := make([]util.HexAddress, 0, len(rest)/util.HexAddressLength)
	for len(rest) > 0 {
		var v util.HexAddress
		copy(v[:], rest[:util.HexAddressLength])
		validators = append(validators, v)
		rest = rest[util.HexAddressLength:]
	}

	return MultisigMetadata{
		Root:           root,
		Index:          index,
		MerkleTreeHook: hook,
		Proof:          proof,
		Signatures:     signatures,
		Validators:     validators,
	}, nil
}

// Bytes re-encodes the metadata into its wire layout. Used by tooling and
// tests; verification only ever decodes.
func (m MultisigMetadata) Bytes() []byte {
	size := multisigMetadataPrefixLength + len(m.Signatures)*SignatureLength + len(m.Validators)*util.HexAddressLength
	bz := make([]byte, 0, size)

	bz = append(bz, m.Root.Bytes()...)
	bz = binary.BigEndian.AppendUint32(bz, m.Index)
	bz = append(bz, m.MerkleTreeHook.Bytes()...)
	for i := 0; i < merkle.TreeDepth; i++ {
		bz = append(bz, m.Proof[i][:]...)
	}
	bz = append(bz, byte(len(m.Signatures)))
	for _, sig := range m.Signatures {
		bz = append(bz, sig...)
	}
	for _, v := range m.Validators {
		bz = append(bz, v.Bytes()...)
	}

	return bz
}

// MetadataRangeSize is the encoded size of one aggregation offset pair:
// start(4) ‖ end(4), both big endian.
const MetadataRangeSize = 8

// MetadataRange addresses one sub-module's private slice of the shared
// aggregation metadata buffer. The zero range means no metadata was supplied
// for that sub-module.
type MetadataRange struct {
	Start uint32
	End   uint32
}

func (r MetadataRange) IsZero() bool {
	return r.Start == 0 && r.End == 0
}

// Slice extracts the addressed bytes from buf.
func (r MetadataRange) Slice(buf []byte) ([]byte, error) {
	if r.Start > r.End || int(r.End) > len(buf) {
		return nil, errorsmod.Wrapf(ErrOutOfBounds, "range [%d:%d] exceeds %d-byte buffer", r.Start, r.End, len(buf))
	}

	return buf[r.Start:r.End], nil
}

// DecodeAggregationOffsets reads the n-entry offset table from the front of
// an aggregation metadata buffer. The table order is the sub-module
// registration order and is authoritative; slices are not required to be
// adjacent or in positional order.
func DecodeAggregationOffsets(metadata []byte, n int) ([]MetadataRange, error) {
	if len(metadata) < n*MetadataRangeSize {
		return nil, errorsmod.Wrapf(ErrMalformedMetadata, "offset table for %d modules needs %d bytes, got %d", n, n*MetadataRangeSize, len(metadata))
	}

	ranges := make([]MetadataRange, 0, n)
	for i := 0; i < n; i++ {
		word := metadata[i*MetadataRangeSize : (i+1)*MetadataRangeSize]
		ranges = append(ranges, MetadataRange{
			Start: binary.BigEndian.Uint32(word[:4]),
			End:   binary.BigEndian.Uint32(word[4:]),
		})
	}

	return ranges, nil
}

// EncodeAggregationOffsets writes the offset table.
func EncodeAggregationOffsets(ranges []MetadataRange) []byte {
	bz := make([]byte, 0, len(ranges)*MetadataRangeSize)
	for _, r := range ranges {
		bz = binary.BigEndian.AppendUint32(bz, r.Start)
		bz = binary.BigEndian.AppendUint32(bz, r.End)
	}
	return bz
}

// EncodeAggregationMetadata builds a full aggregation buffer from one
// optional blob per sub-module, in registration order. A nil blob encodes as
// the zero range.
func EncodeAggregationMetadata(blobs [][]byte) []byte {
	tableLen := len(blobs) * MetadataRangeSize

	ranges := make([]MetadataRange, len(blobs))
	cursor := uint32(tableLen)
	for i, blob := range blobs {
		if blob == nil {
			continue
		}
		ranges[i] = MetadataRange{Start: cursor, End: cursor + uint32(len(blob))}
		cursor += uint32(len(blob))
	}

	bz := EncodeAggregationOffsets(ranges)
	for _, blob := range blobs {
		bz = append(bz, blob...)
	}

	return bz
}
