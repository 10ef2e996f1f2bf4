package types

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/hyperlane-xyz/hyperlane-monorepo-sub001/util"
)

const (
	signaturePrefix = "\x19Ethereum Signed Message:\n32"
	domainSuffix    = "HYPERLANE"
)

// Checkpoint is the claim validators co-sign: the root of the origin's
// message tree at some index, bound to the origin domain and the merkle tree
// hook instance that produced it.
type Checkpoint struct {
	Root           common.Hash
	Index          uint32
	Origin         uint32
	MerkleTreeHook util.HexAddress
}

// DomainHash separates signatures by origin domain and hook instance so a
// checkpoint signed for one deployment can never be replayed against
// another.
func (c Checkpoint) DomainHash() common.Hash {
	var origin [4]byte
	binary.BigEndian.PutUint32(origin[:], c.Origin)

	return crypto.Keccak256Hash(origin[:], c.MerkleTreeHook.Bytes(), []byte(domainSuffix))
}

// Digest returns the hash validators actually sign: the domain-separated
// checkpoint hash wrapped in the Ethereum signed-message envelope.
func (c Checkpoint) Digest() common.Hash {
	var index [4]byte
	binary.BigEndian.PutUint32(index[:], c.Index)

	domainHash := c.DomainHash()
	checkpointHash := crypto.Keccak256Hash(domainHash.Bytes(), c.Root.Bytes(), index[:])

	return crypto.Keccak256Hash([]byte(signaturePrefix), checkpointHash.Bytes())
}
