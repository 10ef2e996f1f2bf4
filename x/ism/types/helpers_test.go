package types_test

import (
	"crypto/ecdsa"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/hyperlane-xyz/hyperlane-monorepo-sub001/util"
	"github.com/hyperlane-xyz/hyperlane-monorepo-sub001/x/ism/internal/merkle"
	"github.com/hyperlane-xyz/hyperlane-monorepo-sub001/x/ism/types"
)

// testValidatorSet derives n deterministic validator keys and their 32-byte
// address words, in enrollment order.
func testValidatorSet(t *testing.T, n int) ([]*ecdsa.PrivateKey, []util.HexAddress) {
	t.Helper()

	keys := make([]*ecdsa.PrivateKey, 0, n)
	addrs := make([]util.HexAddress, 0, n)
	for i := 0; i < n; i++ {
		key, err := crypto.ToECDSA(crypto.Keccak256([]byte{byte(i + 1)}))
		require.NoError(t, err)

		keys = append(keys, key)
		addrs = append(addrs, util.HexAddressFromEthAddress(crypto.PubkeyToAddress(key.PublicKey)))
	}

	return keys, addrs
}

// signDigest produces a 65-byte r ‖ s ‖ v signature with the legacy 27/28
// recovery id relayers put on the wire.
func signDigest(t *testing.T, digest common.Hash, key *ecdsa.PrivateKey) []byte {
	t.Helper()

	sig, err := crypto.Sign(digest.Bytes(), key)
	require.NoError(t, err)

	sig[64] += 27
	return sig
}

func zeroLadder() [merkle.TreeDepth][32]byte {
	var z [merkle.TreeDepth][32]byte
	for i := 1; i < merkle.TreeDepth; i++ {
		z[i] = [32]byte(crypto.Keccak256Hash(z[i-1][:], z[i-1][:]))
	}
	return z
}

// buildProof computes the inclusion proof and root for leaves[index] in a
// depth-32 tree padded with the zero-hash ladder.
func buildProof(t *testing.T, leaves [][32]byte, index uint32) (merkle.Proof, common.Hash) {
	t.Helper()
	require.Less(t, int(index), len(leaves))

	z := zeroLadder()
	nodes := append([][32]byte(nil), leaves...)

	var proof merkle.Proof
	idx := int(index)
	for level := 0; level < merkle.TreeDepth; level++ {
		if sib := idx ^ 1; sib < len(nodes) {
			proof[level] = nodes[sib]
		} else {
			proof[level] = z[level]
		}

		next := make([][32]byte, (len(nodes)+1)/2)
		for i := range next {
			left := nodes[2*i]
			right := z[level]
			if 2*i+1 < len(nodes) {
				right = nodes[2*i+1]
			}
			next[i] = [32]byte(crypto.Keccak256Hash(left[:], right[:]))
		}

		nodes = next
		idx /= 2
	}

	return proof, common.Hash(nodes[0])
}

func testMessage(origin uint32, nonce uint32) util.HyperlaneMessage {
	var sender, recipient util.HexAddress
	sender[31] = 0xaa
	recipient[31] = 0xbb

	return util.HyperlaneMessage{
		Version:     3,
		Nonce:       nonce,
		Origin:      origin,
		Sender:      sender,
		Destination: 100,
		Recipient:   recipient,
		Body:        []byte("hello hyperlane"),
	}
}

func testHook() util.HexAddress {
	var hook util.HexAddress
	hook[31] = 0x42
	return hook
}

// multisigFixture wires a complete happy-path scenario: a configured
// domain, a message proven into a one-message tree, and a checkpoint over
// that tree's root.
type multisigFixture struct {
	keys       []*ecdsa.PrivateKey
	validators []util.HexAddress
	message    util.HyperlaneMessage
	checkpoint types.Checkpoint
	proof      merkle.Proof
}

func newMultisigFixture(t *testing.T, origin uint32, n int) multisigFixture {
	t.Helper()

	keys, validators := testValidatorSet(t, n)
	message := testMessage(origin, 7)

	proof, root := buildProof(t, [][32]byte{[32]byte(message.Id())}, 0)

	return multisigFixture{
		keys:       keys,
		validators: validators,
		message:    message,
		checkpoint: types.Checkpoint{
			Root:           root,
			Index:          0,
			Origin:         origin,
			MerkleTreeHook: testHook(),
		},
		proof: proof,
	}
}

// metadata assembles the wire metadata with signatures from the given
// validator indices, in the given order.
func (f multisigFixture) metadata(t *testing.T, signerIdx ...int) []byte {
	t.Helper()

	digest := f.checkpoint.Digest()
	signatures := make([][]byte, 0, len(signerIdx))
	for _, i := range signerIdx {
		signatures = append(signatures, signDigest(t, digest, f.keys[i]))
	}

	return types.MultisigMetadata{
		Root:           f.checkpoint.Root,
		Index:          f.checkpoint.Index,
		MerkleTreeHook: f.checkpoint.MerkleTreeHook,
		Proof:          f.proof,
		Signatures:     signatures,
		Validators:     f.validators,
	}.Bytes()
}
