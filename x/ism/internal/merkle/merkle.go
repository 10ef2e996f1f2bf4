// Package merkle implements the depth-32 binary incremental Merkle tree used
// to accumulate dispatched message ids at the origin, and the branch math
// needed to verify inclusion proofs against a signed root.
package merkle

import (
	"errors"

	"github.com/ethereum/go-ethereum/crypto"
)

// TreeDepth is the protocol-constant height of the message tree.
const TreeDepth = 32

// MaxLeaves is the number of leaves a depth-32 tree can hold.
const MaxLeaves = (1 << TreeDepth) - 1

// Proof is the ordered list of sibling hashes from leaf level to the root.
type Proof [TreeDepth][32]byte

var ErrTreeFull = errors.New("merkle tree full")

// zeroHashes[i] is the root of an empty subtree of height i.
var zeroHashes [TreeDepth][32]byte

func init() {
	for i := 1; i < TreeDepth; i++ {
		zeroHashes[i] = hashNode(zeroHashes[i-1], zeroHashes[i-1])
	}
}

func hashNode(left, right [32]byte) [32]byte {
	return crypto.Keccak256Hash(left[:], right[:])
}

// BranchRoot folds a leaf up the tree along the given proof. At each level
// the bit of index selects whether the accumulator is the left or the right
// child. The fold never fails; an invalid proof simply produces a root that
// does not match the expected one.
func BranchRoot(leaf [32]byte, proof Proof, index uint32) [32]byte {
	current := leaf
	for i := 0; i < TreeDepth; i++ {
		if (index>>i)&1 == 1 {
			current = hashNode(proof[i], current)
		} else {
			current = hashNode(current, proof[i])
		}
	}
	return current
}

// Verify reports whether proof places leaf at index in the tree with the
// given root.
func Verify(leaf [32]byte, proof Proof, index uint32, root [32]byte) bool {
	return BranchRoot(leaf, proof, index) == root
}

// Tree is the insertion side of the accumulator: it stores only the left
// branch nodes needed to append leaves and recompute the current root.
type Tree struct {
	branch [TreeDepth][32]byte
	count  uint64
}

// Count returns the number of inserted leaves.
func (t *Tree) Count() uint64 {
	return t.count
}

// Insert appends a leaf to the tree.
func (t *Tree) Insert(leaf [32]byte) error {
	if t.count >= MaxLeaves {
		return ErrTreeFull
	}

	t.count++
	size := t.count
	node := leaf
	for i := 0; i < TreeDepth; i++ {
		if size&1 == 1 {
			t.branch[i] = node
			return nil
		}
		node = hashNode(t.branch[i], node)
		size /= 2
	}

	// unreachable: the count check above caps the loop
	return ErrTreeFull
}

// Root returns the current root, padding incomplete subtrees with the
// zero-hash ladder.
func (t *Tree) Root() [32]byte {
	var current [32]byte
	index := t.count
	for i := 0; i < TreeDepth; i++ {
		if (index>>i)&1 == 1 {
			current = hashNode(t.branch[i], current)
		} else {
			current = hashNode(current, zeroHashes[i])
		}
	}
	return current
}
