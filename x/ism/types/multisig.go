package types

import (
	"context"

	errorsmod "cosmossdk.io/errors"

	"github.com/hyperlane-xyz/hyperlane-monorepo-sub001/util"
	"github.com/hyperlane-xyz/hyperlane-monorepo-sub001/x/ism/internal/merkle"
)

var _ InterchainSecurityModule = (*MultisigISM)(nil)

// MultisigISM verifies that a threshold of the origin domain's validators
// signed a checkpoint of the origin message tree, and that the message id is
// included in that tree at the claimed index.
type MultisigISM struct {
	store ValidatorStore
}

// NewMultisigISM returns a multisig verifier reading configuration from the
// given store.
func NewMultisigISM(store ValidatorStore) *MultisigISM {
	return &MultisigISM{store: store}
}

// ModuleType implements InterchainSecurityModule.
func (m *MultisigISM) ModuleType() uint8 {
	return ModuleTypeLegacyMultisig
}

// Verify implements InterchainSecurityModule.
//
// The flow is: decode metadata, rebuild the checkpoint digest from the
// message origin and the metadata's checkpoint fields, validate the
// signature quorum against the stored commitment, then prove the message id
// into the signed root. Each failed sub-check surfaces as its registered
// error; a true result means every check passed.
func (m *MultisigISM) Verify(ctx context.Context, metadata []byte, message util.HyperlaneMessage) (bool, error) {
	md, err := NewMultisigMetadata(metadata)
	if err != nil {
		return false, err
	}

	stored, err := m.store.ValidatorsAndThreshold(ctx, message.Origin)
	if err != nil {
		return false, err
	}

	commitment, err := m.store.Commitment(ctx, message.Origin)
	if err != nil {
		return false, err
	}

	digest := Checkpoint{
		Root:           md.Root,
		Index:          md.Index,
		Origin:         message.Origin,
		MerkleTreeHook: md.MerkleTreeHook,
	}.Digest()

	claimed := ValidatorsAndThreshold{
		Validators: md.Validators,
		Threshold:  stored.Threshold,
	}
	if err := VerifyQuorum(digest, md.Signatures, claimed, commitment); err != nil {
		return false, err
	}

	if !merkle.Verify([32]byte(message.Id()), md.Proof, md.Index, [32]byte(md.Root)) {
		return false, errorsmod.Wrapf(ErrMerkleProofInvalid, "message %s does not prove into root %s at index %d", message.Id(), md.Root, md.Index)
	}

	return true, nil
}

// ValidatorsAndThreshold returns the configuration that would be used to
// verify the given message, keyed by its origin domain. Read-only; intended
// for host-side accounting.
func (m *MultisigISM) ValidatorsAndThreshold(ctx context.Context, message util.HyperlaneMessage) (ValidatorsAndThreshold, error) {
	return m.store.ValidatorsAndThreshold(ctx, message.Origin)
}
