package types

import (
	"bytes"
	"context"

	errorsmod "cosmossdk.io/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/hyperlane-xyz/hyperlane-monorepo-sub001/util"
)

// ValidatorsAndThreshold is the per-origin-domain multisig configuration:
// an ordered validator list and the number of them that must have signed a
// checkpoint. The list order is canonical; signature lists must follow it.
type ValidatorsAndThreshold struct {
	Validators []util.HexAddress
	Threshold  uint8
}

// Validate checks the structural invariants of the configuration.
func (v ValidatorsAndThreshold) Validate() error {
	if v.Threshold == 0 {
		return errorsmod.Wrap(ErrInvalidValidatorSet, "threshold must be positive")
	}

	if int(v.Threshold) > len(v.Validators) {
		return errorsmod.Wrapf(ErrInvalidValidatorSet, "threshold %d exceeds validator count %d", v.Threshold, len(v.Validators))
	}

	seen := make(map[util.HexAddress]struct{}, len(v.Validators))
	for _, val := range v.Validators {
		if val.IsZeroAddress() {
			return errorsmod.Wrap(ErrInvalidValidatorSet, "validator address must be non-zero")
		}
		if _, exists := seen[val]; exists {
			return errorsmod.Wrapf(ErrInvalidValidatorSet, "duplicate validator %s", val)
		}
		seen[val] = struct{}{}
	}

	return nil
}

// Commitment returns the hash binding this configuration.
func (v ValidatorsAndThreshold) Commitment() []byte {
	return ValidatorSetCommitment(v.Threshold, v.Validators)
}

// ValidatorSetCommitment hashes a threshold and ordered validator list into
// the commitment the store keeps per domain. Metadata claiming a validator
// set must recompute to the stored value, so a relayer cannot substitute an
// unauthorized set. Pure; shared by the admin and verify paths.
func ValidatorSetCommitment(threshold uint8, validators []util.HexAddress) []byte {
	parts := make([][]byte, 0, len(validators)+1)
	parts = append(parts, []byte{threshold})
	for _, v := range validators {
		parts = append(parts, v.Bytes())
	}

	return crypto.Keccak256(parts...)
}

// RecoverEthSigner recovers the Ethereum address that produced a 65-byte
// r ‖ s ‖ v signature over digest. Both the raw 0/1 and the legacy 27/28
// recovery id encodings are accepted.
func RecoverEthSigner(digest common.Hash, signature []byte) (common.Address, error) {
	if len(signature) != SignatureLength {
		return common.Address{}, errorsmod.Wrapf(ErrInvalidSignature, "signature must be %d bytes, got %d", SignatureLength, len(signature))
	}

	sig := make([]byte, SignatureLength)
	copy(sig, signature)
	if sig[64] >= 27 {
		sig[64] -= 27
	}

	pubKey, err := crypto.SigToPub(digest.Bytes(), sig)
	if err != nil {
		return common.Address{}, errorsmod.Wrap(ErrInvalidSignature, err.Error())
	}

	return crypto.PubkeyToAddress(*pubKey), nil
}

// VerifyQuorum decides whether signatures represent a valid, deduplicated,
// threshold-satisfying quorum over digest, drawn from the claimed validator
// set, and whether that claimed set matches the stored commitment.
//
// The scan walks signatures and validators with two monotonic cursors: each
// recovered signer must appear in the claimed list at or after the previous
// match. The validator cursor never resets, which is what rejects duplicate
// and out-of-order signatures even though each one is individually valid. A
// membership check without order enforcement is not an acceptable
// substitute.
//
// Signatures past the quorum are ignored; a failing signature before the
// quorum is reached is fatal.
func VerifyQuorum(digest common.Hash, signatures [][]byte, claimed ValidatorsAndThreshold, storedCommitment []byte) error {
	if !bytes.Equal(claimed.Commitment(), storedCommitment) {
		return errorsmod.Wrapf(ErrCommitmentMismatch, "claimed validator set does not hash to the stored commitment %s", EncodeHex(storedCommitment))
	}

	threshold := int(claimed.Threshold)
	if len(signatures) < threshold {
		return errorsmod.Wrapf(ErrThresholdNotMet, "got %d signatures, need %d", len(signatures), threshold)
	}

	validated := 0
	cursor := 0
	for _, sig := range signatures {
		if validated == threshold {
			break
		}

		signer, err := RecoverEthSigner(digest, sig)
		if err != nil {
			return err
		}

		want := util.HexAddressFromEthAddress(signer)
		for cursor < len(claimed.Validators) && claimed.Validators[cursor] != want {
			cursor++
		}
		if cursor == len(claimed.Validators) {
			return errorsmod.Wrapf(ErrInvalidSignature, "signer %s is not among the remaining claimed validators", signer)
		}

		cursor++
		validated++
	}

	if validated < threshold {
		return errorsmod.Wrapf(ErrThresholdNotMet, "validated %d signers, need %d", validated, threshold)
	}

	return nil
}

var _ ValidatorStore = (*StaticValidatorStore)(nil)

// StaticValidatorStore is a fixed in-memory ValidatorStore for hosts that
// configure validator sets at construction time instead of through a keeper.
type StaticValidatorStore struct {
	domains map[uint32]ValidatorsAndThreshold
}

// NewStaticValidatorStore validates every configured set and returns the
// frozen store.
func NewStaticValidatorStore(domains map[uint32]ValidatorsAndThreshold) (*StaticValidatorStore, error) {
	copied := make(map[uint32]ValidatorsAndThreshold, len(domains))
	for domain, vat := range domains {
		if err := vat.Validate(); err != nil {
			return nil, errorsmod.Wrapf(err, "domain %d", domain)
		}
		copied[domain] = vat
	}

	return &StaticValidatorStore{domains: copied}, nil
}

func (s *StaticValidatorStore) ValidatorsAndThreshold(_ context.Context, domain uint32) (ValidatorsAndThreshold, error) {
	vat, ok := s.domains[domain]
	if !ok {
		return ValidatorsAndThreshold{}, errorsmod.Wrapf(ErrDomainNotFound, "domain %d", domain)
	}

	return vat, nil
}

func (s *StaticValidatorStore) Commitment(ctx context.Context, domain uint32) ([]byte, error) {
	vat, err := s.ValidatorsAndThreshold(ctx, domain)
	if err != nil {
		return nil, err
	}

	return vat.Commitment(), nil
}
