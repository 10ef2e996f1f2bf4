package types

import (
	errorsmod "cosmossdk.io/errors"
)

// Module error codes scoped by ModuleName. The condition-to-kind mapping is
// part of the verification contract: integrations match on these, so a
// failing sub-check must always surface as the same registered error.
// NOTE: Error code 1 is reserved as internal error / unknown failure

var (
	ErrMalformedMetadata   = errorsmod.Register(ModuleName, 2, "malformed metadata")
	ErrCommitmentMismatch  = errorsmod.Register(ModuleName, 3, "validator set commitment mismatch")
	ErrThresholdNotMet     = errorsmod.Register(ModuleName, 4, "threshold not met")
	ErrInvalidSignature    = errorsmod.Register(ModuleName, 5, "invalid signature")
	ErrMerkleProofInvalid  = errorsmod.Register(ModuleName, 6, "invalid merkle proof")
	ErrOutOfBounds         = errorsmod.Register(ModuleName, 7, "slice out of bounds")
	ErrVerificationFailed  = errorsmod.Register(ModuleName, 8, "submodule verification failed")
	ErrInvalidValidatorSet = errorsmod.Register(ModuleName, 9, "invalid validator set")
	ErrDomainNotFound      = errorsmod.Register(ModuleName, 10, "domain not found")
)
