package types

import (
	"context"
)

// ValidatorStore is the read side of the per-domain multisig configuration.
// The keeper implements it; verifiers consume it and never mutate through it.
// The host guarantees the snapshot seen through this interface does not
// change within a single Verify invocation.
type ValidatorStore interface {
	ValidatorsAndThreshold(ctx context.Context, domain uint32) (ValidatorsAndThreshold, error)
	Commitment(ctx context.Context, domain uint32) ([]byte, error)
}
