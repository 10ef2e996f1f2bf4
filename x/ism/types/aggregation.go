package types

import (
	"context"

	errorsmod "cosmossdk.io/errors"

	"github.com/hyperlane-xyz/hyperlane-monorepo-sub001/util"
)

var _ InterchainSecurityModule = (*AggregationISM)(nil)

// AggregationISM fans a shared metadata buffer out to an ordered set of
// sub-verifiers and requires a threshold of them to independently accept the
// message. Sub-verifiers are opaque capabilities; any ISM kind, including
// another aggregation, can participate.
type AggregationISM struct {
	modules   []InterchainSecurityModule
	threshold uint8
}

// NewAggregationISM builds an aggregation over the given sub-modules. The
// slice order is the registration order: it fixes the offset-table layout
// and never changes at verify time.
func NewAggregationISM(modules []InterchainSecurityModule, threshold uint8) (*AggregationISM, error) {
	if threshold == 0 {
		return nil, errorsmod.Wrap(ErrInvalidValidatorSet, "threshold must be positive")
	}

	if int(threshold) > len(modules) {
		return nil, errorsmod.Wrapf(ErrInvalidValidatorSet, "threshold %d exceeds submodule count %d", threshold, len(modules))
	}

	return &AggregationISM{
		modules:   append([]InterchainSecurityModule(nil), modules...),
		threshold: threshold,
	}, nil
}

// ModuleType implements InterchainSecurityModule.
func (a *AggregationISM) ModuleType() uint8 {
	return ModuleTypeAggregation
}

// ModulesAndThreshold returns the registration-ordered sub-verifiers and the
// configured threshold.
func (a *AggregationISM) ModulesAndThreshold() ([]InterchainSecurityModule, uint8) {
	return append([]InterchainSecurityModule(nil), a.modules...), a.threshold
}

// Verify implements InterchainSecurityModule.
//
// The offset table is counted before any sub-verifier runs: underfilled
// metadata is rejected without spending verification effort. Every included
// sub-verifier must then accept its private slice; this is all-provided-
// proofs-must-hold, not a majority vote. A sub-verifier's error propagates
// unchanged.
func (a *AggregationISM) Verify(ctx context.Context, metadata []byte, message util.HyperlaneMessage) (bool, error) {
	ranges, err := DecodeAggregationOffsets(metadata, len(a.modules))
	if err != nil {
		return false, err
	}

	included := 0
	for _, r := range ranges {
		if !r.IsZero() {
			included++
		}
	}
	if included < int(a.threshold) {
		return false, errorsmod.Wrapf(ErrThresholdNotMet, "metadata supplied for %d of %d submodules, need %d", included, len(a.modules), a.threshold)
	}

	for i, sub := range a.modules {
		if ranges[i].IsZero() {
			continue
		}

		slice, err := ranges[i].Slice(metadata)
		if err != nil {
			return false, err
		}

		verified, err := sub.Verify(ctx, slice, message)
		if err != nil {
			return false, err
		}
		if !verified {
			return false, errorsmod.Wrapf(ErrVerificationFailed, "submodule %d (type %d) rejected message %s", i, sub.ModuleType(), message.Id())
		}
	}

	return true, nil
}
