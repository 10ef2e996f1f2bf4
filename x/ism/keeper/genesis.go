package keeper

import (
	"context"

	"github.com/hyperlane-xyz/hyperlane-monorepo-sub001/x/ism/types"
)

// InitGenesis loads the per-domain configuration from genesis state.
func (k *Keeper) InitGenesis(ctx context.Context, gs *types.GenesisState) error {
	if err := gs.Validate(); err != nil {
		return err
	}

	for _, entry := range gs.Domains {
		vat, err := entry.ValidatorsAndThreshold()
		if err != nil {
			return err
		}

		if err := k.SetValidatorsAndThreshold(ctx, entry.Domain, vat); err != nil {
			return err
		}
	}

	return nil
}

// ExportGenesis writes the current per-domain configuration into genesis
// form.
func (k *Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	gs := types.DefaultGenesis()

	err := k.domains.Walk(ctx, nil, func(domain uint32, vat types.ValidatorsAndThreshold) (bool, error) {
		validators := make([]string, 0, len(vat.Validators))
		for _, v := range vat.Validators {
			validators = append(validators, v.String())
		}

		gs.Domains = append(gs.Domains, types.DomainValidatorSet{
			Domain:     domain,
			Validators: validators,
			Threshold:  vat.Threshold,
		})

		return false, nil
	})
	if err != nil {
		return nil, err
	}

	return gs, nil
}
