package types

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/hyperlane-xyz/hyperlane-monorepo-sub001/util"
)

// DomainValidatorSet is the genesis form of one domain's configuration, with
// addresses as hex strings.
type DomainValidatorSet struct {
	Domain     uint32   `json:"domain"`
	Validators []string `json:"validators"`
	Threshold  uint8    `json:"threshold"`
}

// GenesisState is the exported/imported module state.
type GenesisState struct {
	Domains []DomainValidatorSet `json:"domains"`
}

// DefaultGenesis returns the default module genesis.
func DefaultGenesis() *GenesisState {
	return &GenesisState{}
}

// ValidatorsAndThreshold decodes the genesis entry into the runtime record.
func (d DomainValidatorSet) ValidatorsAndThreshold() (ValidatorsAndThreshold, error) {
	vat := ValidatorsAndThreshold{Threshold: d.Threshold}
	for _, s := range d.Validators {
		v, err := util.DecodeHexAddress(s)
		if err != nil {
			return ValidatorsAndThreshold{}, errorsmod.Wrapf(ErrInvalidValidatorSet, "invalid validator address %q: %v", s, err)
		}
		vat.Validators = append(vat.Validators, v)
	}

	return vat, nil
}

// Validate performs basic genesis state validation.
func (gs GenesisState) Validate() error {
	domains := make(map[uint32]struct{}, len(gs.Domains))
	for _, entry := range gs.Domains {
		if _, exists := domains[entry.Domain]; exists {
			return errorsmod.Wrapf(ErrInvalidValidatorSet, "duplicate domain %d", entry.Domain)
		}
		domains[entry.Domain] = struct{}{}

		vat, err := entry.ValidatorsAndThreshold()
		if err != nil {
			return err
		}

		if err := vat.Validate(); err != nil {
			return errorsmod.Wrapf(err, "domain %d", entry.Domain)
		}
	}

	return nil
}
