package keeper

import (
	"context"

	"cosmossdk.io/collections"
	corestore "cosmossdk.io/core/store"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"

	"github.com/hyperlane-xyz/hyperlane-monorepo-sub001/util"
	"github.com/hyperlane-xyz/hyperlane-monorepo-sub001/x/ism/types"
)

var _ types.ValidatorStore = (*Keeper)(nil)

// Keeper holds the per-origin-domain multisig configuration. Verifiers read
// it through the types.ValidatorStore interface; mutation happens only
// through the admin methods below, never at verify time. Snapshot atomicity
// across a verify call is the host's responsibility, carried by the store
// service it injects.
type Keeper struct {
	domains collections.Map[uint32, types.ValidatorsAndThreshold]
	schema  collections.Schema

	logger log.Logger
}

// NewKeeper creates and returns a new ism module Keeper.
func NewKeeper(storeService corestore.KVStoreService, logger log.Logger) *Keeper {
	sb := collections.NewSchemaBuilder(storeService)

	domains := collections.NewMap(sb, types.DomainsKeyPrefix, "domains", collections.Uint32Key, types.ValidatorsAndThresholdValue)

	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}

	return &Keeper{
		domains: domains,
		schema:  schema,
		logger:  logger.With("module", "x/"+types.ModuleName),
	}
}

// Logger returns the module logger.
func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// ValidatorsAndThreshold implements types.ValidatorStore.
func (k *Keeper) ValidatorsAndThreshold(ctx context.Context, domain uint32) (types.ValidatorsAndThreshold, error) {
	vat, err := k.domains.Get(ctx, domain)
	if err != nil {
		return types.ValidatorsAndThreshold{}, errorsmod.Wrapf(types.ErrDomainNotFound, "no validator set configured for domain %d", domain)
	}

	return vat, nil
}

// Threshold returns the configured signing threshold for a domain.
func (k *Keeper) Threshold(ctx context.Context, domain uint32) (uint8, error) {
	vat, err := k.ValidatorsAndThreshold(ctx, domain)
	if err != nil {
		return 0, err
	}

	return vat.Threshold, nil
}

// Commitment implements types.ValidatorStore. The commitment is recomputed
// by the same pure function the admin path uses, so the stored record and
// the hash the verifier compares against can never drift apart.
func (k *Keeper) Commitment(ctx context.Context, domain uint32) ([]byte, error) {
	vat, err := k.ValidatorsAndThreshold(ctx, domain)
	if err != nil {
		return nil, err
	}

	return vat.Commitment(), nil
}

// SetValidatorsAndThreshold replaces a domain's configuration wholesale.
func (k *Keeper) SetValidatorsAndThreshold(ctx context.Context, domain uint32, vat types.ValidatorsAndThreshold) error {
	if err := vat.Validate(); err != nil {
		return err
	}

	if err := k.domains.Set(ctx, domain, vat); err != nil {
		return err
	}

	k.Logger().Info("set validators and threshold",
		"domain", domain,
		"validators", len(vat.Validators),
		"threshold", vat.Threshold,
		"commitment", types.EncodeHex(vat.Commitment()),
	)

	return nil
}

// EnrollValidator appends a validator to a domain's ordered set. The domain
// must already be configured.
func (k *Keeper) EnrollValidator(ctx context.Context, domain uint32, validator util.HexAddress) error {
	vat, err := k.ValidatorsAndThreshold(ctx, domain)
	if err != nil {
		return err
	}

	for _, v := range vat.Validators {
		if v == validator {
			return errorsmod.Wrapf(types.ErrInvalidValidatorSet, "validator %s already enrolled for domain %d", validator, domain)
		}
	}

	vat.Validators = append(vat.Validators, validator)

	return k.SetValidatorsAndThreshold(ctx, domain, vat)
}

// UnenrollValidator removes a validator from a domain's set. Removals that
// would drop the set below the threshold are rejected.
func (k *Keeper) UnenrollValidator(ctx context.Context, domain uint32, validator util.HexAddress) error {
	vat, err := k.ValidatorsAndThreshold(ctx, domain)
	if err != nil {
		return err
	}

	idx := -1
	for i, v := range vat.Validators {
		if v == validator {
			idx = i
			break
		}
	}
	if idx == -1 {
		return errorsmod.Wrapf(types.ErrInvalidValidatorSet, "validator %s not enrolled for domain %d", validator, domain)
	}

	if len(vat.Validators)-1 < int(vat.Threshold) {
		return errorsmod.Wrapf(types.ErrInvalidValidatorSet, "unenrolling %s would leave %d validators below threshold %d", validator, len(vat.Validators)-1, vat.Threshold)
	}

	vat.Validators = append(vat.Validators[:idx], vat.Validators[idx+1:]...)

	return k.SetValidatorsAndThreshold(ctx, domain, vat)
}

// SetThreshold changes a domain's threshold against its current set.
func (k *Keeper) SetThreshold(ctx context.Context, domain uint32, threshold uint8) error {
	vat, err := k.ValidatorsAndThreshold(ctx, domain)
	if err != nil {
		return err
	}

	vat.Threshold = threshold

	return k.SetValidatorsAndThreshold(ctx, domain, vat)
}

// RemoveDomain drops a domain's configuration entirely.
func (k *Keeper) RemoveDomain(ctx context.Context, domain uint32) error {
	has, err := k.domains.Has(ctx, domain)
	if err != nil {
		return err
	}
	if !has {
		return errorsmod.Wrapf(types.ErrDomainNotFound, "no validator set configured for domain %d", domain)
	}

	return k.domains.Remove(ctx, domain)
}
