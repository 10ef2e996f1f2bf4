package types

import (
	"encoding/json"
	"fmt"

	collcodec "cosmossdk.io/collections/codec"
	errorsmod "cosmossdk.io/errors"

	"github.com/hyperlane-xyz/hyperlane-monorepo-sub001/util"
)

// ValidatorsAndThresholdValue is the collections value codec for the
// per-domain configuration record. The binary form reuses the wire layout of
// the commitment preimage: threshold(1) ‖ validators(32 each).
var ValidatorsAndThresholdValue collcodec.ValueCodec[ValidatorsAndThreshold] = validatorsAndThresholdCodec{}

type validatorsAndThresholdCodec struct{}

func (validatorsAndThresholdCodec) Encode(value ValidatorsAndThreshold) ([]byte, error) {
	bz := make([]byte, 0, 1+len(value.Validators)*util.HexAddressLength)
	bz = append(bz, value.Threshold)
	for _, v := range value.Validators {
		bz = append(bz, v.Bytes()...)
	}

	return bz, nil
}

func (validatorsAndThresholdCodec) Decode(b []byte) (ValidatorsAndThreshold, error) {
	if len(b) < 1 || (len(b)-1)%util.HexAddressLength != 0 {
		return ValidatorsAndThreshold{}, fmt.Errorf("invalid validators and threshold encoding: %d bytes", len(b))
	}

	value := ValidatorsAndThreshold{Threshold: b[0]}
	rest := b[1:]
	for len(rest) > 0 {
		var v util.HexAddress
		copy(v[:], rest[:util.HexAddressLength])
		value.Validators = append(value.Validators, v)
		rest = rest[util.HexAddressLength:]
	}

	return value, nil
}

type validatorsAndThresholdJSON struct {
	Validators []string `json:"validators"`
	Threshold  uint8    `json:"threshold"`
}

func (validatorsAndThresholdCodec) EncodeJSON(value ValidatorsAndThreshold) ([]byte, error) {
	validators := make([]string, 0, len(value.Validators))
	for _, v := range value.Validators {
		validators = append(validators, v.String())
	}

	return json.Marshal(validatorsAndThresholdJSON{
		Validators: validators,
		Threshold:  value.Threshold,
	})
}

func (validatorsAndThresholdCodec) DecodeJSON(b []byte) (ValidatorsAndThreshold, error) {
	var raw validatorsAndThresholdJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return ValidatorsAndThreshold{}, err
	}

	value := ValidatorsAndThreshold{Threshold: raw.Threshold}
	for _, s := range raw.Validators {
		v, err := util.DecodeHexAddress(s)
		if err != nil {
			return ValidatorsAndThreshold{}, errorsmod.Wrapf(ErrInvalidValidatorSet, "invalid validator address %q: %v", s, err)
		}
		value.Validators = append(value.Validators, v)
	}

	return value, nil
}

func (validatorsAndThresholdCodec) Stringify(value ValidatorsAndThreshold) string {
	return fmt.Sprintf("ValidatorsAndThreshold(%d validators, threshold %d)", len(value.Validators), value.Threshold)
}

func (validatorsAndThresholdCodec) ValueType() string {
	return "ism.ValidatorsAndThreshold"
}
