package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hyperlane-xyz/hyperlane-monorepo-sub001/x/ism/types"
)

func TestValidatorsAndThresholdCodec(t *testing.T) {
	_, validators := testValidatorSet(t, 3)
	value := types.ValidatorsAndThreshold{Validators: validators, Threshold: 2}

	bz, err := types.ValidatorsAndThresholdValue.Encode(value)
	require.NoError(t, err)
	require.Len(t, bz, 1+3*32)

	decoded, err := types.ValidatorsAndThresholdValue.Decode(bz)
	require.NoError(t, err)
	require.Equal(t, value, decoded)

	_, err = types.ValidatorsAndThresholdValue.Decode(nil)
	require.Error(t, err)

	_, err = types.ValidatorsAndThresholdValue.Decode(bz[:10])
	require.Error(t, err, "truncated validator word")

	jz, err := types.ValidatorsAndThresholdValue.EncodeJSON(value)
	require.NoError(t, err)

	decoded, err = types.ValidatorsAndThresholdValue.DecodeJSON(jz)
	require.NoError(t, err)
	require.Equal(t, value, decoded)

	_, err = types.ValidatorsAndThresholdValue.DecodeJSON([]byte(`{"validators":["0xzz"],"threshold":1}`))
	require.ErrorIs(t, err, types.ErrInvalidValidatorSet)
}
