package keeper_test

import (
	"context"
	"crypto/ecdsa"
	"testing"

	"cosmossdk.io/collections/colltest"
	"cosmossdk.io/log"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/suite"

	"github.com/hyperlane-xyz/hyperlane-monorepo-sub001/util"
	"github.com/hyperlane-xyz/hyperlane-monorepo-sub001/x/ism/internal/merkle"
	"github.com/hyperlane-xyz/hyperlane-monorepo-sub001/x/ism/keeper"
	"github.com/hyperlane-xyz/hyperlane-monorepo-sub001/x/ism/types"
)

const testDomain = uint32(1234)

type KeeperTestSuite struct {
	suite.Suite

	ctx    context.Context
	keeper *keeper.Keeper

	keys       []*ecdsa.PrivateKey
	validators []util.HexAddress
}

func TestKeeperTestSuite(t *testing.T) {
	suite.Run(t, new(KeeperTestSuite))
}

func (s *KeeperTestSuite) SetupTest() {
	sk, ctx := colltest.MockStore()
	s.ctx = ctx
	s.keeper = keeper.NewKeeper(sk, log.NewNopLogger())

	s.keys = s.keys[:0]
	s.validators = s.validators[:0]
	for i := 0; i < 3; i++ {
		key, err := crypto.ToECDSA(crypto.Keccak256([]byte{byte(i + 1)}))
		s.Require().NoError(err)

		s.keys = append(s.keys, key)
		s.validators = append(s.validators, util.HexAddressFromEthAddress(crypto.PubkeyToAddress(key.PublicKey)))
	}
}

func (s *KeeperTestSuite) configureDomain(threshold uint8) {
	err := s.keeper.SetValidatorsAndThreshold(s.ctx, testDomain, types.ValidatorsAndThreshold{
		Validators: s.validators,
		Threshold:  threshold,
	})
	s.Require().NoError(err)
}

func (s *KeeperTestSuite) TestSetAndGet() {
	s.configureDomain(2)

	vat, err := s.keeper.ValidatorsAndThreshold(s.ctx, testDomain)
	s.Require().NoError(err)
	s.Require().Equal(s.validators, vat.Validators)
	s.Require().Equal(uint8(2), vat.Threshold)

	threshold, err := s.keeper.Threshold(s.ctx, testDomain)
	s.Require().NoError(err)
	s.Require().Equal(uint8(2), threshold)

	commitment, err := s.keeper.Commitment(s.ctx, testDomain)
	s.Require().NoError(err)
	s.Require().Equal(vat.Commitment(), commitment)

	_, err = s.keeper.ValidatorsAndThreshold(s.ctx, 9999)
	s.Require().ErrorIs(err, types.ErrDomainNotFound)
}

func (s *KeeperTestSuite) TestSetRejectsInvalidConfig() {
	err := s.keeper.SetValidatorsAndThreshold(s.ctx, testDomain, types.ValidatorsAndThreshold{
		Validators: s.validators,
		Threshold:  4,
	})
	s.Require().ErrorIs(err, types.ErrInvalidValidatorSet)

	_, err = s.keeper.ValidatorsAndThreshold(s.ctx, testDomain)
	s.Require().ErrorIs(err, types.ErrDomainNotFound, "rejected config must not be stored")
}

func (s *KeeperTestSuite) TestEnrollValidator() {
	s.configureDomain(2)

	key, err := crypto.ToECDSA(crypto.Keccak256([]byte{0xff}))
	s.Require().NoError(err)
	newcomer := util.HexAddressFromEthAddress(crypto.PubkeyToAddress(key.PublicKey))

	s.Require().NoError(s.keeper.EnrollValidator(s.ctx, testDomain, newcomer))

	vat, err := s.keeper.ValidatorsAndThreshold(s.ctx, testDomain)
	s.Require().NoError(err)
	s.Require().Equal(append(append([]util.HexAddress{}, s.validators...), newcomer), vat.Validators)

	// enrollment changed the list, so it changed the commitment
	s.Require().NotEqual(
		types.ValidatorSetCommitment(2, s.validators),
		vat.Commitment(),
	)

	err = s.keeper.EnrollValidator(s.ctx, testDomain, newcomer)
	s.Require().ErrorIs(err, types.ErrInvalidValidatorSet)

	err = s.keeper.EnrollValidator(s.ctx, 9999, newcomer)
	s.Require().ErrorIs(err, types.ErrDomainNotFound)
}

func (s *KeeperTestSuite) TestUnenrollValidator() {
	s.configureDomain(2)

	s.Require().NoError(s.keeper.UnenrollValidator(s.ctx, testDomain, s.validators[1]))

	vat, err := s.keeper.ValidatorsAndThreshold(s.ctx, testDomain)
	s.Require().NoError(err)
	s.Require().Equal([]util.HexAddress{s.validators[0], s.validators[2]}, vat.Validators)

	// another removal would leave one validator under a threshold of two
	err = s.keeper.UnenrollValidator(s.ctx, testDomain, s.validators[0])
	s.Require().ErrorIs(err, types.ErrInvalidValidatorSet)

	err = s.keeper.UnenrollValidator(s.ctx, testDomain, s.validators[1])
	s.Require().ErrorIs(err, types.ErrInvalidValidatorSet, "already unenrolled")
}

func (s *KeeperTestSuite) TestSetThreshold() {
	s.configureDomain(2)

	s.Require().NoError(s.keeper.SetThreshold(s.ctx, testDomain, 3))

	threshold, err := s.keeper.Threshold(s.ctx, testDomain)
	s.Require().NoError(err)
	s.Require().Equal(uint8(3), threshold)

	err = s.keeper.SetThreshold(s.ctx, testDomain, 4)
	s.Require().ErrorIs(err, types.ErrInvalidValidatorSet)

	err = s.keeper.SetThreshold(s.ctx, testDomain, 0)
	s.Require().ErrorIs(err, types.ErrInvalidValidatorSet)
}

func (s *KeeperTestSuite) TestRemoveDomain() {
	s.configureDomain(2)

	s.Require().NoError(s.keeper.RemoveDomain(s.ctx, testDomain))

	_, err := s.keeper.ValidatorsAndThreshold(s.ctx, testDomain)
	s.Require().ErrorIs(err, types.ErrDomainNotFound)

	err = s.keeper.RemoveDomain(s.ctx, testDomain)
	s.Require().ErrorIs(err, types.ErrDomainNotFound)
}

func (s *KeeperTestSuite) TestGenesisRoundTrip() {
	genesis := &types.GenesisState{Domains: []types.DomainValidatorSet{
		{
			Domain:     testDomain,
			Validators: []string{s.validators[0].String(), s.validators[1].String(), s.validators[2].String()},
			Threshold:  2,
		},
		{
			Domain:     5678,
			Validators: []string{s.validators[0].String()},
			Threshold:  1,
		},
	}}

	s.Require().NoError(s.keeper.InitGenesis(s.ctx, genesis))

	exported, err := s.keeper.ExportGenesis(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal(genesis, exported)
}

func (s *KeeperTestSuite) TestInitGenesisRejectsInvalidState() {
	err := s.keeper.InitGenesis(s.ctx, &types.GenesisState{Domains: []types.DomainValidatorSet{
		{Domain: 1, Validators: []string{s.validators[0].String()}, Threshold: 2},
	}})
	s.Require().ErrorIs(err, types.ErrInvalidValidatorSet)
}

// TestVerifyAgainstKeeper runs a multisig verification end to end with the
// keeper as the backing store.
func (s *KeeperTestSuite) TestVerifyAgainstKeeper() {
	s.configureDomain(2)

	var sender, recipient util.HexAddress
	sender[31] = 0xaa
	recipient[31] = 0xbb
	message := util.HyperlaneMessage{
		Version:     3,
		Nonce:       7,
		Origin:      testDomain,
		Sender:      sender,
		Destination: 100,
		Recipient:   recipient,
		Body:        []byte("payload"),
	}

	var tree merkle.Tree
	s.Require().NoError(tree.Insert([32]byte(message.Id())))

	var hook util.HexAddress
	hook[31] = 0x42

	checkpoint := types.Checkpoint{
		Root:           common.Hash(tree.Root()),
		Index:          0,
		Origin:         testDomain,
		MerkleTreeHook: hook,
	}

	digest := checkpoint.Digest()
	signatures := make([][]byte, 0, 2)
	for _, key := range s.keys[:2] {
		sig, err := crypto.Sign(digest.Bytes(), key)
		s.Require().NoError(err)
		sig[64] += 27
		signatures = append(signatures, sig)
	}

	// the single leaf proves against the empty-subtree ladder
	var proof merkle.Proof
	for i := 1; i < merkle.TreeDepth; i++ {
		proof[i] = [32]byte(crypto.Keccak256Hash(proof[i-1][:], proof[i-1][:]))
	}

	metadata := types.MultisigMetadata{
		Root:           checkpoint.Root,
		Index:          checkpoint.Index,
		MerkleTreeHook: checkpoint.MerkleTreeHook,
		Proof:          proof,
		Signatures:     signatures,
		Validators:     s.validators,
	}

	ism := types.NewMultisigISM(s.keeper)

	verified, err := ism.Verify(s.ctx, metadata.Bytes(), message)
	s.Require().NoError(err)
	s.Require().True(verified)

	// dropping a signer below the threshold must fail
	metadata.Signatures = signatures[:1]
	_, err = ism.Verify(s.ctx, metadata.Bytes(), message)
	s.Require().ErrorIs(err, types.ErrThresholdNotMet)
}
