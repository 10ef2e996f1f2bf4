package types

import (
	"context"

	"github.com/hyperlane-xyz/hyperlane-monorepo-sub001/util"
)

// Module type tags for the known ISM kinds. A host routes an inbound message
// to a concrete verifier by this tag; the aggregation ISM stays agnostic of
// which kind it invokes.
const (
	ModuleTypeUnused uint8 = iota
	ModuleTypeRouting
	ModuleTypeAggregation
	ModuleTypeLegacyMultisig
	ModuleTypeMerkleRootMultisig
	ModuleTypeMessageIdMultisig
)

// InterchainSecurityModule is the capability every verifier implements.
// Verify returns (true, nil) when the metadata proves the message was
// legitimately dispatched at its origin, and (false, err) with one of the
// registered errors naming the failed sub-check otherwise. Implementations
// are stateless per call; any configuration they read must be a single
// snapshot for the whole invocation.
type InterchainSecurityModule interface {
	ModuleType() uint8
	Verify(ctx context.Context, metadata []byte, message util.HyperlaneMessage) (bool, error)
}
