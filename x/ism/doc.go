// The x/ism module is the verification core for Hyperlane Interchain
// Security Modules (ISMs): pluggable verifiers deciding whether an inbound
// cross-chain message carries sufficient proof that it was legitimately
// dispatched at its origin. It implements the multisig ISM (a threshold of
// validators co-sign a checkpoint of the origin message tree, plus a Merkle
// inclusion proof) and the aggregation ISM (a threshold of heterogeneous
// sub-verifiers each accept a private slice of a shared metadata buffer).
// Dispatch, bridge adapters and the execution environment are host concerns;
// this module is called with byte buffers and answers with a verdict.
package ism
