/*
 * Copyright © 2024 Kaleido, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
 * the License. You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
 * an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
 * specific language governing permissions and limitations under the License.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package chainclient declares the L1 collaborator the publisher consumes
// (spec §6, "Upstream chain client"), plus a concrete implementation
// wrapping firefly-signer's JSON-RPC eth client for the generic calls.
package chainclient

import (
	"context"
	"math/big"
	"time"

	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

// BlockHeader carries the subset of a block the gate needs.
type BlockHeader struct {
	BaseFeePerGas *big.Int
}

// RevertInfo is the decoded revert reason of a failed receipt.
type RevertInfo struct {
	Name   string
	Params []interface{}
}

// Receipt is the outcome of a mined transaction, or nil if it never mined
// within the poll budget.
type Receipt struct {
	Status      bool
	RevertError *RevertInfo
}

// SendOptions are the per-send parameters every transaction in a batch is
// submitted with.
type SendOptions struct {
	Nonce                uint64
	GasLimit             uint64
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int
}

// ChainClient is every operation the publisher performs against L1.
// Implementations must be safe for concurrent use, though the publisher
// itself only ever has one publish in flight.
type ChainClient interface {
	// BuildBatch packages the opaque rollup proof and broadcast payloads
	// into signable transaction byte sequences. Signature omission based
	// on on-chain approval status is the implementation's business; the
	// publisher only ever sees the resulting bytes.
	BuildBatch(ctx context.Context, proof []byte, signatures [][]byte, offchainData [][]byte) (rollupProofTx []byte, broadcastTxs [][]byte, err error)

	// GetAccounts returns the node's configured signer accounts; the
	// orchestrator uses the first entry as the default signer.
	GetAccounts(ctx context.Context) ([]ethtypes.Address0xHex, error)

	// GetBlockByNumber("latest") returns the base fee of the most
	// recently sealed block.
	GetBlockByNumber(ctx context.Context, tag string) (*BlockHeader, error)

	// GetBalance returns the signer's balance in wei.
	GetBalance(ctx context.Context, addr ethtypes.Address0xHex) (*big.Int, error)

	// GetTransactionCount returns the next-to-use nonce for addr at its
	// latest on-chain state.
	GetTransactionCount(ctx context.Context, addr ethtypes.Address0xHex) (uint64, error)

	// SendTx submits a single transaction's bytes with the given options
	// and returns its hash, or an error (network failure, node
	// rejection, etc).
	SendTx(ctx context.Context, txBytes []byte, opts *SendOptions) (ethtypes.HexBytes0xPrefix, error)

	// GetTransactionReceiptSafe polls until mined or timeout elapses.
	// A nil Receipt means "not mined within budget".
	GetTransactionReceiptSafe(ctx context.Context, txHash ethtypes.HexBytes0xPrefix, timeout time.Duration) (*Receipt, error)

	// GetUserProofApprovalStatus is a per-transaction signature approval
	// check used by BuildBatch; exposed here because some
	// implementations batch it alongside the other RPCs, but the
	// publisher's own logic never calls it directly.
	GetUserProofApprovalStatus(ctx context.Context, addr ethtypes.Address0xHex, txID string) (bool, error)
}
