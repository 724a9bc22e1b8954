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

package chainclient

import (
	"context"
	"math/big"
	"time"

	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
	"github.com/hyperledger/firefly-signer/pkg/rpcbackend"

	"github.com/alirezab22/aztec-connect/internal/plog"
)

// RollupContract is the narrow, contract-specific surface BuildBatch and
// GetUserProofApprovalStatus need. It is deliberately separate from the
// generic JSON-RPC backend: batch construction and approval checks are
// specific to the rollup contract's ABI, not to "an L1 node" in general.
type RollupContract interface {
	BuildBatch(ctx context.Context, proof []byte, signatures [][]byte, offchainData [][]byte) (rollupProofTx []byte, broadcastTxs [][]byte, err error)
	GetUserProofApprovalStatus(ctx context.Context, addr ethtypes.Address0xHex, txID string) (bool, error)
}

// EthChainClient is the production ChainClient, wrapping firefly-signer's
// generic JSON-RPC backend (the same one the teacher's own
// core/pkg/ethclient wraps) for node-level calls, and a RollupContract
// for the rollup-specific ones.
type EthChainClient struct {
	rpc      rpcbackend.Backend
	contract RollupContract
}

// NewEthChainClient builds a ChainClient from an already-configured
// firefly-signer RPC backend and a rollup contract binding.
func NewEthChainClient(rpc rpcbackend.Backend, contract RollupContract) *EthChainClient {
	return &EthChainClient{rpc: rpc, contract: contract}
}

func (c *EthChainClient) BuildBatch(ctx context.Context, proof []byte, signatures [][]byte, offchainData [][]byte) ([]byte, [][]byte, error) {
	return c.contract.BuildBatch(ctx, proof, signatures, offchainData)
}

func (c *EthChainClient) GetUserProofApprovalStatus(ctx context.Context, addr ethtypes.Address0xHex, txID string) (bool, error) {
	return c.contract.GetUserProofApprovalStatus(ctx, addr, txID)
}

func (c *EthChainClient) GetAccounts(ctx context.Context) ([]ethtypes.Address0xHex, error) {
	var accounts []ethtypes.Address0xHex
	if rpcErr := c.rpc.CallRPC(ctx, &accounts, "eth_accounts"); rpcErr != nil {
		return nil, rpcErr.Error()
	}
	return accounts, nil
}

type rpcBlock struct {
	BaseFeePerGas *ethtypes.HexInteger `json:"baseFeePerGas"`
}

func (c *EthChainClient) GetBlockByNumber(ctx context.Context, tag string) (*BlockHeader, error) {
	var block rpcBlock
	if rpcErr := c.rpc.CallRPC(ctx, &block, "eth_getBlockByNumber", tag, false); rpcErr != nil {
		return nil, rpcErr.Error()
	}
	baseFee := big.NewInt(0)
	if block.BaseFeePerGas != nil {
		baseFee = block.BaseFeePerGas.BigInt()
	}
	return &BlockHeader{BaseFeePerGas: baseFee}, nil
}

func (c *EthChainClient) GetBalance(ctx context.Context, addr ethtypes.Address0xHex) (*big.Int, error) {
	var balance ethtypes.HexInteger
	if rpcErr := c.rpc.CallRPC(ctx, &balance, "eth_getBalance", addr, "latest"); rpcErr != nil {
		return nil, rpcErr.Error()
	}
	return balance.BigInt(), nil
}

func (c *EthChainClient) GetTransactionCount(ctx context.Context, addr ethtypes.Address0xHex) (uint64, error) {
	var nonce ethtypes.HexInteger
	if rpcErr := c.rpc.CallRPC(ctx, &nonce, "eth_getTransactionCount", addr, "latest"); rpcErr != nil {
		return 0, rpcErr.Error()
	}
	return nonce.BigInt().Uint64(), nil
}

// SendTx broadcasts txBytes unchanged via eth_sendRawTransaction. The
// nonce, gas limit and fee fields of opts are not applied to the
// transaction; the nonce is used only in the failure log line.
func (c *EthChainClient) SendTx(ctx context.Context, txBytes []byte, opts *SendOptions) (ethtypes.HexBytes0xPrefix, error) {
	var txHash ethtypes.HexBytes0xPrefix
	rawTx := ethtypes.HexBytes0xPrefix(txBytes)
	if rpcErr := c.rpc.CallRPC(ctx, &txHash, "eth_sendRawTransaction", rawTx); rpcErr != nil {
		plog.L(ctx).Errorf("eth_sendRawTransaction failed at nonce %d: %s", opts.Nonce, rpcErr.Error())
		return nil, rpcErr.Error()
	}
	return txHash, nil
}

type rpcReceipt struct {
	Status      *ethtypes.HexInteger `json:"status"`
	RevertError *rpcRevertError      `json:"revertReason,omitempty"`
}

type rpcRevertError struct {
	Name   string        `json:"name"`
	Params []interface{} `json:"params"`
}

// GetTransactionReceiptSafe polls eth_getTransactionReceipt until a
// non-null result is returned or the timeout elapses; it never returns
// an error for "not mined yet", only for genuine RPC failures, matching
// the spec's "null/absent means not mined within budget" contract.
func (c *EthChainClient) GetTransactionReceiptSafe(ctx context.Context, txHash ethtypes.HexBytes0xPrefix, timeout time.Duration) (*Receipt, error) {
	deadline := time.Now().Add(timeout)
	for {
		var receipt *rpcReceipt
		if rpcErr := c.rpc.CallRPC(ctx, &receipt, "eth_getTransactionReceipt", txHash); rpcErr != nil {
			return nil, rpcErr.Error()
		}
		if receipt != nil {
			r := &Receipt{Status: receipt.Status != nil && receipt.Status.BigInt().Sign() != 0}
			if receipt.RevertError != nil {
				r.RevertError = &RevertInfo{Name: receipt.RevertError.Name, Params: receipt.RevertError.Params}
			}
			return r, nil
		}
		if time.Now().After(deadline) {
			return nil, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Second):
		}
	}
}
