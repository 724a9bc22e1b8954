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

package publisher

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/hyperledger/firefly-signer/pkg/ethtypes"

	"github.com/alirezab22/aztec-connect/pkg/chainclient"
)

// fakeChainClient is a hand-rolled deterministic ChainClient, grounded on
// the teacher's own mix of hand-rolled fakes (core/pkg/persistence/mockpersistence)
// alongside testify/mock, used where a test needs scripted call-count
// behavior that's awkward to express with mock.Mock's .On() chaining.
type fakeChainClient struct {
	mu sync.Mutex

	signer ethtypes.Address0xHex

	// baseFees is consumed one entry per GetBlockByNumber call; the last
	// entry repeats once exhausted.
	baseFees []*big.Int
	baseFeeI int

	// balances is consumed one entry per GetBalance call; the last entry
	// repeats once exhausted.
	balances []*big.Int
	balanceI int

	nextNonce uint64

	// sendErrors, keyed by tx name, is consumed once per name (then
	// cleared) to simulate exactly one transient send failure.
	sendErrors map[string]error

	sentCount   int
	sendHistory []sentTx

	// hashToName lets GetTransactionReceiptSafe map an opaque hash back to
	// the tx name that produced it.
	hashToName map[string]string

	// receiptQueues, keyed by tx name, is consumed one entry per
	// GetTransactionReceiptSafe call against that name's current hash; the
	// last entry repeats once exhausted. A name with no queue mines
	// successfully by default.
	receiptQueues map[string][]*chainclient.Receipt
	receiptI      map[string]int

	buildErr error
}

type sentTx struct {
	name  string
	nonce uint64
}

func newFakeChainClient(signer ethtypes.Address0xHex) *fakeChainClient {
	return &fakeChainClient{
		signer:        signer,
		baseFees:      []*big.Int{big.NewInt(0)},
		balances:      []*big.Int{big.NewInt(0)},
		sendErrors:    map[string]error{},
		hashToName:    map[string]string{},
		receiptQueues: map[string][]*chainclient.Receipt{},
		receiptI:      map[string]int{},
	}
}

func (f *fakeChainClient) BuildBatch(ctx context.Context, proof []byte, signatures [][]byte, offchainData [][]byte) ([]byte, [][]byte, error) {
	if f.buildErr != nil {
		return nil, nil, f.buildErr
	}
	return proof, offchainData, nil
}

func (f *fakeChainClient) GetUserProofApprovalStatus(ctx context.Context, addr ethtypes.Address0xHex, txID string) (bool, error) {
	return false, nil
}

func (f *fakeChainClient) GetAccounts(ctx context.Context) ([]ethtypes.Address0xHex, error) {
	return []ethtypes.Address0xHex{f.signer}, nil
}

func (f *fakeChainClient) GetBlockByNumber(ctx context.Context, tag string) (*chainclient.BlockHeader, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fee := f.baseFees[f.baseFeeI]
	if f.baseFeeI < len(f.baseFees)-1 {
		f.baseFeeI++
	}
	return &chainclient.BlockHeader{BaseFeePerGas: fee}, nil
}

func (f *fakeChainClient) GetBalance(ctx context.Context, addr ethtypes.Address0xHex) (*big.Int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	bal := f.balances[f.balanceI]
	if f.balanceI < len(f.balances)-1 {
		f.balanceI++
	}
	return bal, nil
}

func (f *fakeChainClient) GetTransactionCount(ctx context.Context, addr ethtypes.Address0xHex) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.nextNonce, nil
}

func (f *fakeChainClient) SendTx(ctx context.Context, txBytes []byte, opts *chainclient.SendOptions) (ethtypes.HexBytes0xPrefix, error) {
	name := string(txBytes)

	f.mu.Lock()
	if err, ok := f.sendErrors[name]; ok {
		delete(f.sendErrors, name)
		f.mu.Unlock()
		return nil, err
	}
	f.sentCount++
	f.sendHistory = append(f.sendHistory, sentTx{name: name, nonce: opts.Nonce})
	if opts.Nonce+1 > f.nextNonce {
		f.nextNonce = opts.Nonce + 1
	}
	hash := hashFor(name, opts.Nonce)
	f.hashToName[string(hash)] = name
	f.mu.Unlock()

	return hash, nil
}

func (f *fakeChainClient) GetTransactionReceiptSafe(ctx context.Context, txHash ethtypes.HexBytes0xPrefix, timeout time.Duration) (*chainclient.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	name := f.hashToName[string(txHash)]
	queue := f.receiptQueues[name]
	if len(queue) == 0 {
		return &chainclient.Receipt{Status: true}, nil
	}
	i := f.receiptI[name]
	r := queue[i]
	if i < len(queue)-1 {
		f.receiptI[name] = i + 1
	}
	return r, nil
}

func hashFor(name string, nonce uint64) ethtypes.HexBytes0xPrefix {
	return ethtypes.HexBytes0xPrefix(fmt.Sprintf("hash(%s,%d)", name, nonce))
}

// queueReceipts scripts the sequence of receipts to return for successive
// GetTransactionReceiptSafe calls against sends of the given transaction
// name; the last entry repeats once exhausted.
func (f *fakeChainClient) queueReceipts(name string, rs ...*chainclient.Receipt) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.receiptQueues[name] = rs
	f.receiptI[name] = 0
}
