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
	"math/big"
	"time"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"

	"github.com/alirezab22/aztec-connect/internal/msgs"
	"github.com/alirezab22/aztec-connect/internal/plog"
	"github.com/alirezab22/aztec-connect/internal/units"
	"github.com/alirezab22/aztec-connect/pkg/chainclient"
)

// retryIntervalFn returns the cancellable-sleep duration to use for the
// next retry; it is a function rather than a fixed value purely so tests
// can shrink it without touching production config.
type retryIntervalFn func() time.Duration

// gasBalanceGate is the pre-flight wait loop of spec §4.2. It inlines the
// fee/balance decision logic the teacher spreads across GasPriceClient
// and BalanceManager, since this publisher only ever gates one signer
// for one batch at a time.
type gasBalanceGate struct {
	chain       chainclient.ChainClient
	interrupter *Interrupter
}

func newGate(chain chainclient.ChainClient, interrupter *Interrupter) *gasBalanceGate {
	return &gasBalanceGate{chain: chain, interrupter: interrupter}
}

// awaitClear blocks until both the fee condition and the balance
// condition hold, or the interrupt is set. Returns true if interrupted.
func (g *gasBalanceGate) awaitClear(ctx context.Context, signer ethtypes.Address0xHex, maxFeePerGas, maxPriorityFeePerGas *big.Int, estimatedGas uint64, retryInterval retryIntervalFn) (interrupted bool) {
	for {
		if g.interrupter.IsSet() {
			return true
		}

		header, err := g.chain.GetBlockByNumber(ctx, "latest")
		if err != nil {
			plog.L(ctx).Error(i18n.WrapError(ctx, err, msgs.MsgGetBlockFailed))
			if g.interrupter.SleepOrInterrupted(retryInterval()) {
				return true
			}
			continue
		}

		effectiveFee := new(big.Int).Add(header.BaseFeePerGas, maxPriorityFeePerGas)
		if effectiveFee.Cmp(maxFeePerGas) > 0 {
			plog.L(ctx).Infof(
				"gate: predicted fee %s (base %s + priority %s) exceeds ceiling %s, waiting",
				units.Gwei(effectiveFee), units.Gwei(header.BaseFeePerGas), units.Gwei(maxPriorityFeePerGas), units.Gwei(maxFeePerGas),
			)
			if g.interrupter.SleepOrInterrupted(retryInterval()) {
				return true
			}
			continue
		}

		balance, err := g.chain.GetBalance(ctx, signer)
		if err != nil {
			plog.L(ctx).Error(i18n.WrapError(ctx, err, msgs.MsgGetBalanceFailed, signer))
			if g.interrupter.SleepOrInterrupted(retryInterval()) {
				return true
			}
			continue
		}

		required := new(big.Int).Mul(maxFeePerGas, new(big.Int).SetUint64(estimatedGas))
		if balance.Cmp(required) < 0 {
			plog.L(ctx).Infof(
				"gate: signer %s balance %s is below required %s (ceiling %s x gas %d), waiting",
				signer, units.Ether(balance), units.Ether(required), units.Gwei(maxFeePerGas), estimatedGas,
			)
			if g.interrupter.SleepOrInterrupted(retryInterval()) {
				return true
			}
			continue
		}

		plog.L(ctx).Infof("gate: clear for signer %s, balance %s", signer, units.Ether(balance))
		return false
	}
}
