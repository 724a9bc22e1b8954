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

// Package publisher implements the Rollup Publisher: gate -> submit-batch
// -> confirm-batch -> finalize, per the orchestration described in
// SPEC_FULL.md §4.1, grounded on the teacher's pubTxManager construction
// and lifecycle shape in
// core/go/internal/publictxmgr/transaction_manager.go.
package publisher

import (
	"context"
	"sync"
	"time"

	"github.com/hyperledger/firefly-common/pkg/i18n"

	"github.com/alirezab22/aztec-connect/internal/config"
	"github.com/alirezab22/aztec-connect/internal/msgs"
	"github.com/alirezab22/aztec-connect/internal/plog"
	"github.com/alirezab22/aztec-connect/pkg/chainclient"
	"github.com/alirezab22/aztec-connect/pkg/metrics"
	"github.com/alirezab22/aztec-connect/pkg/rollupdb"
)

// Publisher is the outer state machine that lands one locally-aggregated
// rollup on L1 as a strictly ordered batch of transactions. At most one
// Publish call is active at a time per instance; the caller is expected
// to serialize calls, but an inflight mutex backstops that.
type Publisher struct {
	conf    *config.Resolved
	chain   chainclient.ChainClient
	db      rollupdb.RollupDatabase
	metrics metrics.Collector

	interrupter *Interrupter
	inflight    sync.Mutex

	gate      *gasBalanceGate
	submitter *batchSubmitter
	confirmer *receiptConfirmer
}

// New constructs a Publisher, following the teacher's
// NewPublicTransactionManager shape: defaulted config, plain struct
// literal, collaborators wired in at construction time.
func New(conf *config.Config, chain chainclient.ChainClient, db rollupdb.RollupDatabase, mc metrics.Collector) *Publisher {
	resolved := config.Resolve(conf)
	interrupter := NewInterrupter()
	if mc == nil {
		mc = metrics.NoopCollector{}
	}
	return &Publisher{
		conf:        resolved,
		chain:       chain,
		db:          db,
		metrics:     mc,
		interrupter: interrupter,
		gate:        newGate(chain, interrupter),
		submitter:   newBatchSubmitter(chain, interrupter),
		confirmer:   newReceiptConfirmer(chain, interrupter, resolved.ReceiptTimeout),
	}
}

// Interrupt is an idempotent signal causing any in-progress Publish call
// to return ABORTED as soon as possible.
func (p *Publisher) Interrupt() {
	p.interrupter.Interrupt()
}

// ClearInterrupt must be called before the next Publish after an
// interrupt.
func (p *Publisher) ClearInterrupt() {
	p.interrupter.Clear()
}

// Publish runs the gate -> submit-batch -> confirm-batch -> finalize
// loop for a single rollup, per spec §4.1.
func (p *Publisher) Publish(ctx context.Context, rollup *Rollup, estimatedGas uint64) Outcome {
	if !p.inflight.TryLock() {
		plog.L(ctx).Error(i18n.NewError(ctx, msgs.MsgPublishAlreadyActive))
		return Aborted
	}
	defer p.inflight.Unlock()

	ctx = plog.WithField(ctx, "rollupId", rollup.RollupID)
	stopTimer := p.metrics.PublishTimer()

	rollupProofTx, broadcastTxs, err := p.chain.BuildBatch(ctx, rollup.Proof, rollup.Signatures, rollup.OffchainData)
	if err != nil {
		plog.L(ctx).Error(i18n.WrapError(ctx, err, msgs.MsgBuildBatchFailed, rollup.RollupID))
		return Aborted
	}

	if err := p.db.SetCallData(ctx, rollup.RollupID, rollupProofTx); err != nil {
		// Persisting callData before any on-chain attempt is what lets a
		// restarting process reconstruct what was meant to be published;
		// failing to do so is treated as fatal to this attempt.
		plog.L(ctx).Error(i18n.WrapError(ctx, err, msgs.MsgSetCallDataFailed, rollup.RollupID))
		return Aborted
	}

	statuses := buildStatusList(rollupProofTx, broadcastTxs)

	accounts, err := p.chain.GetAccounts(ctx)
	if err != nil {
		plog.L(ctx).Error(i18n.WrapError(ctx, err, msgs.MsgGetAccountsFailed))
		return Aborted
	}
	if len(accounts) == 0 {
		plog.L(ctx).Error(i18n.NewError(ctx, msgs.MsgNoSignerAccounts))
		return Aborted
	}
	signer := accounts[0]

	confirmedSentOnce := false

	for {
		if p.interrupter.IsSet() {
			plog.L(ctx).Warn("publish: interrupt observed at top of outer loop")
			return Aborted
		}

		if p.gate.awaitClear(ctx, signer, p.conf.MaxFeePerGas, p.conf.MaxPriorityFeePerGas, estimatedGas, p.retryFn(p.conf.GateRetryInterval)) {
			plog.L(ctx).Warn("publish: interrupted while waiting for gate")
			return Aborted
		}

		nonce, err := p.chain.GetTransactionCount(ctx, signer)
		if err != nil {
			plog.L(ctx).Error(i18n.WrapError(ctx, err, msgs.MsgGetNonceFailed, signer))
			return Aborted
		}

		if p.submitter.submit(ctx, statuses, nonce, p.conf.MaxFeePerGas, p.conf.MaxPriorityFeePerGas, p.conf.GasLimit, p.retryFn(p.conf.SendRetryInterval)) {
			plog.L(ctx).Warn("publish: interrupted mid-send")
			return Aborted
		}

		if !confirmedSentOnce {
			final := statuses[len(statuses)-1]
			if err := p.db.ConfirmSent(ctx, rollup.RollupID, final.TxHash); err != nil {
				plog.L(ctx).Error(i18n.WrapError(ctx, err, msgs.MsgConfirmSentFailed, rollup.RollupID))
				return Aborted
			}
			confirmedSentOnce = true
		}

		switch p.confirmer.confirm(ctx, statuses, p.retryFn(p.conf.ConfirmRetryInterval)) {
		case AllConfirmed:
			stopTimer()
			plog.L(ctx).Info("publish: all transactions confirmed")
			return Published
		case Abort:
			return Aborted
		case Retry:
			// The confirmer already performed its cancellable sleep;
			// loop back to the gate for a fresh outer iteration.
			continue
		}
	}
}

func (p *Publisher) retryFn(d time.Duration) retryIntervalFn {
	return func() time.Duration { return d }
}
