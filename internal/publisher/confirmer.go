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
	"time"

	"github.com/hyperledger/firefly-common/pkg/i18n"

	"github.com/alirezab22/aztec-connect/internal/msgs"
	"github.com/alirezab22/aztec-connect/internal/plog"
	"github.com/alirezab22/aztec-connect/internal/revert"
	"github.com/alirezab22/aztec-connect/pkg/chainclient"
)

// ConfirmResult is the three-way outcome of one confirm() pass (spec §4.4).
type ConfirmResult int

const (
	AllConfirmed ConfirmResult = iota
	Retry
	Abort
)

// receiptConfirmer walks the status list in order, polling receipts and
// classifying outcomes into ALL_CONFIRMED / RETRY / ABORT.
type receiptConfirmer struct {
	chain          chainclient.ChainClient
	interrupter    *Interrupter
	receiptTimeout time.Duration
}

func newReceiptConfirmer(chain chainclient.ChainClient, interrupter *Interrupter, receiptTimeout time.Duration) *receiptConfirmer {
	return &receiptConfirmer{chain: chain, interrupter: interrupter, receiptTimeout: receiptTimeout}
}

func (c *receiptConfirmer) confirm(ctx context.Context, statuses []*TxStatus, retryInterval retryIntervalFn) ConfirmResult {
	for _, st := range statuses {
		if st.Confirmed {
			continue
		}

		if c.interrupter.IsSet() {
			return Abort
		}

		receipt, err := c.chain.GetTransactionReceiptSafe(ctx, st.TxHash, c.receiptTimeout)
		if err != nil {
			plog.L(ctx).Error(i18n.WrapError(ctx, err, msgs.MsgReceiptFailed, st.TxHash))
			return Abort
		}
		if receipt == nil {
			plog.L(ctx).Error(i18n.NewError(ctx, msgs.MsgReceiptTimedOut, st.TxHash))
			return Abort
		}

		if receipt.Status {
			st.Confirmed = true
			plog.L(ctx).Infof("confirmer: %s (%s) confirmed", st.Name, st.TxHash)
			continue
		}

		// On-chain failure.
		var info *revert.Info
		if receipt.RevertError != nil {
			info = &revert.Info{Name: receipt.RevertError.Name, Params: receipt.RevertError.Params}
		}
		if info.IsFatal() {
			plog.L(ctx).Error(i18n.NewError(ctx, msgs.MsgFatalRevert, st.TxHash, info.Name))
			return Abort
		}

		plog.L(ctx).Warnf("confirmer: %s (%s) reverted: %s, will retry with a fresh nonce", st.Name, st.TxHash, info)
		// The entry remains un-confirmed and its hash is cleared so the
		// submitter treats it as not-yet-sent and assigns it a fresh
		// nonce on the next outer iteration.
		st.TxHash = nil
		c.interrupter.SleepOrInterrupted(retryInterval())
		return Retry
	}

	return AllConfirmed
}
