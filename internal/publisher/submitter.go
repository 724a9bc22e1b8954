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

	"github.com/hyperledger/firefly-common/pkg/i18n"

	"github.com/alirezab22/aztec-connect/internal/msgs"
	"github.com/alirezab22/aztec-connect/internal/plog"
	"github.com/alirezab22/aztec-connect/pkg/chainclient"
)

// batchSubmitter assigns startNonce, startNonce+1, ... to each
// not-yet-sent, not-yet-confirmed entry in list order and sends it
// (spec §4.3). Already-confirmed entries are skipped and do not consume
// a nonce, so a retried batch re-sends only what remains outstanding.
type batchSubmitter struct {
	chain       chainclient.ChainClient
	interrupter *Interrupter
}

func newBatchSubmitter(chain chainclient.ChainClient, interrupter *Interrupter) *batchSubmitter {
	return &batchSubmitter{chain: chain, interrupter: interrupter}
}

// submit returns true if the interrupt was observed before every status
// entry obtained a hash; the caller must treat that as ABORTED.
func (s *batchSubmitter) submit(
	ctx context.Context,
	statuses []*TxStatus,
	startNonce uint64,
	maxFeePerGas, maxPriorityFeePerGas *big.Int,
	gasLimit uint64,
	retryInterval retryIntervalFn,
) (interrupted bool) {
	nonce := startNonce
	for _, st := range statuses {
		if st.Confirmed {
			// Already confirmed in a prior iteration; does not consume
			// a nonce and is never resubmitted.
			continue
		}
		if st.sent() {
			// Already has a hash from a prior iteration and is still
			// awaiting confirmation; the confirmer is the only thing
			// that clears TxHash back to nil (on a non-fatal revert),
			// which is what makes an entry eligible for resending.
			continue
		}

		for {
			if s.interrupter.IsSet() {
				return true
			}

			plog.L(ctx).Infof("submitter: sending %s (%d bytes) at nonce %d", st.Name, len(st.Payload), nonce)
			hash, err := s.chain.SendTx(ctx, st.Payload, &chainclient.SendOptions{
				Nonce:                nonce,
				GasLimit:             gasLimit,
				MaxFeePerGas:         maxFeePerGas,
				MaxPriorityFeePerGas: maxPriorityFeePerGas,
			})
			if err != nil {
				plog.L(ctx).Warn(i18n.WrapError(ctx, err, msgs.MsgSendTxFailed, st.Name, nonce))
				if s.interrupter.SleepOrInterrupted(retryInterval()) {
					return true
				}
				continue
			}

			st.TxHash = hash
			plog.L(ctx).Infof("submitter: sent %s at nonce %d, hash %s", st.Name, nonce, hash)
			break
		}

		nonce++
	}
	return false
}
