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

package msgs

import (
	"sync"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"golang.org/x/text/language"
)

var registered sync.Once
var ffe = func(key, translation string, statusHint ...int) i18n.ErrorMessageKey {
	registered.Do(func() {
		i18n.RegisterPrefix("RP01", "Rollup Publisher")
	})
	return i18n.FFE(language.AmericanEnglish, key, translation, statusHint...)
}

var (
	// Batch construction and submission RP0100XX
	MsgBuildBatchFailed  = ffe("RP010000", "failed to build the L1 submission batch for rollup '%s'")
	MsgSetCallDataFailed = ffe("RP010001", "failed to persist call data for rollup '%s'")
	MsgGetAccountsFailed = ffe("RP010002", "failed to retrieve signer accounts")
	MsgNoSignerAccounts  = ffe("RP010003", "chain client returned no signer accounts")
	MsgGetNonceFailed    = ffe("RP010004", "failed to retrieve transaction count for signer '%s'")
	MsgSendTxFailed      = ffe("RP010005", "failed to send transaction '%s' at nonce %d")
	MsgConfirmSentFailed = ffe("RP010006", "failed to persist sent status for rollup '%s'")

	// Gate RP0101XX
	MsgGetBlockFailed   = ffe("RP010100", "failed to retrieve latest block header")
	MsgGetBalanceFailed = ffe("RP010101", "failed to retrieve balance for signer '%s'")

	// Confirmer RP0102XX
	MsgReceiptFailed   = ffe("RP010200", "failed to retrieve receipt for transaction '%s'")
	MsgReceiptTimedOut = ffe("RP010201", "no receipt returned for transaction '%s' within the poll budget")
	MsgFatalRevert     = ffe("RP010202", "transaction '%s' reverted with fatal reason '%s': contract state has advanced")

	// Orchestrator RP0103XX
	MsgPublishAlreadyActive = ffe("RP010300", "a publish call is already active on this publisher instance")
)
