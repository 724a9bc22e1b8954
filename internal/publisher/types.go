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
	"strconv"

	"github.com/google/uuid"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

// Rollup is one opaque rollup-proof payload plus an ordered sequence of
// broadcast-data payloads, both produced upstream. RollupID is used only
// to report progress to the rollup database.
type Rollup struct {
	RollupID     uuid.UUID
	Proof        []byte
	Signatures   [][]byte
	OffchainData [][]byte
}

// TxStatus is the mutable per-transaction record the submitter and
// confirmer cooperate over. The status list's order is invariant for the
// lifetime of one publish attempt: broadcast transactions first in
// original order, then the rollup-proof transaction last.
type TxStatus struct {
	// Name is a human-readable label for logs/errors, e.g.
	// "broadcast[0]" or "rollupProof".
	Name string
	// Payload is the transaction's raw, already-encoded bytes.
	Payload []byte
	// TxHash is assigned on the first successful submission attempt.
	// Nil means "not yet sent".
	TxHash ethtypes.HexBytes0xPrefix
	// Confirmed is set once a receipt with status=true is observed.
	// Once true, this entry is never resubmitted by this publish call.
	Confirmed bool
}

func (s *TxStatus) sent() bool {
	return s.TxHash != nil
}

// Outcome is the only thing publish returns to its caller: no exceptions
// cross this boundary, only PUBLISHED or ABORTED.
type Outcome int

const (
	Aborted Outcome = iota
	Published
)

func (o Outcome) String() string {
	if o == Published {
		return "PUBLISHED"
	}
	return "ABORTED"
}

// buildStatusList constructs the ordered status list for one publish
// attempt: broadcast transactions first in original order, then the
// rollup-proof transaction last, per the data model invariants.
func buildStatusList(rollupProofTx []byte, broadcastTxs [][]byte) []*TxStatus {
	statuses := make([]*TxStatus, 0, len(broadcastTxs)+1)
	for i, b := range broadcastTxs {
		statuses = append(statuses, &TxStatus{
			Name:    broadcastName(i),
			Payload: b,
		})
	}
	statuses = append(statuses, &TxStatus{
		Name:    "rollupProof",
		Payload: rollupProofTx,
	})
	return statuses
}

func broadcastName(i int) string {
	return "broadcast[" + strconv.Itoa(i) + "]"
}
