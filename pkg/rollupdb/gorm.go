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

package rollupdb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// persistedRollup mirrors the teacher's persistedPubTx row shape: a
// narrow, gorm-tagged struct with exactly the columns this component
// writes, upserted by primary key.
type persistedRollup struct {
	RollupID  uuid.UUID `gorm:"column:rollup_id;primaryKey"`
	CallData  []byte    `gorm:"column:call_data"`
	SentHash  []byte    `gorm:"column:sent_hash"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (persistedRollup) TableName() string { return "rollups" }

// GormRollupDB is the production RollupDatabase, grounded on the
// Table(...).Clauses(clause.OnConflict{...}).Create(...) upsert idiom
// used throughout transaction_manager.go (e.g. MatchUpdateConfirmedTransactions).
type GormRollupDB struct {
	db *gorm.DB
}

// NewGormRollupDB wraps an already-configured *gorm.DB.
func NewGormRollupDB(db *gorm.DB) *GormRollupDB {
	return &GormRollupDB{db: db}
}

func (g *GormRollupDB) SetCallData(ctx context.Context, rollupID uuid.UUID, rollupProofTx []byte) error {
	row := &persistedRollup{RollupID: rollupID, CallData: rollupProofTx, UpdatedAt: time.Now()}
	return g.db.WithContext(ctx).
		Table("rollups").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "rollup_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"call_data", "updated_at"}),
		}).
		Create(row).
		Error
}

func (g *GormRollupDB) ConfirmSent(ctx context.Context, rollupID uuid.UUID, finalTxHash ethtypes.HexBytes0xPrefix) error {
	row := &persistedRollup{RollupID: rollupID, SentHash: finalTxHash, UpdatedAt: time.Now()}
	return g.db.WithContext(ctx).
		Table("rollups").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "rollup_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"sent_hash", "updated_at"}),
		}).
		Create(row).
		Error
}
