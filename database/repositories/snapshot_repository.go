// Copyright (C) 2025 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package repositories

import (
	"github.com/l3montree-dev/assessor/database/models"
	"github.com/l3montree-dev/assessor/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type snapshotRepository struct {
	*GormRepository[string, models.Snapshot]
}

var _ shared.SnapshotRepository = (*snapshotRepository)(nil)

func NewSnapshotRepository(db shared.DB) *snapshotRepository {
	return &snapshotRepository{
		GormRepository: newGormRepository[string, models.Snapshot](db),
	}
}

func (r *snapshotRepository) CreateIfNotExists(tx *gorm.DB, snapshot *models.Snapshot) (bool, error) {
	res := r.GetDB(tx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "snapshot_id"}},
		DoNothing: true,
	}).Create(snapshot)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *snapshotRepository) Read(tx *gorm.DB, snapshotID string) (models.Snapshot, error) {
	var snapshot models.Snapshot
	err := r.GetDB(tx).Where("snapshot_id = ?", snapshotID).First(&snapshot).Error
	return snapshot, err
}
