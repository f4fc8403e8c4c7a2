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

type cachedContentRepository struct {
	*GormRepository[int64, models.CachedContent]
}

var _ shared.CachedContentRepository = (*cachedContentRepository)(nil)

func NewCachedContentRepository(db shared.DB) *cachedContentRepository {
	return &cachedContentRepository{
		GormRepository: newGormRepository[int64, models.CachedContent](db),
	}
}

// UpsertByURL is last write wins on url. The returned id is stable across updates.
func (r *cachedContentRepository) UpsertByURL(tx *gorm.DB, content *models.CachedContent) error {
	return r.GetDB(tx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "url"}},
		DoUpdates: clause.AssignmentColumns([]string{"content_hash", "retrieved_at", "snapshot_id", "raw"}),
	}).Create(content).Error
}

func (r *cachedContentRepository) FindByURL(tx *gorm.DB, url string) (models.CachedContent, error) {
	var content models.CachedContent
	err := r.GetDB(tx).Where("url = ?", url).First(&content).Error
	return content, err
}

// FindByURLAndSnapshot matches the snapshot label exactly. A nil snapshot
// only matches rows that carry no label.
func (r *cachedContentRepository) FindByURLAndSnapshot(tx *gorm.DB, url string, snapshotID *string) (models.CachedContent, error) {
	var content models.CachedContent
	q := r.GetDB(tx).Where("url = ?", url)
	if snapshotID == nil {
		q = q.Where("snapshot_id IS NULL")
	} else {
		q = q.Where("snapshot_id = ?", *snapshotID)
	}
	err := q.First(&content).Error
	return content, err
}
