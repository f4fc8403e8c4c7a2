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
)

// factRepository exposes no update or delete. The table trigger enforces the same.
type factRepository struct {
	*GormRepository[int64, models.Fact]
}

var _ shared.FactRepository = (*factRepository)(nil)

func NewFactRepository(db shared.DB) *factRepository {
	return &factRepository{
		GormRepository: newGormRepository[int64, models.Fact](db),
	}
}

func (r *factRepository) ListByContentID(tx *gorm.DB, contentID int64) ([]models.Fact, error) {
	var facts []models.Fact
	err := r.GetDB(tx).Where("content_id = ?", contentID).Order("id ASC").Find(&facts).Error
	return facts, err
}
