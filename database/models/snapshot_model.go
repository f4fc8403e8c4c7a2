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

package models

import (
	"time"

	"github.com/l3montree-dev/assessor/dtos"
	"gorm.io/datatypes"
)

type Snapshot struct {
	SnapshotID     string            `json:"snapshotId" gorm:"primaryKey;type:text"`
	CreatedAt      time.Time         `json:"createdAt" gorm:"not null"`
	DependencyLock datatypes.JSONMap `json:"dependencyLock" gorm:"type:jsonb"`
}

func (Snapshot) TableName() string {
	return "snapshots"
}

// Lock returns the dependency lock as plain strings.
func (s Snapshot) Lock() map[string]string {
	res := make(map[string]string, len(s.DependencyLock))
	for k, v := range s.DependencyLock {
		if str, ok := v.(string); ok {
			res[k] = str
		}
	}
	return res
}

func NewSnapshot(id string, createdAt time.Time, lock map[string]string) Snapshot {
	m := make(datatypes.JSONMap, len(lock))
	for k, v := range lock {
		m[k] = v
	}
	return Snapshot{SnapshotID: id, CreatedAt: createdAt, DependencyLock: m}
}

func (s Snapshot) ToDTO() dtos.SnapshotDTO {
	return dtos.SnapshotDTO{
		SnapshotID:     s.SnapshotID,
		CreatedAt:      s.CreatedAt,
		DependencyLock: s.Lock(),
	}
}
