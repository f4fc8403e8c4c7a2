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
)

// CachedContent is the last fetched body of one evidence url.
type CachedContent struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	URL         string    `json:"url" gorm:"type:text;not null;uniqueIndex"`
	ContentHash string    `json:"contentHash" gorm:"type:text;not null"`
	RetrievedAt time.Time `json:"retrievedAt" gorm:"not null"`
	SnapshotID  *string   `json:"snapshotId" gorm:"type:text;index"`
	Raw         []byte    `json:"-" gorm:"type:bytea;not null"`
}

func (CachedContent) TableName() string {
	return "cached_contents"
}
