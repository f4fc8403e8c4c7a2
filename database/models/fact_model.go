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

	"gorm.io/datatypes"
)

// Fact is an append only claim a parser derived from cached content.
type Fact struct {
	ID         int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	ContentID  int64          `json:"contentId" gorm:"not null;index"`
	Claim      string         `json:"claim" gorm:"type:text;not null"`
	ParserID   string         `json:"parserId" gorm:"type:text;not null"`
	SourceType string         `json:"sourceType" gorm:"type:text;not null"`
	Payload    datatypes.JSON `json:"payload" gorm:"type:jsonb"`
	SnapshotID *string        `json:"snapshotId" gorm:"type:text;index"`
	CreatedAt  time.Time      `json:"createdAt"`
}

func (Fact) TableName() string {
	return "facts"
}
