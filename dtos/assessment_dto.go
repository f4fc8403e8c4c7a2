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

package dtos

import (
	"time"

	"github.com/google/uuid"
)

type OutputFormat string

const (
	OutputFormatTable    OutputFormat = "table"
	OutputFormatJSON     OutputFormat = "json"
	OutputFormatMarkdown OutputFormat = "markdown"
)

type AssessmentRequest struct {
	ResolveInput
	Offline    bool    `json:"offline"`
	SnapshotID *string `json:"snapshot_id,omitempty" validate:"omitempty,min=1,max=128"`
}

type Alternative struct {
	Product  string `json:"product"`
	Vendor   string `json:"vendor"`
	Homepage string `json:"homepage"`
}

type Assessment struct {
	ID           uuid.UUID      `json:"id"`
	Entity       EntityIdentity `json:"entity"`
	Signals      Signals        `json:"signals"`
	TrustScore   TrustScore     `json:"trust_score"`
	Brief        string         `json:"brief"`
	Alternatives []Alternative  `json:"alternatives"`
	Warnings     []string       `json:"warnings"`
	SnapshotID   *string        `json:"snapshot_id,omitempty"`
	AssessedAt   time.Time      `json:"assessed_at"`
}

type CompareRequest struct {
	Products   []AssessmentRequest `json:"products" validate:"required,min=2,dive"`
	Offline    bool                `json:"offline"`
	SnapshotID *string             `json:"snapshot_id,omitempty"`
}

type ComparisonEntry struct {
	Rank       int            `json:"rank"`
	Entity     EntityIdentity `json:"entity"`
	TrustScore TrustScore     `json:"trust_score"`
	Inputs     WeightedInputs `json:"inputs"`
	Weighted   float64        `json:"weighted"`
	Warnings   []string       `json:"warnings"`
}

type Comparison struct {
	Policy  string            `json:"policy"`
	Entries []ComparisonEntry `json:"entries"`
}

type CreateSnapshotRequest struct {
	SnapshotID     string            `json:"snapshot_id" validate:"required,min=1,max=128"`
	DependencyLock map[string]string `json:"dependency_lock"`
}

type SnapshotDTO struct {
	SnapshotID     string            `json:"snapshot_id"`
	CreatedAt      time.Time         `json:"created_at"`
	DependencyLock map[string]string `json:"dependency_lock"`
}
