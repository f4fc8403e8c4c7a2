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

package shared

import (
	"context"
	"time"

	"github.com/l3montree-dev/assessor/database/models"
	"github.com/l3montree-dev/assessor/dtos"
)

type CachedContentRepository interface {
	Transaction(ctx context.Context, fn func(tx DB) error) error
	// UpsertByURL inserts or replaces the row for content.URL and sets content.ID.
	UpsertByURL(tx DB, content *models.CachedContent) error
	FindByURL(tx DB, url string) (models.CachedContent, error)
	FindByURLAndSnapshot(tx DB, url string, snapshotID *string) (models.CachedContent, error)
}

type FactRepository interface {
	Create(tx DB, fact *models.Fact) error
	ListByContentID(tx DB, contentID int64) ([]models.Fact, error)
}

type SnapshotRepository interface {
	// CreateIfNotExists reports whether a new row was written.
	CreateIfNotExists(tx DB, snapshot *models.Snapshot) (bool, error)
	Read(tx DB, snapshotID string) (models.Snapshot, error)
}

// CacheQuery filters a cache read. A nil SnapshotID means no explicit pin.
type CacheQuery struct {
	MaxAge     time.Duration
	SnapshotID *string
}

type FactInput struct {
	ContentID  int64
	Claim      string
	ParserID   string
	SourceType string
	Payload    any
	SnapshotID *string
}

type EvidenceCache interface {
	UpsertContent(ctx context.Context, url string, raw []byte, snapshotID *string) (int64, error)
	GetCachedContent(ctx context.Context, url string, query CacheQuery) (*models.CachedContent, error)
	RecordFact(ctx context.Context, fact FactInput) (int64, error)
	CreateSnapshot(ctx context.Context, snapshotID string, dependencyLock map[string]string) error
	GetSnapshot(ctx context.Context, snapshotID string) (*models.Snapshot, error)
	CurrentSnapshot() *string
	ReadOnly() bool
}

// FetchOptions are the caller flags every collector honors.
type FetchOptions struct {
	Offline    bool
	SnapshotID *string
	// Replay forbids network access and cache writes.
	Replay bool
}

type Collector interface {
	Source() string
	// Collect always returns a usable signal, empty when evidence is unavailable.
	Collect(ctx context.Context, subject dtos.EntityIdentity, opts FetchOptions) (dtos.Signal, error)
}

type Resolver interface {
	Resolve(in dtos.ResolveInput) (dtos.EntityIdentity, error)
	Peers(identity dtos.EntityIdentity, limit int) []dtos.Alternative
}

type AssessmentService interface {
	Assess(ctx context.Context, req dtos.AssessmentRequest) (dtos.Assessment, error)
	Compare(ctx context.Context, req dtos.CompareRequest) (dtos.Comparison, error)
}

type SnapshotService interface {
	CreateSnapshot(ctx context.Context, snapshotID string, dependencyLock map[string]string) error
	GetSnapshot(ctx context.Context, snapshotID string) (*models.Snapshot, error)
}
