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

package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/l3montree-dev/assessor/database"
	"github.com/l3montree-dev/assessor/database/models"
	"github.com/l3montree-dev/assessor/monitoring"
	"github.com/l3montree-dev/assessor/shared"
	"github.com/opencontainers/go-digest"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type EvidenceCacheOptions struct {
	// ReadOnly refuses every write before it reaches the store.
	ReadOnly bool
	// StrictPin makes reads without an explicit snapshot use the current
	// snapshot, or only unlabelled rows when there is none.
	StrictPin       bool
	CurrentSnapshot *string
	Clock           func() time.Time
}

type EvidenceCache struct {
	contentRepository  shared.CachedContentRepository
	factRepository     shared.FactRepository
	snapshotRepository shared.SnapshotRepository
	snapshotFiles      *SnapshotFileStore
	opts               EvidenceCacheOptions
}

var _ shared.EvidenceCache = (*EvidenceCache)(nil)

func NewEvidenceCache(
	contentRepository shared.CachedContentRepository,
	factRepository shared.FactRepository,
	snapshotRepository shared.SnapshotRepository,
	snapshotFiles *SnapshotFileStore,
	opts EvidenceCacheOptions,
) *EvidenceCache {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &EvidenceCache{
		contentRepository:  contentRepository,
		factRepository:     factRepository,
		snapshotRepository: snapshotRepository,
		snapshotFiles:      snapshotFiles,
		opts:               opts,
	}
}

func (c *EvidenceCache) now() time.Time {
	return c.opts.Clock().UTC()
}

func (c *EvidenceCache) ReadOnly() bool {
	return c.opts.ReadOnly
}

func (c *EvidenceCache) CurrentSnapshot() *string {
	if c.opts.CurrentSnapshot == nil {
		return nil
	}
	return shared.Ptr(*c.opts.CurrentSnapshot)
}

// fail turns a storage error into a CacheIOError and alerts on it.
func (c *EvidenceCache) fail(op string, err error) error {
	if database.IsReadOnlyViolation(err) {
		err = errors.Wrap(shared.ErrReadOnlyCache, err.Error())
	}
	monitoring.Alert("evidence cache "+op+" failed", err)
	return shared.NewCacheIOError(op, err)
}

func (c *EvidenceCache) guardWrite(op string) error {
	if c.opts.ReadOnly {
		return shared.NewCacheIOError(op, shared.ErrReadOnlyCache)
	}
	return nil
}

// UpsertContent stores raw as the current body of url. The digest is always
// computed here. Last write wins on url.
func (c *EvidenceCache) UpsertContent(ctx context.Context, url string, raw []byte, snapshotID *string) (int64, error) {
	if err := c.guardWrite("upsert_content"); err != nil {
		return 0, err
	}
	if raw == nil {
		raw = []byte{}
	}
	row := models.CachedContent{
		URL:         url,
		ContentHash: digest.FromBytes(raw).String(),
		RetrievedAt: c.now(),
		SnapshotID:  snapshotID,
		Raw:         raw,
	}
	err := c.contentRepository.Transaction(ctx, func(tx shared.DB) error {
		return c.contentRepository.UpsertByURL(tx, &row)
	})
	if err != nil {
		return 0, c.fail("upsert_content", err)
	}
	slog.Debug("cached evidence", "url", url, "contentHash", row.ContentHash, "snapshot", snapshotID)
	return row.ID, nil
}

// GetCachedContent returns nil when no eligible row exists. A snapshot query
// only ever sees rows labelled with that snapshot. Rows older than MaxAge are
// treated as absent.
func (c *EvidenceCache) GetCachedContent(ctx context.Context, url string, query shared.CacheQuery) (*models.CachedContent, error) {
	snapshotID := query.SnapshotID
	scoped := snapshotID != nil
	if !scoped && c.opts.StrictPin {
		snapshotID = c.CurrentSnapshot()
		scoped = true
	}

	var row models.CachedContent
	err := c.contentRepository.Transaction(ctx, func(tx shared.DB) error {
		var err error
		if scoped {
			row, err = c.contentRepository.FindByURLAndSnapshot(tx, url, snapshotID)
		} else {
			row, err = c.contentRepository.FindByURL(tx, url)
		}
		return err
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, c.fail("get_cached_content", err)
	}

	if query.MaxAge > 0 && c.now().Sub(row.RetrievedAt) > query.MaxAge {
		return nil, nil
	}

	if computed := digest.FromBytes(row.Raw).String(); computed != row.ContentHash {
		return nil, c.fail("get_cached_content", errors.Errorf("content hash mismatch for %s: stored %s, computed %s", url, row.ContentHash, computed))
	}
	return &row, nil
}

// RecordFact appends a fact. Facts are never updated or deleted.
func (c *EvidenceCache) RecordFact(ctx context.Context, fact shared.FactInput) (int64, error) {
	if err := c.guardWrite("record_fact"); err != nil {
		return 0, err
	}
	payload, err := json.Marshal(fact.Payload)
	if err != nil {
		return 0, shared.NewCacheIOError("record_fact", errors.Wrap(err, "could not encode payload"))
	}
	row := models.Fact{
		ContentID:  fact.ContentID,
		Claim:      fact.Claim,
		ParserID:   fact.ParserID,
		SourceType: fact.SourceType,
		Payload:    payload,
		SnapshotID: fact.SnapshotID,
		CreatedAt:  c.now(),
	}
	err = c.contentRepository.Transaction(ctx, func(tx shared.DB) error {
		return c.factRepository.Create(tx, &row)
	})
	if err != nil {
		return 0, c.fail("record_fact", err)
	}
	return row.ID, nil
}

// CreateSnapshot is idempotent per id. An existing snapshot keeps its
// original metadata and the call is a no-op apart from restoring a missing
// metadata file.
func (c *EvidenceCache) CreateSnapshot(ctx context.Context, snapshotID string, dependencyLock map[string]string) error {
	if err := ValidateSnapshotID(snapshotID); err != nil {
		return err
	}
	if err := c.guardWrite("create_snapshot"); err != nil {
		return err
	}

	snapshot := models.NewSnapshot(snapshotID, c.now(), dependencyLock)
	err := c.contentRepository.Transaction(ctx, func(tx shared.DB) error {
		created, err := c.snapshotRepository.CreateIfNotExists(tx, &snapshot)
		if err != nil {
			return err
		}
		if !created {
			existing, err := c.snapshotRepository.Read(tx, snapshotID)
			if err != nil {
				return err
			}
			snapshot = existing
		}
		if c.snapshotFiles == nil {
			return nil
		}
		// a failed file write rolls back the row
		_, err = c.snapshotFiles.WriteIfAbsent(snapshot)
		return err
	})
	if err != nil {
		return c.fail("create_snapshot", err)
	}
	slog.Info("snapshot ready", "snapshot", snapshotID, "createdAt", snapshot.CreatedAt)
	return nil
}

// GetSnapshot reads the snapshot row and falls back to the metadata file.
// It returns nil when neither exists.
func (c *EvidenceCache) GetSnapshot(ctx context.Context, snapshotID string) (*models.Snapshot, error) {
	if err := ValidateSnapshotID(snapshotID); err != nil {
		return nil, err
	}
	var snapshot models.Snapshot
	err := c.contentRepository.Transaction(ctx, func(tx shared.DB) error {
		var err error
		snapshot, err = c.snapshotRepository.Read(tx, snapshotID)
		return err
	})
	if err == nil {
		return &snapshot, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, c.fail("get_snapshot", err)
	}
	if c.snapshotFiles == nil {
		return nil, nil
	}
	fromFile, err := c.snapshotFiles.Read(snapshotID)
	if err != nil {
		return nil, c.fail("get_snapshot", err)
	}
	return fromFile, nil
}
