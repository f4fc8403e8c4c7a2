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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/l3montree-dev/assessor/database/models"
	"github.com/l3montree-dev/assessor/mocks"
	"github.com/l3montree-dev/assessor/shared"
	"github.com/opencontainers/go-digest"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

func passThroughTransaction(repo *mocks.CachedContentRepository) {
	repo.On("Transaction", mock.Anything, mock.Anything).Return(func(ctx context.Context, fn func(tx shared.DB) error) error {
		return fn(nil)
	})
}

func newTestCache(t *testing.T, opts EvidenceCacheOptions) (*EvidenceCache, *mocks.CachedContentRepository, *mocks.FactRepository, *mocks.SnapshotRepository) {
	contentRepo := mocks.NewCachedContentRepository(t)
	factRepo := mocks.NewFactRepository(t)
	snapshotRepo := mocks.NewSnapshotRepository(t)
	if opts.Clock == nil {
		opts.Clock = func() time.Time { return fixedNow }
	}
	files := NewSnapshotFileStore(t.TempDir())
	return NewEvidenceCache(contentRepo, factRepo, snapshotRepo, files, opts), contentRepo, factRepo, snapshotRepo
}

func storedRow(url string, raw []byte, snapshotID *string, retrievedAt time.Time) models.CachedContent {
	return models.CachedContent{
		ID:          7,
		URL:         url,
		ContentHash: digest.FromBytes(raw).String(),
		RetrievedAt: retrievedAt,
		SnapshotID:  snapshotID,
		Raw:         raw,
	}
}

func TestUpsertContent(t *testing.T) {
	t.Run("should compute the content hash and return the row id", func(t *testing.T) {
		cache, contentRepo, _, _ := newTestCache(t, EvidenceCacheOptions{})
		passThroughTransaction(contentRepo)

		raw := []byte(`{"vulnerabilities":[]}`)
		contentRepo.On("UpsertByURL", mock.Anything, mock.MatchedBy(func(c *models.CachedContent) bool {
			return c.URL == "https://example.org/x" &&
				c.ContentHash == digest.FromBytes(raw).String() &&
				c.RetrievedAt.Equal(fixedNow) &&
				*c.SnapshotID == "s1"
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*models.CachedContent).ID = 42
		}).Return(nil)

		id, err := cache.UpsertContent(context.Background(), "https://example.org/x", raw, shared.Ptr("s1"))
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
	})

	t.Run("should wrap storage failures in a cache io error", func(t *testing.T) {
		cache, contentRepo, _, _ := newTestCache(t, EvidenceCacheOptions{})
		passThroughTransaction(contentRepo)
		contentRepo.On("UpsertByURL", mock.Anything, mock.Anything).Return(errors.New("disk full"))

		_, err := cache.UpsertContent(context.Background(), "https://example.org/x", []byte("a"), nil)
		assert.True(t, shared.IsCacheIOError(err))
	})

	t.Run("should refuse writes when read only", func(t *testing.T) {
		cache, _, _, _ := newTestCache(t, EvidenceCacheOptions{ReadOnly: true})

		_, err := cache.UpsertContent(context.Background(), "https://example.org/x", []byte("a"), nil)
		assert.True(t, shared.IsCacheIOError(err))
		assert.ErrorIs(t, err, shared.ErrReadOnlyCache)
	})
}

func TestGetCachedContent(t *testing.T) {
	ctx := context.Background()
	url := "https://example.org/feed.json"
	raw := []byte("payload")

	t.Run("should return nil when nothing is cached", func(t *testing.T) {
		cache, contentRepo, _, _ := newTestCache(t, EvidenceCacheOptions{})
		passThroughTransaction(contentRepo)
		contentRepo.On("FindByURL", mock.Anything, url).Return(models.CachedContent{}, gorm.ErrRecordNotFound)

		row, err := cache.GetCachedContent(ctx, url, shared.CacheQuery{})
		require.NoError(t, err)
		assert.Nil(t, row)
	})

	t.Run("should return the stored bytes unchanged", func(t *testing.T) {
		cache, contentRepo, _, _ := newTestCache(t, EvidenceCacheOptions{})
		passThroughTransaction(contentRepo)
		contentRepo.On("FindByURL", mock.Anything, url).Return(storedRow(url, raw, nil, fixedNow.Add(-time.Hour)), nil)

		row, err := cache.GetCachedContent(ctx, url, shared.CacheQuery{MaxAge: 24 * time.Hour})
		require.NoError(t, err)
		require.NotNil(t, row)
		assert.Equal(t, raw, row.Raw)
		assert.Equal(t, digest.FromBytes(raw).String(), row.ContentHash)
	})

	t.Run("should treat rows older than max age as absent", func(t *testing.T) {
		cache, contentRepo, _, _ := newTestCache(t, EvidenceCacheOptions{})
		passThroughTransaction(contentRepo)
		contentRepo.On("FindByURL", mock.Anything, url).Return(storedRow(url, raw, nil, fixedNow.Add(-25*time.Hour)), nil)

		row, err := cache.GetCachedContent(ctx, url, shared.CacheQuery{MaxAge: 24 * time.Hour})
		require.NoError(t, err)
		assert.Nil(t, row)
	})

	t.Run("should only look at the requested snapshot", func(t *testing.T) {
		cache, contentRepo, _, _ := newTestCache(t, EvidenceCacheOptions{})
		passThroughTransaction(contentRepo)
		contentRepo.On("FindByURLAndSnapshot", mock.Anything, url, shared.Ptr("s2")).Return(models.CachedContent{}, gorm.ErrRecordNotFound)

		row, err := cache.GetCachedContent(ctx, url, shared.CacheQuery{SnapshotID: shared.Ptr("s2")})
		require.NoError(t, err)
		assert.Nil(t, row)
		contentRepo.AssertNotCalled(t, "FindByURL", mock.Anything, mock.Anything)
	})

	t.Run("should scope unpinned reads to the current snapshot in strict mode", func(t *testing.T) {
		cache, contentRepo, _, _ := newTestCache(t, EvidenceCacheOptions{StrictPin: true, CurrentSnapshot: shared.Ptr("s1")})
		passThroughTransaction(contentRepo)
		contentRepo.On("FindByURLAndSnapshot", mock.Anything, url, shared.Ptr("s1")).Return(storedRow(url, raw, shared.Ptr("s1"), fixedNow), nil)

		row, err := cache.GetCachedContent(ctx, url, shared.CacheQuery{})
		require.NoError(t, err)
		require.NotNil(t, row)
		assert.Equal(t, "s1", *row.SnapshotID)
	})

	t.Run("should only match unlabelled rows in strict mode without a current snapshot", func(t *testing.T) {
		cache, contentRepo, _, _ := newTestCache(t, EvidenceCacheOptions{StrictPin: true})
		passThroughTransaction(contentRepo)
		contentRepo.On("FindByURLAndSnapshot", mock.Anything, url, (*string)(nil)).Return(models.CachedContent{}, gorm.ErrRecordNotFound)

		row, err := cache.GetCachedContent(ctx, url, shared.CacheQuery{})
		require.NoError(t, err)
		assert.Nil(t, row)
	})

	t.Run("should fail on a content hash mismatch", func(t *testing.T) {
		cache, contentRepo, _, _ := newTestCache(t, EvidenceCacheOptions{})
		passThroughTransaction(contentRepo)
		row := storedRow(url, raw, nil, fixedNow)
		row.Raw = []byte("tampered")
		contentRepo.On("FindByURL", mock.Anything, url).Return(row, nil)

		_, err := cache.GetCachedContent(ctx, url, shared.CacheQuery{})
		assert.True(t, shared.IsCacheIOError(err))
	})

	t.Run("should surface storage errors", func(t *testing.T) {
		cache, contentRepo, _, _ := newTestCache(t, EvidenceCacheOptions{})
		passThroughTransaction(contentRepo)
		contentRepo.On("FindByURL", mock.Anything, url).Return(models.CachedContent{}, errors.New("connection reset"))

		_, err := cache.GetCachedContent(ctx, url, shared.CacheQuery{})
		assert.True(t, shared.IsCacheIOError(err))
	})
}

func TestRecordFact(t *testing.T) {
	t.Run("should store the payload as json", func(t *testing.T) {
		cache, contentRepo, factRepo, _ := newTestCache(t, EvidenceCacheOptions{})
		passThroughTransaction(contentRepo)
		factRepo.On("Create", mock.Anything, mock.MatchedBy(func(f *models.Fact) bool {
			return f.ContentID == 7 && f.Claim == "cve_count" && string(f.Payload) == `{"count":3}` && f.CreatedAt.Equal(fixedNow)
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Fact).ID = 1
		}).Return(nil)

		id, err := cache.RecordFact(context.Background(), shared.FactInput{
			ContentID:  7,
			Claim:      "cve_count",
			ParserID:   "nvd-cve-v2@1",
			SourceType: "nvd",
			Payload:    map[string]int{"count": 3},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), id)
	})

	t.Run("should reject unencodable payloads", func(t *testing.T) {
		cache, _, _, _ := newTestCache(t, EvidenceCacheOptions{})

		_, err := cache.RecordFact(context.Background(), shared.FactInput{ContentID: 1, Payload: make(chan int)})
		assert.True(t, shared.IsCacheIOError(err))
	})

	t.Run("should refuse writes when read only", func(t *testing.T) {
		cache, _, _, _ := newTestCache(t, EvidenceCacheOptions{ReadOnly: true})

		_, err := cache.RecordFact(context.Background(), shared.FactInput{ContentID: 1})
		assert.ErrorIs(t, err, shared.ErrReadOnlyCache)
	})
}

func TestCreateSnapshot(t *testing.T) {
	ctx := context.Background()

	t.Run("should write the metadata file exactly once", func(t *testing.T) {
		cache, contentRepo, _, snapshotRepo := newTestCache(t, EvidenceCacheOptions{})
		passThroughTransaction(contentRepo)

		original := models.NewSnapshot("s1", fixedNow, map[string]string{"nvd": "nvd-cve-v2@1"})
		snapshotRepo.On("CreateIfNotExists", mock.Anything, mock.Anything).Return(true, nil).Once()
		snapshotRepo.On("CreateIfNotExists", mock.Anything, mock.Anything).Return(false, nil).Once()
		snapshotRepo.On("Read", mock.Anything, "s1").Return(original, nil).Once()

		require.NoError(t, cache.CreateSnapshot(ctx, "s1", map[string]string{"nvd": "nvd-cve-v2@1"}))
		path := filepath.Join(cache.snapshotFiles.Dir(), "s1.json")
		first, err := os.ReadFile(path)
		require.NoError(t, err)

		require.NoError(t, cache.CreateSnapshot(ctx, "s1", map[string]string{"nvd": "changed"}))
		second, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Contains(t, string(second), "nvd-cve-v2@1")
	})

	t.Run("should reject ids with path separators", func(t *testing.T) {
		cache, _, _, _ := newTestCache(t, EvidenceCacheOptions{})

		err := cache.CreateSnapshot(ctx, "../escape", nil)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		err = cache.CreateSnapshot(ctx, "  ", nil)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("should refuse when read only", func(t *testing.T) {
		cache, _, _, _ := newTestCache(t, EvidenceCacheOptions{ReadOnly: true})

		err := cache.CreateSnapshot(ctx, "s1", nil)
		assert.ErrorIs(t, err, shared.ErrReadOnlyCache)
	})
}

func TestGetSnapshot(t *testing.T) {
	ctx := context.Background()

	t.Run("should fall back to the metadata file", func(t *testing.T) {
		cache, contentRepo, _, snapshotRepo := newTestCache(t, EvidenceCacheOptions{})
		passThroughTransaction(contentRepo)
		snapshotRepo.On("Read", mock.Anything, "s9").Return(models.Snapshot{}, gorm.ErrRecordNotFound)

		created, err := cache.snapshotFiles.WriteIfAbsent(models.NewSnapshot("s9", fixedNow, map[string]string{"kev": "cisa-kev-v1@1"}))
		require.NoError(t, err)
		require.True(t, created)

		snapshot, err := cache.GetSnapshot(ctx, "s9")
		require.NoError(t, err)
		require.NotNil(t, snapshot)
		assert.True(t, snapshot.CreatedAt.Equal(fixedNow))
		assert.Equal(t, map[string]string{"kev": "cisa-kev-v1@1"}, snapshot.Lock())
	})

	t.Run("should return nil for unknown snapshots", func(t *testing.T) {
		cache, contentRepo, _, snapshotRepo := newTestCache(t, EvidenceCacheOptions{})
		passThroughTransaction(contentRepo)
		snapshotRepo.On("Read", mock.Anything, "missing").Return(models.Snapshot{}, gorm.ErrRecordNotFound)

		snapshot, err := cache.GetSnapshot(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, snapshot)
	})
}
