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
	"testing"
	"time"

	"github.com/l3montree-dev/assessor/database/models"
	"github.com/l3montree-dev/assessor/database/repositories"
	"github.com/l3montree-dev/assessor/dtos"
	"github.com/l3montree-dev/assessor/evidence"
	integration_tests "github.com/l3montree-dev/assessor/integrationtestutil"
	"github.com/l3montree-dev/assessor/resolver"
	"github.com/l3montree-dev/assessor/scoring"
	"github.com/l3montree-dev/assessor/shared"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDBCache(db shared.DB, dir string, opts EvidenceCacheOptions) *EvidenceCache {
	return NewEvidenceCache(
		repositories.NewCachedContentRepository(db),
		repositories.NewFactRepository(db),
		repositories.NewSnapshotRepository(db),
		NewSnapshotFileStore(dir),
		opts,
	)
}

func TestEvidenceCacheIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB, terminate := integration_tests.InitDatabaseContainer()
	defer terminate()

	ctx := context.Background()
	dir := t.TempDir()
	cache := newDBCache(testDB.DB, dir, EvidenceCacheOptions{})

	t.Run("should keep one row per url and its id across updates", func(t *testing.T) {
		id1, err := cache.UpsertContent(ctx, "https://example.org/a", []byte("first"), nil)
		require.NoError(t, err)
		id2, err := cache.UpsertContent(ctx, "https://example.org/a", []byte("second"), shared.Ptr("s1"))
		require.NoError(t, err)
		assert.Equal(t, id1, id2)

		row, err := cache.GetCachedContent(ctx, "https://example.org/a", shared.CacheQuery{SnapshotID: shared.Ptr("s1")})
		require.NoError(t, err)
		require.NotNil(t, row)
		assert.Equal(t, []byte("second"), row.Raw)

		row, err = cache.GetCachedContent(ctx, "https://example.org/a", shared.CacheQuery{SnapshotID: shared.Ptr("other")})
		require.NoError(t, err)
		assert.Nil(t, row)
	})

	t.Run("should append facts and refuse to update them", func(t *testing.T) {
		contentID, err := cache.UpsertContent(ctx, "https://example.org/facts", []byte("{}"), nil)
		require.NoError(t, err)

		factID, err := cache.RecordFact(ctx, shared.FactInput{
			ContentID:  contentID,
			Claim:      "cve_list",
			ParserID:   "nvd-cve-v2@1",
			SourceType: "nvd",
			Payload:    map[string]any{"count": 2},
		})
		require.NoError(t, err)
		assert.NotZero(t, factID)

		facts, err := repositories.NewFactRepository(testDB.DB).ListByContentID(nil, contentID)
		require.NoError(t, err)
		require.Len(t, facts, 1)
		assert.JSONEq(t, `{"count":2}`, string(facts[0].Payload))

		err = testDB.DB.Model(&models.Fact{}).Where("id = ?", factID).Update("claim", "changed").Error
		assert.ErrorContains(t, err, "append only")
	})

	t.Run("should create a snapshot once and keep it immutable", func(t *testing.T) {
		require.NoError(t, cache.CreateSnapshot(ctx, "2025-10-01", map[string]string{"nvd": "nvd-cve-v2@1"}))
		first, err := cache.GetSnapshot(ctx, "2025-10-01")
		require.NoError(t, err)
		require.NotNil(t, first)

		require.NoError(t, cache.CreateSnapshot(ctx, "2025-10-01", map[string]string{"nvd": "other"}))
		second, err := cache.GetSnapshot(ctx, "2025-10-01")
		require.NoError(t, err)
		assert.True(t, first.CreatedAt.Equal(second.CreatedAt))
		assert.Equal(t, "nvd-cve-v2@1", second.Lock()["nvd"])

		fromFile, err := NewSnapshotFileStore(dir).Read("2025-10-01")
		require.NoError(t, err)
		assert.Equal(t, "nvd-cve-v2@1", fromFile.Lock()["nvd"])
	})

	t.Run("should surface writes on a read-only pool as cache errors", func(t *testing.T) {
		roDB, closeRO, err := testDB.ReadOnlyPool()
		require.NoError(t, err)
		defer closeRO()

		roCache := newDBCache(roDB, t.TempDir(), EvidenceCacheOptions{})
		_, err = roCache.UpsertContent(ctx, "https://example.org/ro", []byte("x"), nil)
		assert.True(t, shared.IsCacheIOError(err))
		assert.True(t, errors.Is(err, shared.ErrReadOnlyCache))

		row, err := roCache.GetCachedContent(ctx, "https://example.org/a", shared.CacheQuery{})
		require.NoError(t, err)
		assert.NotNil(t, row)
	})
}

func TestAssessmentIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB, terminate := integration_tests.InitDatabaseContainer()
	defer terminate()

	ctx := context.Background()
	dir := t.TempDir()

	hints, err := resolver.LoadBundledHints()
	require.NoError(t, err)
	aliases, err := resolver.LoadBundledAliases()
	require.NoError(t, err)
	res := resolver.NewResolver(hints, aliases)
	weighted, err := scoring.NewWeightedContinuous(scoring.DefaultWeights)
	require.NoError(t, err)

	newService := func(cache *EvidenceCache, replay bool) *assessmentService {
		cfg := evidence.DefaultConfig()
		cfg.Retries = 1
		reader := evidence.NewReadThrough(cache, evidence.NewHTTPClient(cfg), nil, cfg)
		return NewAssessmentService(res, cache, evidence.Collectors(reader, cfg), weighted, AssessmentOptions{Replay: replay})
	}

	t.Run("should assess offline and pin a snapshot", func(t *testing.T) {
		cache := newDBCache(testDB.DB, dir, EvidenceCacheOptions{})
		svc := newService(cache, false)

		assessment, err := svc.Assess(ctx, dtos.AssessmentRequest{
			ResolveInput: dtos.ResolveInput{Product: "PeaZip"},
			Offline:      true,
			SnapshotID:   shared.Ptr("it-1"),
		})
		require.NoError(t, err)

		assert.Equal(t, "PeaZip", assessment.Entity.Product)
		assert.Len(t, assessment.Signals.NVDCVEs, 2)
		assert.Greater(t, assessment.TrustScore.TotalScore, 0)

		snapshot, err := cache.GetSnapshot(ctx, "it-1")
		require.NoError(t, err)
		require.NotNil(t, snapshot)
		assert.True(t, snapshot.CreatedAt.Equal(assessment.Signals.AsOf))
		assert.Equal(t, evidence.NVDParserID, snapshot.Lock()[evidence.SourceNVD])
	})

	t.Run("should replay a snapshot without network or writes", func(t *testing.T) {
		roDB, closeRO, err := testDB.ReadOnlyPool()
		require.NoError(t, err)
		defer closeRO()

		cache := newDBCache(roDB, dir, EvidenceCacheOptions{ReadOnly: true, CurrentSnapshot: shared.Ptr("it-1")})
		svc := newService(cache, true)

		start := time.Now()
		assessment, err := svc.Assess(ctx, dtos.AssessmentRequest{
			ResolveInput: dtos.ResolveInput{Product: "PeaZip"},
		})
		require.NoError(t, err)

		// nothing was fetched live under it-1, so every collector reports unavailable
		assert.Empty(t, assessment.Signals.NVDCVEs)
		assert.NotEmpty(t, assessment.Warnings)
		assert.Equal(t, "it-1", *assessment.SnapshotID)
		assert.Less(t, time.Since(start), 10*time.Second)
	})
}
