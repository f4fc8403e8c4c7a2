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

package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/l3montree-dev/assessor/database/models"
	"github.com/l3montree-dev/assessor/dtos"
	"github.com/l3montree-dev/assessor/mocks"
	"github.com/l3montree-dev/assessor/shared"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func jsonRequest(t *testing.T, method, target string, body any) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewBuffer(b))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req, httptest.NewRecorder()
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	require.True(t, errors.As(err, &he), "expected echo.HTTPError, got %v", err)
	return he.Code
}

func TestAssessmentControllerAssess(t *testing.T) {
	t.Run("should return the assessment", func(t *testing.T) {
		service := mocks.NewAssessmentService(t)
		service.On("Assess", mock.Anything, mock.MatchedBy(func(req dtos.AssessmentRequest) bool {
			return req.Product == "Slack" && req.Offline
		})).Return(dtos.Assessment{
			Entity:     dtos.EntityIdentity{Vendor: "Slack Technologies", Product: "Slack"},
			TrustScore: dtos.TrustScore{TotalScore: 42},
		}, nil)

		e := echo.New()
		req, rec := jsonRequest(t, http.MethodPost, "/api/v1/assess", map[string]any{"product": "Slack", "offline": true})
		ctx := e.NewContext(req, rec)

		err := NewAssessmentController(service).Assess(ctx)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var got dtos.Assessment
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "Slack Technologies", got.Entity.Vendor)
		assert.Equal(t, 42, got.TrustScore.TotalScore)
	})

	t.Run("should reject a request without a product", func(t *testing.T) {
		service := mocks.NewAssessmentService(t)

		e := echo.New()
		req, rec := jsonRequest(t, http.MethodPost, "/api/v1/assess", map[string]any{"vendor": "Slack"})
		ctx := e.NewContext(req, rec)

		err := NewAssessmentController(service).Assess(ctx)
		assert.Equal(t, http.StatusUnprocessableEntity, httpCode(t, err))
	})

	t.Run("should reject a malformed sha1", func(t *testing.T) {
		service := mocks.NewAssessmentService(t)

		e := echo.New()
		req, rec := jsonRequest(t, http.MethodPost, "/api/v1/assess", map[string]any{"product": "PeaZip", "sha1": "xyz"})
		ctx := e.NewContext(req, rec)

		err := NewAssessmentController(service).Assess(ctx)
		assert.Equal(t, http.StatusUnprocessableEntity, httpCode(t, err))
	})

	t.Run("should map invalid input from the service to 422", func(t *testing.T) {
		service := mocks.NewAssessmentService(t)
		service.On("Assess", mock.Anything, mock.Anything).Return(dtos.Assessment{}, errors.Wrap(shared.ErrInvalidInput, "product is required"))

		e := echo.New()
		req, rec := jsonRequest(t, http.MethodPost, "/api/v1/assess", map[string]any{"product": "   "})
		ctx := e.NewContext(req, rec)

		err := NewAssessmentController(service).Assess(ctx)
		assert.Equal(t, http.StatusUnprocessableEntity, httpCode(t, err))
	})

	t.Run("should map cache failures to 500", func(t *testing.T) {
		service := mocks.NewAssessmentService(t)
		service.On("Assess", mock.Anything, mock.Anything).Return(dtos.Assessment{}, shared.NewCacheIOError("upsert_content", errors.New("disk full")))

		e := echo.New()
		req, rec := jsonRequest(t, http.MethodPost, "/api/v1/assess", map[string]any{"product": "Slack"})
		ctx := e.NewContext(req, rec)

		err := NewAssessmentController(service).Assess(ctx)
		assert.Equal(t, http.StatusInternalServerError, httpCode(t, err))
	})

	t.Run("should map a read-only cache to 409", func(t *testing.T) {
		service := mocks.NewAssessmentService(t)
		service.On("Assess", mock.Anything, mock.Anything).Return(dtos.Assessment{}, shared.NewCacheIOError("create_snapshot", shared.ErrReadOnlyCache))

		e := echo.New()
		req, rec := jsonRequest(t, http.MethodPost, "/api/v1/assess", map[string]any{"product": "Slack"})
		ctx := e.NewContext(req, rec)

		err := NewAssessmentController(service).Assess(ctx)
		assert.Equal(t, http.StatusConflict, httpCode(t, err))
	})
}

func TestAssessmentControllerCompare(t *testing.T) {
	t.Run("should return the ranking", func(t *testing.T) {
		service := mocks.NewAssessmentService(t)
		service.On("Compare", mock.Anything, mock.MatchedBy(func(req dtos.CompareRequest) bool {
			return len(req.Products) == 2
		})).Return(dtos.Comparison{
			Policy: "weighted_continuous",
			Entries: []dtos.ComparisonEntry{
				{Rank: 1, Entity: dtos.EntityIdentity{Product: "Slack"}},
				{Rank: 2, Entity: dtos.EntityIdentity{Product: "PeaZip"}},
			},
		}, nil)

		e := echo.New()
		req, rec := jsonRequest(t, http.MethodPost, "/api/v1/compare", map[string]any{
			"products": []map[string]any{{"product": "Slack"}, {"product": "PeaZip"}},
		})
		ctx := e.NewContext(req, rec)

		err := NewAssessmentController(service).Compare(ctx)
		require.NoError(t, err)

		var got dtos.Comparison
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got.Entries, 2)
		assert.Equal(t, "Slack", got.Entries[0].Entity.Product)
	})

	t.Run("should need at least two products", func(t *testing.T) {
		service := mocks.NewAssessmentService(t)

		e := echo.New()
		req, rec := jsonRequest(t, http.MethodPost, "/api/v1/compare", map[string]any{
			"products": []map[string]any{{"product": "Slack"}},
		})
		ctx := e.NewContext(req, rec)

		err := NewAssessmentController(service).Compare(ctx)
		assert.Equal(t, http.StatusUnprocessableEntity, httpCode(t, err))
	})
}

func TestSnapshotController(t *testing.T) {
	createdAt := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	lock := map[string]string{"nvd": "nvd-cve-v2@1"}

	t.Run("should read a snapshot", func(t *testing.T) {
		service := mocks.NewSnapshotService(t)
		snapshot := models.NewSnapshot("2025-10-01", createdAt, lock)
		service.On("GetSnapshot", mock.Anything, "2025-10-01").Return(&snapshot, nil)

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		ctx := e.NewContext(req, rec)
		ctx.SetParamNames("snapshotID")
		ctx.SetParamValues("2025-10-01")

		err := NewSnapshotController(service).Read(ctx)
		require.NoError(t, err)

		var got dtos.SnapshotDTO
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "2025-10-01", got.SnapshotID)
		assert.True(t, createdAt.Equal(got.CreatedAt))
		assert.Equal(t, lock, got.DependencyLock)
	})

	t.Run("should return 404 for an unknown snapshot", func(t *testing.T) {
		service := mocks.NewSnapshotService(t)
		service.On("GetSnapshot", mock.Anything, "missing").Return(nil, nil)

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		ctx := e.NewContext(req, rec)
		ctx.SetParamNames("snapshotID")
		ctx.SetParamValues("missing")

		err := NewSnapshotController(service).Read(ctx)
		assert.Equal(t, http.StatusNotFound, httpCode(t, err))
	})

	t.Run("should create a snapshot and return it", func(t *testing.T) {
		service := mocks.NewSnapshotService(t)
		snapshot := models.NewSnapshot("run-1", createdAt, lock)
		service.On("CreateSnapshot", mock.Anything, "run-1", lock).Return(nil)
		service.On("GetSnapshot", mock.Anything, "run-1").Return(&snapshot, nil)

		e := echo.New()
		req, rec := jsonRequest(t, http.MethodPost, "/api/v1/snapshots", map[string]any{
			"snapshot_id":     "run-1",
			"dependency_lock": lock,
		})
		ctx := e.NewContext(req, rec)

		err := NewSnapshotController(service).Create(ctx)
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("should map an invalid id to 422", func(t *testing.T) {
		service := mocks.NewSnapshotService(t)
		service.On("CreateSnapshot", mock.Anything, "../etc", mock.Anything).Return(errors.Wrap(shared.ErrInvalidInput, "snapshot id must not contain path separators"))

		e := echo.New()
		req, rec := jsonRequest(t, http.MethodPost, "/api/v1/snapshots", map[string]any{"snapshot_id": "../etc"})
		ctx := e.NewContext(req, rec)

		err := NewSnapshotController(service).Create(ctx)
		assert.Equal(t, http.StatusUnprocessableEntity, httpCode(t, err))
	})
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

func TestHealthController(t *testing.T) {
	t.Run("should report ok when the database answers", func(t *testing.T) {
		cache := mocks.NewEvidenceCache(t)
		cache.On("ReadOnly").Return(true)
		cache.On("CurrentSnapshot").Return(shared.Ptr("2025-10-01"))

		e := echo.New()
		rec := httptest.NewRecorder()
		ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		err := NewHealthController(pingerFunc(func(context.Context) error { return nil }), cache).Health(ctx)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var got HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "ok", got.Status)
		assert.True(t, got.ReadOnly)
		assert.Equal(t, "2025-10-01", *got.Snapshot)
	})

	t.Run("should report degraded when the database is gone", func(t *testing.T) {
		cache := mocks.NewEvidenceCache(t)
		cache.On("ReadOnly").Return(false)
		cache.On("CurrentSnapshot").Return(nil)

		e := echo.New()
		rec := httptest.NewRecorder()
		ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		err := NewHealthController(pingerFunc(func(context.Context) error { return errors.New("connection refused") }), cache).Health(ctx)
		require.NoError(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "connection refused")
	})
}
