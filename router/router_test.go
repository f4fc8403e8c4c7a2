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

package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/l3montree-dev/assessor/controllers"
	"github.com/l3montree-dev/assessor/dtos"
	"github.com/l3montree-dev/assessor/mocks"
	"github.com/l3montree-dev/assessor/monitoring"
	"github.com/l3montree-dev/assessor/shared"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func newTestServer(t *testing.T) (*echo.Echo, *mocks.AssessmentService, *mocks.SnapshotService) {
	assessmentService := mocks.NewAssessmentService(t)
	snapshotService := mocks.NewSnapshotService(t)
	cache := mocks.NewEvidenceCache(t)
	cache.On("ReadOnly").Return(false).Maybe()
	cache.On("CurrentSnapshot").Return(nil).Maybe()

	e := NewEcho(false)
	NewAPIV1Router(e,
		controllers.NewAssessmentController(assessmentService),
		controllers.NewSnapshotController(snapshotService),
		controllers.NewHealthController(okPinger{}, cache),
	)
	return e, assessmentService, snapshotService
}

func TestRoutes(t *testing.T) {
	t.Run("should serve health without a trailing slash", func(t *testing.T) {
		e, _, _ := newTestServer(t)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	})

	t.Run("should expose prometheus metrics", func(t *testing.T) {
		e, _, _ := newTestServer(t)
		monitoring.AssessmentDuration.Observe(0.25)
		monitoring.EvidenceReads.WithLabelValues("nvd", "fixture").Inc()

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/metrics/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "assessor_assessment_duration_seconds_count")
		assert.Contains(t, rec.Body.String(), `assessor_evidence_reads_total{origin="fixture",source="nvd"}`)
	})

	t.Run("should route assess to the assessment service", func(t *testing.T) {
		e, assessmentService, _ := newTestServer(t)
		assessmentService.On("Assess", mock.Anything, mock.Anything).Return(dtos.Assessment{Brief: "# Security Assessment"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/assess", strings.NewReader(`{"product":"Slack"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "# Security Assessment")
	})

	t.Run("should render service errors as json", func(t *testing.T) {
		e, assessmentService, _ := newTestServer(t)
		assessmentService.On("Assess", mock.Anything, mock.Anything).Return(dtos.Assessment{}, shared.ErrInvalidInput)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/assess", strings.NewReader(`{"product":"?"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), `"message"`)
	})

	t.Run("should route snapshot reads", func(t *testing.T) {
		e, _, snapshotService := newTestServer(t)
		snapshotService.On("GetSnapshot", mock.Anything, "2025-10-01").Return(nil, nil)

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/snapshots/2025-10-01", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("should recover from panics", func(t *testing.T) {
		e, assessmentService, _ := newTestServer(t)
		assessmentService.On("Assess", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
			panic("boom")
		}).Return(dtos.Assessment{}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/assess", strings.NewReader(`{"product":"Slack"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
