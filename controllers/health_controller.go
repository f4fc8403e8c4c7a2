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
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/l3montree-dev/assessor/shared"
)

// Build metadata, set via ldflags by the command package.
var (
	Version = "dev"
	Commit  = "none"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status    string  `json:"status"`
	Database  string  `json:"database"`
	Error     *string `json:"error,omitempty"`
	Version   string  `json:"version"`
	Commit    string  `json:"commit"`
	GoVersion string  `json:"goVersion"`
	ReadOnly  bool    `json:"readOnly"`
	Snapshot  *string `json:"snapshot,omitempty"`
}

type HealthController struct {
	pinger Pinger
	cache  shared.EvidenceCache
}

func NewHealthController(pinger Pinger, cache shared.EvidenceCache) *HealthController {
	return &HealthController{pinger: pinger, cache: cache}
}

// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthController) Health(ctx shared.Context) error {
	resp := HealthResponse{
		Status:    "ok",
		Database:  "ok",
		Version:   Version,
		Commit:    Commit,
		GoVersion: runtime.Version(),
		ReadOnly:  h.cache.ReadOnly(),
		Snapshot:  h.cache.CurrentSnapshot(),
	}

	c, cancel := context.WithTimeout(ctx.Request().Context(), 2*time.Second)
	defer cancel()
	if err := h.pinger.Ping(c); err != nil {
		msg := err.Error()
		resp.Status = "degraded"
		resp.Database = "unreachable"
		resp.Error = &msg
		return ctx.JSON(http.StatusServiceUnavailable, resp)
	}

	return ctx.JSON(http.StatusOK, resp)
}
