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
	"net/http"

	"github.com/l3montree-dev/assessor/dtos"
	"github.com/l3montree-dev/assessor/shared"
	"github.com/labstack/echo/v4"
)

type SnapshotController struct {
	snapshotService shared.SnapshotService
}

func NewSnapshotController(snapshotService shared.SnapshotService) *SnapshotController {
	return &SnapshotController{
		snapshotService: snapshotService,
	}
}

// @Summary Read a snapshot
// @Tags Snapshot
// @Produce json
// @Param snapshotID path string true "Snapshot ID"
// @Success 200 {object} dtos.SnapshotDTO
// @Failure 404 {object} object{message=string} "Snapshot not found"
// @Router /snapshots/{snapshotID} [get]
func (s *SnapshotController) Read(ctx shared.Context) error {
	snapshotID := ctx.Param("snapshotID")

	snapshot, err := s.snapshotService.GetSnapshot(ctx.Request().Context(), snapshotID)
	if err != nil {
		return toHTTPError(err, "could not read snapshot")
	}
	if snapshot == nil {
		return echo.NewHTTPError(http.StatusNotFound, "snapshot not found")
	}

	return ctx.JSON(http.StatusOK, snapshot.ToDTO())
}

// @Summary Create a snapshot
// @Tags Snapshot
// @Accept json
// @Produce json
// @Param body body dtos.CreateSnapshotRequest true "Snapshot"
// @Success 201 {object} dtos.SnapshotDTO
// @Router /snapshots [post]
func (s *SnapshotController) Create(ctx shared.Context) error {
	var req dtos.CreateSnapshotRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	c := ctx.Request().Context()
	if err := s.snapshotService.CreateSnapshot(c, req.SnapshotID, req.DependencyLock); err != nil {
		return toHTTPError(err, "could not create snapshot")
	}

	snapshot, err := s.snapshotService.GetSnapshot(c, req.SnapshotID)
	if err != nil {
		return toHTTPError(err, "could not read snapshot")
	}
	if snapshot == nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "snapshot vanished after creation")
	}

	return ctx.JSON(http.StatusCreated, snapshot.ToDTO())
}
