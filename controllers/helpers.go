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

	"github.com/l3montree-dev/assessor/shared"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// toHTTPError translates service errors into echo errors. Unknown errors
// are handed to the global error handler as they are.
func toHTTPError(err error, message string) error {
	switch {
	case errors.Is(err, shared.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error()).WithInternal(err)
	case errors.Is(err, shared.ErrReadOnlyCache):
		return echo.NewHTTPError(http.StatusConflict, "evidence cache is read-only").WithInternal(err)
	case shared.IsCacheIOError(err):
		return echo.NewHTTPError(http.StatusInternalServerError, "evidence cache failure").WithInternal(err)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, message).WithInternal(err)
	}
}

func bindAndValidate(ctx shared.Context, req any) error {
	if err := ctx.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to process request").WithInternal(err)
	}
	if err := shared.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "could not validate request: "+err.Error())
	}
	return nil
}
