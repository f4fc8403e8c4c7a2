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
)

type AssessmentController struct {
	assessmentService shared.AssessmentService
}

func NewAssessmentController(assessmentService shared.AssessmentService) *AssessmentController {
	return &AssessmentController{
		assessmentService: assessmentService,
	}
}

// @Summary Assess a product
// @Tags Assessment
// @Accept json
// @Produce json
// @Param body body dtos.AssessmentRequest true "Product to assess"
// @Success 200 {object} dtos.Assessment
// @Failure 422 {object} object{message=string} "Invalid input"
// @Failure 500 {object} object{message=string} "Internal server error"
// @Router /assess [post]
func (a *AssessmentController) Assess(ctx shared.Context) error {
	var req dtos.AssessmentRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	assessment, err := a.assessmentService.Assess(ctx.Request().Context(), req)
	if err != nil {
		return toHTTPError(err, "could not assess product")
	}

	return ctx.JSON(http.StatusOK, assessment)
}

// @Summary Compare products
// @Tags Assessment
// @Accept json
// @Produce json
// @Param body body dtos.CompareRequest true "Products to compare"
// @Success 200 {object} dtos.Comparison
// @Failure 422 {object} object{message=string} "Invalid input"
// @Router /compare [post]
func (a *AssessmentController) Compare(ctx shared.Context) error {
	var req dtos.CompareRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	comparison, err := a.assessmentService.Compare(ctx.Request().Context(), req)
	if err != nil {
		return toHTTPError(err, "could not compare products")
	}

	return ctx.JSON(http.StatusOK, comparison)
}
