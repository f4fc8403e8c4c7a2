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
	"github.com/l3montree-dev/assessor/shared"
	"go.uber.org/fx"
)

// Module expects EvidenceCacheOptions, AssessmentOptions, a *SnapshotFileStore,
// a shared.Resolver, a scoring.WeightedContinuous and the "collectors" group.
var Module = fx.Options(
	fx.Provide(fx.Annotate(NewEvidenceCache, fx.As(new(shared.EvidenceCache), new(shared.SnapshotService)))),
	fx.Provide(fx.Annotate(
		NewAssessmentService,
		fx.ParamTags(``, ``, `group:"collectors"`),
		fx.As(new(shared.AssessmentService)),
	)),
)
