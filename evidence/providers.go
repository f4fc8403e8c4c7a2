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

package evidence

import (
	"net/http"
	"time"

	"github.com/l3montree-dev/assessor/common"
	"github.com/l3montree-dev/assessor/shared"
	"go.uber.org/fx"
)

const (
	memoSize       = 128
	memoExpiration = 15 * time.Minute
)

func NewHTTPClient(cfg Config) *http.Client {
	return common.NewEvidenceHTTPClient(cfg.Timeout, common.NewMemoTransport(memoSize, memoExpiration))
}

func provideReadThrough(cache shared.EvidenceCache, client *http.Client, cfg Config) *ReadThrough {
	return NewReadThrough(cache, client, nil, cfg)
}

func asCollector(f any) any {
	return fx.Annotate(f, fx.As(new(shared.Collector)), fx.ResultTags(`group:"collectors"`))
}

// Module provides the read path and every collector in the "collectors" group.
var Module = fx.Options(
	fx.Provide(NewHTTPClient),
	fx.Provide(provideReadThrough),
	fx.Provide(asCollector(NewNVDCollector)),
	fx.Provide(asCollector(NewKEVCollector)),
	fx.Provide(asCollector(NewVendorPostureCollector)),
	fx.Provide(asCollector(NewControlsCollector)),
	fx.Provide(asCollector(NewComplianceCollector)),
)

// Collectors builds the full collector set without fx.
func Collectors(reader *ReadThrough, cfg Config) []shared.Collector {
	return []shared.Collector{
		NewNVDCollector(reader, cfg),
		NewKEVCollector(reader, cfg),
		NewVendorPostureCollector(reader),
		NewControlsCollector(reader),
		NewComplianceCollector(reader),
	}
}
