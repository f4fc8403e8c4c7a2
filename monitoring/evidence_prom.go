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

package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var EvidenceReads = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "assessor_evidence_reads_total",
	Help: "Evidence documents served, by source and read path",
}, []string{"source", "origin"})

var CollectorFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "assessor_collector_failures_total",
	Help: "Collector runs that ended without evidence",
}, []string{"source"})

var AssessmentDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "assessor_assessment_duration_seconds",
	Help:    "Duration of a single assessment in seconds",
	Buckets: prometheus.DefBuckets,
})
