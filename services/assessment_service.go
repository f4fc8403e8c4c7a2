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
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/l3montree-dev/assessor/dtos"
	"github.com/l3montree-dev/assessor/monitoring"
	"github.com/l3montree-dev/assessor/scoring"
	"github.com/l3montree-dev/assessor/shared"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultAlternativeLimit = 2
	compareConcurrency      = 4
)

type AssessmentOptions struct {
	// Replay forbids network access for every assessment.
	Replay           bool
	AlternativeLimit int
	Clock            func() time.Time
}

type assessmentService struct {
	resolver   shared.Resolver
	cache      shared.EvidenceCache
	collectors []shared.Collector
	weighted   scoring.WeightedContinuous
	opts       AssessmentOptions
}

var _ shared.AssessmentService = (*assessmentService)(nil)

func NewAssessmentService(
	resolver shared.Resolver,
	cache shared.EvidenceCache,
	collectors []shared.Collector,
	weighted scoring.WeightedContinuous,
	opts AssessmentOptions,
) *assessmentService {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.AlternativeLimit <= 0 {
		opts.AlternativeLimit = DefaultAlternativeLimit
	}
	// merge order follows source names so results do not depend on injection order
	sorted := slices.Clone(collectors)
	slices.SortStableFunc(sorted, func(a, b shared.Collector) int {
		return cmp.Compare(a.Source(), b.Source())
	})
	return &assessmentService{
		resolver:   resolver,
		cache:      cache,
		collectors: sorted,
		weighted:   weighted,
		opts:       opts,
	}
}

// DependencyLock pins the parser version of every collector.
func (s *assessmentService) DependencyLock() map[string]string {
	return DependencyLock(s.collectors)
}

// DependencyLock maps every collector source to the parser version it runs.
func DependencyLock(collectors []shared.Collector) map[string]string {
	lock := make(map[string]string, len(collectors))
	for _, c := range collectors {
		if v, ok := c.(interface{ ParserID() string }); ok {
			lock[c.Source()] = v.ParserID()
		}
	}
	return lock
}

// asOf returns the evaluation time. Pinned assessments use the snapshot
// creation time, which makes replays reproducible.
func (s *assessmentService) asOf(ctx context.Context, snapshotID *string) (time.Time, []string, error) {
	if snapshotID == nil {
		return s.opts.Clock().UTC(), nil, nil
	}

	snapshot, err := s.cache.GetSnapshot(ctx, *snapshotID)
	if err != nil {
		return time.Time{}, nil, err
	}
	if snapshot != nil {
		return snapshot.CreatedAt.UTC(), nil, nil
	}

	if s.cache.ReadOnly() {
		warning := fmt.Sprintf("snapshot %q is unknown, recent CVE velocity is not evaluated", *snapshotID)
		return time.Time{}, []string{warning}, nil
	}

	if err := s.cache.CreateSnapshot(ctx, *snapshotID, s.DependencyLock()); err != nil {
		return time.Time{}, nil, err
	}
	snapshot, err = s.cache.GetSnapshot(ctx, *snapshotID)
	if err != nil {
		return time.Time{}, nil, err
	}
	if snapshot == nil {
		return time.Time{}, nil, shared.NewCacheIOError("get_snapshot", errors.Errorf("snapshot %q vanished after creation", *snapshotID))
	}
	return snapshot.CreatedAt.UTC(), nil, nil
}

// collect runs every collector. Unavailable evidence becomes a warning and an
// empty signal, cache failures abort the assessment.
func (s *assessmentService) collect(ctx context.Context, identity dtos.EntityIdentity, opts shared.FetchOptions) ([]dtos.Signal, []string, error) {
	signals := make([]dtos.Signal, len(s.collectors))
	warnings := make([]string, len(s.collectors))

	group, ctx := errgroup.WithContext(ctx)
	for i, collector := range s.collectors {
		group.Go(func() error {
			ctx, span := monitoring.StartSpan(ctx, "collect", attribute.String("source", collector.Source()))
			defer span.End()

			signal, err := collector.Collect(ctx, identity, opts)
			if err != nil {
				if shared.IsCacheIOError(err) {
					return err
				}
				if !shared.IsEvidenceUnavailable(err) {
					monitoring.Alert("collector failed unexpectedly", err)
				}
				monitoring.CollectorFailures.WithLabelValues(collector.Source()).Inc()
				slog.Warn("evidence unavailable", "source", collector.Source(), "product", identity.Product, "err", err)
				warnings[i] = err.Error()
			}
			signals[i] = signal
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, nil, err
	}

	return signals, slices.DeleteFunc(warnings, func(w string) bool { return w == "" }), nil
}

func (s *assessmentService) Assess(ctx context.Context, req dtos.AssessmentRequest) (dtos.Assessment, error) {
	start := time.Now()
	defer func() {
		monitoring.AssessmentDuration.Observe(time.Since(start).Seconds())
	}()

	if err := shared.V.Struct(req); err != nil {
		return dtos.Assessment{}, errors.Wrap(shared.ErrInvalidInput, err.Error())
	}

	identity, err := s.resolver.Resolve(req.ResolveInput)
	if err != nil {
		return dtos.Assessment{}, errors.Wrap(err, "unable to resolve")
	}

	snapshotID := req.SnapshotID
	if snapshotID == nil {
		snapshotID = s.cache.CurrentSnapshot()
	}

	asOf, warnings, err := s.asOf(ctx, snapshotID)
	if err != nil {
		return dtos.Assessment{}, err
	}

	opts := shared.FetchOptions{
		Offline:    req.Offline,
		SnapshotID: snapshotID,
		Replay:     s.opts.Replay || s.cache.ReadOnly(),
	}
	collected, collectWarnings, err := s.collect(ctx, identity, opts)
	if err != nil {
		return dtos.Assessment{}, err
	}
	warnings = append(warnings, collectWarnings...)

	signals := dtos.Signals{AsOf: asOf}
	for _, signal := range collected {
		signals.Add(signal)
	}

	score := scoring.ComponentSum{}.Score(signals)
	alternatives := s.resolver.Peers(identity, s.opts.AlternativeLimit)

	slog.Info("assessed product", "product", identity.Product, "vendor", identity.Vendor, "score", score.TotalScore, "confidence", score.ConfidenceLevel, "warnings", len(warnings))

	return dtos.Assessment{
		ID:           uuid.New(),
		Entity:       identity,
		Signals:      signals,
		TrustScore:   score,
		Brief:        GenerateBrief(identity, signals, score, alternatives),
		Alternatives: alternatives,
		Warnings:     warnings,
		SnapshotID:   snapshotID,
		AssessedAt:   s.opts.Clock().UTC(),
	}, nil
}

// Compare assesses every product and ranks them by the weighted continuous score.
func (s *assessmentService) Compare(ctx context.Context, req dtos.CompareRequest) (dtos.Comparison, error) {
	if err := shared.V.Struct(req); err != nil {
		return dtos.Comparison{}, errors.Wrap(shared.ErrInvalidInput, err.Error())
	}

	entries := make([]dtos.ComparisonEntry, len(req.Products))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(compareConcurrency)
	for i, product := range req.Products {
		product.Offline = product.Offline || req.Offline
		if product.SnapshotID == nil {
			product.SnapshotID = req.SnapshotID
		}
		group.Go(func() error {
			assessment, err := s.Assess(ctx, product)
			if err != nil {
				return errors.Wrapf(err, "could not assess %q", product.Product)
			}
			result := s.weighted.Evaluate(assessment.Signals)
			entries[i] = dtos.ComparisonEntry{
				Entity:     assessment.Entity,
				TrustScore: assessment.TrustScore,
				Inputs:     result.Inputs,
				Weighted:   result.Weighted,
				Warnings:   assessment.Warnings,
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return dtos.Comparison{}, err
	}

	slices.SortStableFunc(entries, func(a, b dtos.ComparisonEntry) int {
		if c := cmp.Compare(b.Weighted, a.Weighted); c != 0 {
			return c
		}
		if c := cmp.Compare(b.TrustScore.TotalScore, a.TrustScore.TotalScore); c != 0 {
			return c
		}
		return cmp.Compare(a.Entity.Product, b.Entity.Product)
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	return dtos.Comparison{
		Policy:  string(scoring.PolicyWeightedContinuous),
		Entries: entries,
	}, nil
}
