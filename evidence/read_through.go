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
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/l3montree-dev/assessor/monitoring"
	"github.com/l3montree-dev/assessor/shared"
	"github.com/l3montree-dev/assessor/utils"
	"github.com/pkg/errors"
)

// Origin names the read path a document came from.
type Origin string

const (
	OriginSnapshot Origin = "snapshot"
	OriginFixture  Origin = "fixture"
	OriginCache    Origin = "cache"
	OriginLive     Origin = "live"
)

// maxBodySize bounds a single evidence download.
const maxBodySize = 32 << 20

type Document struct {
	Raw    []byte
	Origin Origin
	// ContentID is the cache row behind the document, zero for fixtures.
	ContentID int64
}

// Request describes one piece of raw evidence.
type Request struct {
	Source  string
	Subject string
	// URL is the cache key and the live location.
	URL string
	// Fixture is the file name below fixtures/<source>/ used offline.
	Fixture string
	Header  http.Header
	// Wait is called before every live attempt, e.g. to honour a rate limit.
	Wait func(ctx context.Context) error
}

// ReadThrough resolves raw evidence by walking the snapshot, fixture, cache
// and live paths in that order.
type ReadThrough struct {
	cache    shared.EvidenceCache
	client   *http.Client
	fixtures fs.FS
	ttl      time.Duration
	retries  int
	backoff  time.Duration
}

func NewReadThrough(cache shared.EvidenceCache, client *http.Client, fixtures fs.FS, cfg Config) *ReadThrough {
	if fixtures == nil {
		fixtures = BundledFixtures()
	}
	return &ReadThrough{
		cache:    cache,
		client:   client,
		fixtures: fixtures,
		ttl:      cfg.TTL,
		retries:  cfg.Retries,
		backoff:  cfg.Backoff,
	}
}

func (r *ReadThrough) Cache() shared.EvidenceCache {
	return r.cache
}

func (r *ReadThrough) Read(ctx context.Context, req Request, opts shared.FetchOptions) (Document, error) {
	doc, err := r.read(ctx, req, opts)
	if err == nil {
		monitoring.EvidenceReads.WithLabelValues(req.Source, string(doc.Origin)).Inc()
	}
	return doc, err
}

func (r *ReadThrough) read(ctx context.Context, req Request, opts shared.FetchOptions) (Document, error) {
	if opts.SnapshotID != nil {
		row, err := r.cache.GetCachedContent(ctx, req.URL, shared.CacheQuery{SnapshotID: opts.SnapshotID})
		if err != nil {
			return Document{}, err
		}
		if row != nil {
			slog.Debug("evidence from snapshot", "source", req.Source, "url", req.URL, "snapshot", *opts.SnapshotID)
			return Document{Raw: row.Raw, Origin: OriginSnapshot, ContentID: row.ID}, nil
		}
	}

	if opts.Offline {
		raw, err := readFixture(r.fixtures, req.Source, req.Fixture)
		if err != nil {
			return Document{}, shared.NewEvidenceUnavailable(req.Source, req.Subject, err)
		}
		return Document{Raw: raw, Origin: OriginFixture}, nil
	}

	if opts.Replay || r.cache.ReadOnly() {
		return Document{}, shared.NewEvidenceUnavailable(req.Source, req.Subject, errors.New("not part of the replayed snapshot"))
	}

	if opts.SnapshotID == nil && r.ttl > 0 {
		row, err := r.cache.GetCachedContent(ctx, req.URL, shared.CacheQuery{MaxAge: r.ttl})
		if err != nil {
			return Document{}, err
		}
		if row != nil {
			return Document{Raw: row.Raw, Origin: OriginCache, ContentID: row.ID}, nil
		}
	}

	raw, err := utils.Retry(ctx, req.Source, r.retries, r.backoff, func(ctx context.Context) ([]byte, error) {
		return r.fetch(ctx, req)
	})
	if err != nil {
		return Document{}, shared.NewEvidenceUnavailable(req.Source, req.Subject, err)
	}

	id, err := r.cache.UpsertContent(ctx, req.URL, raw, opts.SnapshotID)
	if err != nil {
		return Document{}, err
	}
	return Document{Raw: raw, Origin: OriginLive, ContentID: id}, nil
}

func (r *ReadThrough) fetch(ctx context.Context, req Request) ([]byte, error) {
	if req.Wait != nil {
		if err := req.Wait(ctx); err != nil {
			return nil, utils.Permanent(err)
		}
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return nil, utils.Permanent(errors.Wrap(err, "could not create request"))
	}
	for k, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(k, v)
		}
	}

	res, err := r.client.Do(httpReq)
	if err != nil {
		slog.Warn("could not fetch evidence", "source", req.Source, "url", req.URL, "err", err)
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		statusErr := fmt.Errorf("unexpected status code %d from %s", res.StatusCode, req.URL)
		if res.StatusCode >= 400 && res.StatusCode < 500 && res.StatusCode != http.StatusTooManyRequests {
			return nil, utils.Permanent(statusErr)
		}
		return nil, statusErr
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodySize))
	if err != nil {
		return nil, errors.Wrap(err, "could not read response body")
	}
	return body, nil
}

// record stores one parsed claim about doc. Fixture documents and read-only
// caches produce no facts.
func (r *ReadThrough) record(ctx context.Context, doc Document, source, parserID, claim string, payload any, opts shared.FetchOptions) error {
	if doc.ContentID == 0 || r.cache.ReadOnly() {
		return nil
	}
	_, err := r.cache.RecordFact(ctx, shared.FactInput{
		ContentID:  doc.ContentID,
		Claim:      claim,
		ParserID:   parserID,
		SourceType: source,
		Payload:    payload,
		SnapshotID: opts.SnapshotID,
	})
	return err
}
