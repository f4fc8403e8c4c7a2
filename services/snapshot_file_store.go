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
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/l3montree-dev/assessor/database/models"
	"github.com/l3montree-dev/assessor/dtos"
	"github.com/l3montree-dev/assessor/shared"
	"github.com/pkg/errors"
)

// ValidateSnapshotID rejects ids that cannot be used as a file name.
func ValidateSnapshotID(snapshotID string) error {
	if strings.TrimSpace(snapshotID) == "" {
		return errors.Wrap(shared.ErrInvalidInput, "snapshot id must not be empty")
	}
	if strings.ContainsAny(snapshotID, `/\`) || snapshotID == "." || snapshotID == ".." {
		return errors.Wrapf(shared.ErrInvalidInput, "snapshot id %q must not contain path separators", snapshotID)
	}
	return nil
}

// SnapshotFileStore keeps one <id>.json metadata file per snapshot. Files are
// written once and never replaced.
type SnapshotFileStore struct {
	dir string
}

func NewSnapshotFileStore(dir string) *SnapshotFileStore {
	return &SnapshotFileStore{dir: dir}
}

func (s *SnapshotFileStore) Dir() string {
	return s.dir
}

func (s *SnapshotFileStore) path(snapshotID string) string {
	return filepath.Join(s.dir, snapshotID+".json")
}

// WriteIfAbsent reports whether the file was created.
func (s *SnapshotFileStore) WriteIfAbsent(snapshot models.Snapshot) (bool, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return false, errors.Wrap(err, "could not create snapshot directory")
	}
	f, err := os.OpenFile(s.path(snapshot.SnapshotID), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, errors.Wrap(err, "could not create snapshot file")
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snapshot.ToDTO()); err != nil {
		return false, errors.Wrap(err, "could not write snapshot file")
	}
	return true, nil
}

// Read returns nil when there is no file for snapshotID.
func (s *SnapshotFileStore) Read(snapshotID string) (*models.Snapshot, error) {
	b, err := os.ReadFile(s.path(snapshotID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "could not read snapshot file")
	}
	var dto dtos.SnapshotDTO
	if err := json.Unmarshal(b, &dto); err != nil {
		return nil, errors.Wrapf(err, "could not decode snapshot file %s", s.path(snapshotID))
	}
	if dto.SnapshotID != snapshotID {
		return nil, errors.Errorf("snapshot file %s belongs to %q", s.path(snapshotID), dto.SnapshotID)
	}
	snapshot := models.NewSnapshot(dto.SnapshotID, dto.CreatedAt, dto.DependencyLock)
	return &snapshot, nil
}
