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
	"embed"
	"io/fs"
	"path"
	"strings"

	"github.com/gosimple/slug"
	"github.com/pkg/errors"
)

//go:embed fixtures
var bundledFixtures embed.FS

// BundledFixtures returns the fixture tree rooted at the source directories.
func BundledFixtures() fs.FS {
	sub, err := fs.Sub(bundledFixtures, "fixtures")
	if err != nil {
		panic(err)
	}
	return sub
}

// FixtureName maps a subject to its fixture file name.
func FixtureName(subject, ext string) string {
	return slug.Make(subject) + "." + strings.TrimPrefix(ext, ".")
}

func readFixture(fixtures fs.FS, source, name string) ([]byte, error) {
	if name == "" {
		return nil, errors.New("offline and no fixture defined")
	}
	raw, err := fs.ReadFile(fixtures, path.Join(source, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Errorf("offline and no fixture %s/%s", source, name)
		}
		return nil, errors.Wrap(err, "could not read fixture")
	}
	return raw, nil
}
