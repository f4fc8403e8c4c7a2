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

package resolver

import (
	"embed"
	"encoding/csv"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/l3montree-dev/assessor/normalize"
	"github.com/pkg/errors"
)

//go:embed data/*.csv
var bundledData embed.FS

// Hint is a row of the product hint table.
type Hint struct {
	Product  string
	Vendor   string
	Category string
	Homepage string
	SHA1     string
}

// HintTable maps a normalized product key and optionally a sha1 digest to a hint.
type HintTable struct {
	byProduct map[string]Hint
	bySHA1    map[string]Hint
	order     []string
}

func NewHintTable(hints []Hint) *HintTable {
	t := &HintTable{
		byProduct: make(map[string]Hint, len(hints)),
		bySHA1:    make(map[string]Hint),
	}
	for _, h := range hints {
		key := normalize.Key(h.Product)
		if key == "" {
			continue
		}
		h.Product = normalize.Text(h.Product)
		if _, exists := t.byProduct[key]; !exists {
			t.order = append(t.order, key)
		}
		// last row wins, same as reading the csv into a dict
		t.byProduct[key] = h
		if sha := normalize.HexKey(h.SHA1); sha != "" {
			t.bySHA1[sha] = h
		}
	}
	return t
}

func (t *HintTable) Lookup(product string) (Hint, bool) {
	if t == nil {
		return Hint{}, false
	}
	h, ok := t.byProduct[normalize.Key(product)]
	return h, ok
}

func (t *HintTable) LookupSHA1(sha1 string) (Hint, bool) {
	if t == nil {
		return Hint{}, false
	}
	h, ok := t.bySHA1[normalize.HexKey(sha1)]
	return h, ok
}

// ByCategory returns every hint of the given category in table order.
func (t *HintTable) ByCategory(category string) []Hint {
	if t == nil {
		return nil
	}
	want := normalize.Key(category)
	var res []Hint
	for _, key := range t.order {
		h := t.byProduct[key]
		if normalize.Key(h.Category) == want {
			res = append(res, h)
		}
	}
	return res
}

func (t *HintTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.byProduct)
}

// AliasTable maps a case folded alias to its canonical vendor name.
type AliasTable struct {
	aliases map[string]string
	keys    []string
}

// NewAliasTable builds the table from alias to vendor pairs. Every canonical
// vendor is registered as an alias of itself so canonicalization is idempotent.
func NewAliasTable(aliases map[string]string) *AliasTable {
	t := &AliasTable{aliases: make(map[string]string, len(aliases)*2)}
	for alias, vendor := range aliases {
		vendor = normalize.Text(vendor)
		if vendor == "" {
			continue
		}
		if key := normalize.Key(alias); key != "" {
			t.aliases[key] = vendor
		}
	}
	for _, vendor := range t.aliases {
		key := normalize.Key(vendor)
		if _, exists := t.aliases[key]; !exists {
			t.aliases[key] = vendor
		}
	}
	t.keys = make([]string, 0, len(t.aliases))
	for k := range t.aliases {
		t.keys = append(t.keys, k)
	}
	sort.Strings(t.keys)
	return t
}

func (t *AliasTable) Lookup(alias string) (string, bool) {
	if t == nil {
		return "", false
	}
	v, ok := t.aliases[normalize.Key(alias)]
	return v, ok
}

// Keys returns the alias keys in sorted order.
func (t *AliasTable) Keys() []string {
	if t == nil {
		return nil
	}
	return t.keys
}

func (t *AliasTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.aliases)
}

func ReadHintTable(r io.Reader) (*HintTable, error) {
	rows, err := readCSV(r, "product_name", "company_name")
	if err != nil {
		return nil, errors.Wrap(err, "could not read hint table")
	}
	hints := make([]Hint, 0, len(rows))
	for _, row := range rows {
		hints = append(hints, Hint{
			Product:  row["product_name"],
			Vendor:   row["company_name"],
			Category: row["category"],
			Homepage: row["homepage"],
			SHA1:     row["sha1"],
		})
	}
	return NewHintTable(hints), nil
}

func ReadAliasTable(r io.Reader) (*AliasTable, error) {
	rows, err := readCSV(r, "alias", "vendor")
	if err != nil {
		return nil, errors.Wrap(err, "could not read alias table")
	}
	aliases := make(map[string]string, len(rows))
	for _, row := range rows {
		aliases[row["alias"]] = row["vendor"]
	}
	return NewAliasTable(aliases), nil
}

func LoadBundledHints() (*HintTable, error) {
	f, err := bundledData.Open("data/products.csv")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadHintTable(f)
}

func LoadBundledAliases() (*AliasTable, error) {
	f, err := bundledData.Open("data/aliases.csv")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadAliasTable(f)
}

// LoadHints reads the hint table from path, or the bundled table if path is empty.
func LoadHints(path string) (*HintTable, error) {
	if path == "" {
		return LoadBundledHints()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not open hint table")
	}
	defer f.Close()
	return ReadHintTable(f)
}

// LoadAliases reads the alias table from path, or the bundled table if path is empty.
func LoadAliases(path string) (*AliasTable, error) {
	if path == "" {
		return LoadBundledAliases()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not open alias table")
	}
	defer f.Close()
	return ReadAliasTable(f)
}

// readCSV returns one map per record keyed by the header row.
func readCSV(r io.Reader, required ...string) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}
	for _, col := range required {
		found := false
		for _, h := range header {
			if h == col {
				found = true
				break
			}
		}
		if !found {
			return nil, errors.Errorf("missing column %q", col)
		}
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
