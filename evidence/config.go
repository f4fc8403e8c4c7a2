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

import "time"

const (
	DefaultNVDBaseURL = "https://services.nvd.nist.gov/rest/json/cves/2.0"
	DefaultKEVURL     = "https://www.cisa.gov/sites/default/files/feeds/known_exploited_vulnerabilities.json"
)

type Config struct {
	// TTL bounds the age of unpinned cache rows that are reused.
	TTL     time.Duration
	Timeout time.Duration
	Retries int
	Backoff time.Duration

	NVDBaseURL string
	NVDAPIKey  string
	// NVDRequestInterval spaces live NVD calls. Zero picks the public limit
	// matching whether an api key is set.
	NVDRequestInterval time.Duration
	NVDResultsPerPage  int

	KEVURL string
}

func DefaultConfig() Config {
	return Config{
		TTL:               24 * time.Hour,
		Timeout:           10 * time.Second,
		Retries:           3,
		Backoff:           500 * time.Millisecond,
		NVDBaseURL:        DefaultNVDBaseURL,
		NVDResultsPerPage: 100,
		KEVURL:            DefaultKEVURL,
	}
}

func (c Config) nvdInterval() time.Duration {
	if c.NVDRequestInterval > 0 {
		return c.NVDRequestInterval
	}
	// nvd allows 5 requests per 30 seconds without a key and 50 with one
	if c.NVDAPIKey != "" {
		return 600 * time.Millisecond
	}
	return 6 * time.Second
}
