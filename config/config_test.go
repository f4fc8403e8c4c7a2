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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoad(t *testing.T) {
	t.Run("should fall back to the defaults", func(t *testing.T) {
		cfg, err := Load(newViper())
		require.NoError(t, err)

		assert.False(t, cfg.Offline)
		assert.Nil(t, cfg.SnapshotID())
		assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
		assert.Equal(t, 10*time.Second, cfg.Timeout)
		assert.Equal(t, 3, cfg.Retries)
		assert.Equal(t, ":8080", cfg.Listen)
	})

	t.Run("should decode durations given as strings and trim values", func(t *testing.T) {
		v := newViper()
		v.Set("cacheTTL", "2h")
		v.Set("timeout", "3s")
		v.Set("snapshot", "  2025-10-01 ")

		cfg, err := Load(v)
		require.NoError(t, err)
		assert.Equal(t, 2*time.Hour, cfg.CacheTTL)
		assert.Equal(t, 3*time.Second, cfg.Timeout)
		assert.Equal(t, "2025-10-01", *cfg.SnapshotID())
	})

	t.Run("should read prefixed environment variables", func(t *testing.T) {
		t.Setenv("ASSESSOR_OFFLINE", "true")
		t.Setenv("ASSESSOR_RETRIES", "5")

		v := newViper()
		v.SetEnvPrefix(EnvPrefix)
		v.AutomaticEnv()

		cfg, err := Load(v)
		require.NoError(t, err)
		assert.True(t, cfg.Offline)
		assert.Equal(t, 5, cfg.Retries)
	})

	t.Run("should refuse replay without a snapshot", func(t *testing.T) {
		v := newViper()
		v.Set("replay", true)

		_, err := Load(v)
		assert.ErrorContains(t, err, "replay needs a snapshot id")
	})

	t.Run("should refuse snapshot ids with path separators", func(t *testing.T) {
		v := newViper()
		v.Set("snapshot", "../escape")

		_, err := Load(v)
		assert.Error(t, err)
	})

	t.Run("should refuse an unknown trace exporter", func(t *testing.T) {
		v := newViper()
		v.Set("traceExporter", "zipkin")

		_, err := Load(v)
		assert.Error(t, err)
	})

	t.Run("should refuse zero retries", func(t *testing.T) {
		v := newViper()
		v.Set("retries", 0)

		_, err := Load(v)
		assert.Error(t, err)
	})
}

func TestDerivedConfig(t *testing.T) {
	v := newViper()
	v.Set("snapshot", "2025-10-01")
	v.Set("replay", true)
	v.Set("strictPin", true)
	v.Set("nvdApiKey", "secret")
	v.Set("retries", 2)
	cfg, err := Load(v)
	require.NoError(t, err)

	t.Run("should open a read-only pool for replay", func(t *testing.T) {
		assert.True(t, cfg.PoolConfig().ReadOnly)
	})

	t.Run("should configure the cache for the snapshot", func(t *testing.T) {
		opts := cfg.CacheOptions()
		assert.True(t, opts.ReadOnly)
		assert.True(t, opts.StrictPin)
		assert.Equal(t, "2025-10-01", *opts.CurrentSnapshot)
		assert.True(t, cfg.AssessmentOptions().Replay)
	})

	t.Run("should carry fetch settings into the evidence config", func(t *testing.T) {
		ev := cfg.Evidence()
		assert.Equal(t, "secret", ev.NVDAPIKey)
		assert.Equal(t, 2, ev.Retries)
		assert.Equal(t, 24*time.Hour, ev.TTL)
		assert.NotEmpty(t, ev.NVDBaseURL)
		assert.NotEmpty(t, ev.KEVURL)
	})

	t.Run("should load the bundled resolver tables", func(t *testing.T) {
		r, err := cfg.Resolver()
		require.NoError(t, err)
		assert.NotNil(t, r)
	})

	t.Run("should use the default weights", func(t *testing.T) {
		policy, err := cfg.WeightedPolicy()
		require.NoError(t, err)
		assert.InDelta(t, 0.30, policy.Weights.Exposure, 1e-9)
	})

	t.Run("should reject a weights file that does not sum to one", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "weights.yaml")
		require.NoError(t, os.WriteFile(path, []byte("exposure: 0.9\ncontrols: 0.9\n"), 0o600))

		c := cfg
		c.WeightsPath = path
		_, err := c.WeightedPolicy()
		assert.ErrorContains(t, err, "sum to 1")
	})

	t.Run("should point the snapshot store at the configured directory", func(t *testing.T) {
		assert.Equal(t, "snapshots", cfg.SnapshotFileStore().Dir())
	})
}
