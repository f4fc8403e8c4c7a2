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
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/l3montree-dev/assessor/database"
	"github.com/l3montree-dev/assessor/evidence"
	"github.com/l3montree-dev/assessor/resolver"
	"github.com/l3montree-dev/assessor/router"
	"github.com/l3montree-dev/assessor/scoring"
	"github.com/l3montree-dev/assessor/services"
	"github.com/l3montree-dev/assessor/shared"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.uber.org/fx"
)

const (
	DefaultConfigFilename = ".assessor"
	EnvPrefix             = "ASSESSOR"

	DefaultCacheTTL = 24 * time.Hour
	DefaultTimeout  = 10 * time.Second
	DefaultRetries  = 3
)

type Config struct {
	Offline   bool   `json:"offline" mapstructure:"offline"`
	Snapshot  string `json:"snapshot" mapstructure:"snapshot" validate:"omitempty,max=128,excludesall=/\\"`
	Replay    bool   `json:"replay" mapstructure:"replay"`
	StrictPin bool   `json:"strictPin" mapstructure:"strictPin"`

	SnapshotDir string        `json:"snapshotDir" mapstructure:"snapshotDir" validate:"required"`
	CacheTTL    time.Duration `json:"cacheTTL" mapstructure:"cacheTTL" validate:"gte=0"`
	Timeout     time.Duration `json:"timeout" mapstructure:"timeout" validate:"gt=0"`
	Retries     int           `json:"retries" mapstructure:"retries" validate:"min=1,max=10"`

	NVDAPIKey  string `json:"-" mapstructure:"nvdApiKey"`
	NVDBaseURL string `json:"nvdBaseUrl" mapstructure:"nvdBaseUrl" validate:"omitempty,url"`
	KEVURL     string `json:"kevUrl" mapstructure:"kevUrl" validate:"omitempty,url"`

	WeightsPath    string  `json:"weights" mapstructure:"weights"`
	HintsPath      string  `json:"hints" mapstructure:"hints"`
	AliasesPath    string  `json:"aliases" mapstructure:"aliases"`
	FuzzyThreshold float64 `json:"fuzzyThreshold" mapstructure:"fuzzyThreshold" validate:"gte=0,lte=100"`

	Listen           string `json:"listen" mapstructure:"listen"`
	TraceExporter    string `json:"traceExporter" mapstructure:"traceExporter" validate:"omitempty,oneof=stdout otlp-http otlp-grpc"`
	ErrorTrackingDSN string `json:"-" mapstructure:"errorTrackingDsn"`
	Environment      string `json:"environment" mapstructure:"environment"`
}

// SetDefaults registers every key so environment variables are picked up
// by Unmarshal even without a matching flag.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("offline", false)
	v.SetDefault("snapshot", "")
	v.SetDefault("replay", false)
	v.SetDefault("strictPin", false)
	v.SetDefault("snapshotDir", "snapshots")
	v.SetDefault("cacheTTL", DefaultCacheTTL)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("retries", DefaultRetries)
	v.SetDefault("nvdApiKey", "")
	v.SetDefault("nvdBaseUrl", evidence.DefaultNVDBaseURL)
	v.SetDefault("kevUrl", evidence.DefaultKEVURL)
	v.SetDefault("weights", "")
	v.SetDefault("hints", "")
	v.SetDefault("aliases", "")
	v.SetDefault("fuzzyThreshold", resolver.DefaultFuzzyThreshold)
	v.SetDefault("listen", ":8080")
	v.SetDefault("traceExporter", "")
	v.SetDefault("errorTrackingDsn", "")
	v.SetDefault("environment", "dev")
}

// trimStringsHook strips surrounding whitespace from every string value.
func trimStringsHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.String {
		return data, nil
	}
	return strings.TrimSpace(data.(string)), nil
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	err := v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		trimStringsHook,
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return Config{}, errors.Wrap(err, "could not decode configuration")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := shared.V.Struct(c); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	if c.Replay && c.Snapshot == "" {
		return errors.New("invalid configuration: replay needs a snapshot id")
	}
	return nil
}

func (c Config) SnapshotID() *string {
	return shared.PtrOrNil(c.Snapshot)
}

// PoolConfig reads the connection from the POSTGRES_* environment. Replay
// runs on a read-only pool.
func (c Config) PoolConfig() database.PoolConfig {
	cfg := database.GetPoolConfigFromEnv()
	cfg.ReadOnly = c.Replay
	return cfg
}

func (c Config) Evidence() evidence.Config {
	cfg := evidence.DefaultConfig()
	cfg.TTL = c.CacheTTL
	cfg.Timeout = c.Timeout
	cfg.Retries = c.Retries
	cfg.NVDAPIKey = c.NVDAPIKey
	if c.NVDBaseURL != "" {
		cfg.NVDBaseURL = c.NVDBaseURL
	}
	if c.KEVURL != "" {
		cfg.KEVURL = c.KEVURL
	}
	return cfg
}

func (c Config) CacheOptions() services.EvidenceCacheOptions {
	return services.EvidenceCacheOptions{
		ReadOnly:        c.Replay,
		StrictPin:       c.StrictPin,
		CurrentSnapshot: c.SnapshotID(),
	}
}

func (c Config) AssessmentOptions() services.AssessmentOptions {
	return services.AssessmentOptions{Replay: c.Replay}
}

func (c Config) SnapshotFileStore() *services.SnapshotFileStore {
	return services.NewSnapshotFileStore(c.SnapshotDir)
}

func (c Config) Resolver() (*resolver.Resolver, error) {
	hints, err := resolver.LoadHints(c.HintsPath)
	if err != nil {
		return nil, err
	}
	aliases, err := resolver.LoadAliases(c.AliasesPath)
	if err != nil {
		return nil, err
	}
	return resolver.NewResolver(hints, aliases, resolver.WithFuzzyThreshold(c.FuzzyThreshold)), nil
}

func (c Config) WeightedPolicy() (scoring.WeightedContinuous, error) {
	weights, err := scoring.LoadWeights(c.WeightsPath)
	if err != nil {
		return scoring.WeightedContinuous{}, err
	}
	return scoring.NewWeightedContinuous(weights)
}

func (c Config) ServerConfig() router.ServerConfig {
	return router.ServerConfig{Listen: c.Listen, Debug: c.Environment == "dev"}
}

// Module supplies the configuration and everything derived from it.
func (c Config) Module() fx.Option {
	return fx.Options(
		fx.Supply(c),
		fx.Provide(c.PoolConfig),
		fx.Provide(c.Evidence),
		fx.Provide(c.CacheOptions),
		fx.Provide(c.AssessmentOptions),
		fx.Provide(c.SnapshotFileStore),
		fx.Provide(fx.Annotate(c.Resolver, fx.As(new(shared.Resolver)))),
		fx.Provide(c.WeightedPolicy),
		fx.Provide(c.ServerConfig),
	)
}
