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

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/l3montree-dev/assessor/config"
	"github.com/l3montree-dev/assessor/controllers"
	"github.com/l3montree-dev/assessor/monitoring"
	"github.com/l3montree-dev/assessor/router"
	"github.com/l3montree-dev/assessor/shared"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var cfgFile string

// Version information - set via ldflags during build
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

// cfg is loaded once per invocation in PersistentPreRunE.
var cfg config.Config

var shutdownHooks []func(context.Context) error

var RootCmd = &cobra.Command{
	SilenceUsage:      true,
	Use:               "assessor",
	Short:             "Evidence based security trust assessment of software products",
	Version:           version,
	DisableAutoGenTag: true,
	Long: `Evidence based security trust assessment of software products

The assessor resolves a product to its vendor, collects public security evidence
(NVD, CISA KEV, vendor security and trust pages), caches every fetched document
and derives an explainable trust score. Snapshots pin the evidence so an
assessment can be replayed offline. Configuration can be provided via a
./.assessor config file or environment variables (prefix ASSESSOR_).`,
	Example: `  # Assess a product using live evidence
  assessor assess Slack

  # Assess using the bundled fixtures only
  assessor assess PeaZip --offline

  # Pin evidence into a snapshot and replay it later
  assessor snapshot create 2025-10-01
  assessor assess Slack --snapshot 2025-10-01 --replay

  # Rank alternatives
  assessor compare 7-Zip PeaZip WinRAR`,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := cmd.Flags().GetString("logLevel")
		if err != nil {
			return err
		}
		shared.InitLogger(shared.ParseLogLevel(level))

		if err := initializeConfig(cmd); err != nil {
			return err
		}

		cfg, err = config.Load(viper.GetViper())
		if err != nil {
			return err
		}

		return initMonitoring(cmd.Context())
	},

	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return runShutdownHooks(cmd.Context())
	},
}

func Execute(ctx context.Context) {
	err := RootCmd.ExecuteContext(ctx)
	if err != nil {
		runShutdownHooks(context.Background()) // nolint: errcheck
		os.Exit(1)
	}
}

func runShutdownHooks(ctx context.Context) error {
	var firstErr error
	for i := len(shutdownHooks) - 1; i >= 0; i-- {
		if err := shutdownHooks[i](ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	shutdownHooks = nil
	return firstErr
}

func initMonitoring(ctx context.Context) error {
	flush, err := monitoring.InitErrorTracking(cfg.ErrorTrackingDSN, cfg.Environment, version)
	if err != nil {
		slog.Warn("continuing without error tracking", "err", err)
	} else {
		shutdownHooks = append(shutdownHooks, func(context.Context) error {
			flush()
			return nil
		})
	}

	shutdownTracer, err := monitoring.InitTracer(ctx, router.ServiceName, cfg.TraceExporter)
	if err != nil {
		return err
	}
	shutdownHooks = append(shutdownHooks, shutdownTracer)
	return nil
}

func init() {
	controllers.Version = version
	controllers.Commit = commit

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		// version needs neither config nor monitoring
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Assessor\n")
			fmt.Printf("Version:    %s\n", version)
			fmt.Printf("Commit:     %s\n", commit)
			fmt.Printf("Built:      %s\n", date)
			fmt.Printf("Built by:   %s\n", builtBy)
		},
	}

	RootCmd.AddCommand(
		versionCmd,
		NewAssessCommand(),
		NewCompareCommand(),
		NewSnapshotCommand(),
		NewMigrateCommand(),
		NewServeCommand(),
	)

	flags := RootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Path to a config file (default ./.assessor or /etc/assessor/.assessor)")
	flags.StringP("logLevel", "l", "info", "Set the log level. Options: debug, info, warn, error")
	flags.Bool("offline", false, "Never touch the network, read bundled fixtures instead")
	flags.String("snapshot", "", "Pin evidence reads and writes to this snapshot id")
	flags.Bool("replay", false, "Replay a snapshot: read only from the cache, never fetch or write")
	flags.Bool("strictPin", false, "Only serve cache rows that carry the requested snapshot id")
	flags.String("snapshotDir", "snapshots", "Directory for snapshot metadata files")
	flags.Duration("cacheTTL", config.DefaultCacheTTL, "Maximum age of unpinned cache rows")
	flags.Duration("timeout", config.DefaultTimeout, "Per request timeout for evidence fetches")
	flags.Int("retries", config.DefaultRetries, "Maximum attempts per evidence fetch")
	flags.String("nvdApiKey", "", "NVD API key, raises the request rate limit")
	flags.String("weights", "", "Path to a yaml file with weighted scoring weights")
	flags.String("hints", "", "Path to a csv hint table replacing the bundled one")
	flags.String("aliases", "", "Path to a csv alias table replacing the bundled one")
}

func initializeConfig(cmd *cobra.Command) error {
	config.SetDefaults(viper.GetViper())

	// Set the base name of the config file, without the file extension.
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(config.DefaultConfigFilename)
	}

	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/assessor/")
	// Attempt to read the config file, gracefully ignoring errors
	// caused by a config file not being found. Return an error
	// if we cannot parse the config file.
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if there isn't a config file
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		} else {
			slog.Debug("no config file found")
		}
	}

	viper.SetEnvPrefix(config.EnvPrefix)
	// Environment variables can't have dashes in them, so bind them to their equivalent
	// keys with underscores
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	// the shared deployment variables keep their unprefixed names
	_ = viper.BindEnv("nvdApiKey", "ASSESSOR_NVDAPIKEY", "NVD_API_KEY")
	_ = viper.BindEnv("errorTrackingDsn", "ASSESSOR_ERRORTRACKINGDSN", "ERROR_TRACKING_DSN")
	_ = viper.BindEnv("environment", "ASSESSOR_ENVIRONMENT", "ENVIRONMENT")

	bindFlags(cmd)
	return nil
}

// Bind each cobra flag to its associated viper configuration (config file and environment variable)
func bindFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		configName := f.Name

		// Apply the viper config value to the flag when the flag is not set and viper has a value
		if !f.Changed && viper.IsSet(configName) {
			val := viper.Get(configName)
			cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)) // nolint: errcheck
		}

		// Bind the flag to viper
		if err := viper.BindPFlag(configName, f); err != nil {
			slog.Error("could not bind flag to viper", "err", err)
		}
	})
}
