// Root command for the stashvault CLI.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/exiletools/stashvault/internal/paths"
	"github.com/exiletools/stashvault/internal/store"
	"github.com/exiletools/stashvault/pkg/types"
)

const version = "0.1.0"

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
	flagVerbose   bool
)

// configDataDir holds the data_dir value loaded from config.yaml. Set by
// PersistentPreRunE so all subcommands can use it.
var configDataDir string

// vault is the open store, set by PersistentPreRunE for every command that
// touches data and released by PersistentPostRunE.
var vault *store.Vault

var rootCmd = &cobra.Command{
	Use:     "stashvault",
	Short:   "StashVault is the local store of a Path of Exile price checker",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}

		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}
		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}
		configDataDir = cfg.GetString(cfgKeyDataDir)

		dataDir, err := resolveDataDir()
		if err != nil {
			return err
		}
		vault, err = store.Open(types.Config{DataDir: dataDir}, newLogger())
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if vault == nil {
			return nil
		}
		return vault.Close()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: platform data dir)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(recentCmd)
	rootCmd.AddCommand(salesCmd)
	rootCmd.AddCommand(ratesCmd)
	rootCmd.AddCommand(alertsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(wipeCmd)
	rootCmd.AddCommand(compactCmd)
}

// newLogger builds the CLI logger. Debug level only with --verbose; the
// store logs migrations and maintenance through it.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// resolveDataDir returns the data directory following the precedence:
// --data-dir flag > config.yaml data_dir > STASHVAULT_DATA_DIR env > default.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > STASHVAULT_CONFIG_DIR env > default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}
