// =============================================================================
// Weighing Report - Root Command
// =============================================================================
//
// COBRA CLI STRUCTURE:
//   rootCmd (laporan)
//   ├── exportCmd  (laporan export)
//   ├── showCmd    (laporan show)
//   ├── serveCmd   (laporan serve)
//   ├── tokenCmd   (laporan token save|clear)
//   └── versionCmd (laporan version)
//
// CONFIGURATION (later wins):
//   1. built-in defaults
//   2. config.yaml (--config)
//   3. .env file (--env-file), read into the environment
//   4. LAPORAN_* environment variables, e.g. LAPORAN_SOURCE_BASE_URL
//   5. persistent flags (--source-url, --token, --output-dir, --timezone)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ginjaninja78/weighing-report/internal/config"
	"github.com/ginjaninja78/weighing-report/pkg/logger"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
var cfgFile string

// envFile is the optional .env file.
var envFile string

// verbose switches logging to debug.
var verbose bool

// cfg and log are set by initConfig before any subcommand runs.
var (
	cfg *config.Config
	log *zap.Logger
)

// flagKeys maps persistent flags to the config keys they override.
var flagKeys = map[string]string{
	"source-url": "source.base_url",
	"token":      "session.token",
	"output-dir": "export.output_dir",
	"timezone":   "report.timezone",
}

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

var rootCmd = &cobra.Command{
	Use:   "laporan",
	Short: "Weighing report - view and export weighing transactions",
	Long: `laporan reads weighing transactions from the upstream weighing service
(or a local .json/.csv file), filters and sorts them, and exports the result
as an Excel workbook or a paginated A4 PDF report.

Example Usage:
  laporan show --search kopi --sort waktu-desc
  laporan export --from 2024-01-01 --to 2024-01-31 --format pdf
  laporan export --file ./riwayat.json
  laporan serve`,

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the CLI. It is called by main.main().
func Execute() {
	err := rootCmd.Execute()
	if log != nil {
		_ = log.Sync()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "config.yaml", "Path to the configuration file")
	flags.StringVar(&envFile, "env-file", "", "Path to a .env file (default is ./.env when present)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	flags.String("source-url", "", "Base URL of the upstream weighing service")
	flags.String("token", "", "Bearer token for the upstream weighing service")
	flags.String("output-dir", "", "Directory for exported documents")
	flags.String("timezone", "", "IANA timezone timestamps are shown in")

	for flag, key := range flagKeys {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

// initConfig loads the configuration and the logger.
func initConfig() error {
	if err := config.LoadEnv(envFile); err != nil {
		return err
	}

	loaded, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	viper.SetEnvPrefix("LAPORAN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	for _, key := range config.OverrideKeys {
		if err := viper.BindEnv(key); err != nil {
			return err
		}
	}

	if err := loaded.ApplyOverrides(func(key string) (string, bool) {
		if !viper.IsSet(key) {
			return "", false
		}
		return viper.GetString(key), true
	}); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level := loaded.Log.Level
	if verbose {
		level = "debug"
	}
	l, err := logger.New(level, loaded.Log.Format)
	if err != nil {
		return err
	}

	cfg, log = loaded, l
	log.Debug("configuration loaded", zap.String("config", cfgFile))
	return nil
}
