// patina is the weathering morphospace CLI: it serves the MCP tool server
// and exposes the same operations as terminal commands.
//
// Usage:
//
//	patina serve [--metrics-addr=:9090]
//	patina states [--visual]
//	patina presets
//	patina sequence --preset=<name> | --from=<id> --to=<id> [--waveform=...]
//	patina distance <id> <id>
//	patina vocab --state=<id> | --coord=axis=v,...
//	patina prompt --attractor=<id> [--mode=...] [--style=...]
//	patina classify "<intent text>"
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"patina/internal/catalog"
	"patina/internal/config"
	"patina/internal/format"
	"patina/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	configPath string
	logLevel   string
	logFormat  string
	catalog    string
	table      string
}

// app holds what PersistentPreRunE resolved for the running command.
var app struct {
	cfg     *config.Config
	content *catalog.Content
	table   format.Mode
	logger  *slog.Logger
}

var rootCmd = &cobra.Command{
	Use:   "patina",
	Short: "Weathering morphospace engine and MCP server",
	Long: "Patina maps weathering and patina aesthetics onto a five-axis parameter space:\n" +
		"nearest-state classification, rhythmic oscillation between states and\n" +
		"prompt assembly from curated attractor coordinates.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&rootFlags.configPath, "config", "", "Path to YAML config file")
	f.StringVar(&rootFlags.logLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")
	f.StringVar(&rootFlags.logFormat, "log-format", "", "Log format: text or json (default from config)")
	f.StringVar(&rootFlags.catalog, "catalog", "", "Replacement morphospace YAML (default: embedded content)")
	f.StringVar(&rootFlags.table, "table", "ascii", "Table style for human output: ascii or markdown")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statesCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(sequenceCmd)
	rootCmd.AddCommand(distanceCmd)
	rootCmd.AddCommand(vocabCmd)
	rootCmd.AddCommand(promptCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.Version = version
}

func setup(cmd *cobra.Command, _ []string) error {
	overrides := &config.Config{
		Log:     config.LogConfig{Level: rootFlags.logLevel, Format: rootFlags.logFormat},
		Catalog: config.CatalogConfig{Path: rootFlags.catalog},
	}
	cfg, err := config.NewLoader(nil).Load(rootFlags.configPath, overrides)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	mode, err := format.ParseMode(rootFlags.table)
	if err != nil {
		return err
	}

	app.cfg = cfg
	app.table = mode
	app.logger = logging.Init(cfg.SlogLevel(), cfg.Log.Format, cmd.ErrOrStderr())

	if cfg.Catalog.Path != "" {
		app.content, err = catalog.LoadFile(cfg.Catalog.Path)
		if err != nil {
			return err
		}
		app.logger.Info("loaded replacement catalog", slog.String("path", cfg.Catalog.Path))
		return nil
	}
	app.content, err = catalog.Default()
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
