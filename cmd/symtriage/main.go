// symtriage classifies patient-reported symptoms into emergency, high,
// medium and low risk tiers with bilingual (English/Bengali) guidance,
// stores each check locally, alerts health workers via ntfy and syncs
// records to the clinic backend when connectivity allows.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bisheshoggo/symtriage/internal/config"
	"github.com/bisheshoggo/symtriage/internal/store"
)

var version = "dev"

var (
	configPath string
	cfg        *config.Config
)

// quietAnnotation marks commands whose stdout is the product, so only errors
// are logged.
const quietAnnotation = "quiet"

var rootCmd = &cobra.Command{
	Use:   "symtriage",
	Short: "Bilingual symptom triage for community health workers",
	Long: `symtriage assesses symptom reports with a deterministic rule cascade
and returns a risk tier with advice in English and Bengali.

Run "symtriage serve" for the HTTP API, or "symtriage assess" for a single
check from the command line.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		level := cfg.Log.Level
		if cmd.Annotations[quietAnnotation] != "" {
			level = "error"
		}
		setupLogging(level)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("symtriage", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default: "+config.DefaultPath()+")")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func quiet() map[string]string {
	return map[string]string{quietAnnotation: "true"}
}

func setupLogging(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// openStore opens the configured storage backend.
func openStore(cfg *config.Config) (*store.DB, error) {
	switch cfg.DB.Driver {
	case "postgres":
		return store.OpenPostgres(cfg.DB.DSN)
	default:
		return store.Open(cfg.DBPath())
	}
}

// dbLocation describes the configured database for status output without
// leaking DSN credentials.
func dbLocation(cfg *config.Config) string {
	if cfg.DB.Driver == "postgres" {
		return "postgres"
	}
	return cfg.DBPath()
}
