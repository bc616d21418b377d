// Command linprog solves small linear programs with the graphical method,
// the standard simplex, the Big-M simplex or the minimization adapter.
//
// Usage:
//
//	linprog solve --method bigm --problem problem.yaml --trace
//	linprog solve --method simplex --mps afiro.mps
//	linprog serve --addr :8080 --config linprog.yaml
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"q.log/linprog/config"
)

var (
	configPath string

	rootCmd = &cobra.Command{
		Use:           "linprog",
		Short:         "Solve small dense linear programs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML configuration file")
	rootCmd.AddCommand(solveCmd, serveCmd)
}

// loadConfig reads --config and installs the configured logger as default.
func loadConfig() (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, slog.Default(), err
	}
	logger := cfg.Log.NewLogger()
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("linprog failed", "error", err)
		os.Exit(1)
	}
}
