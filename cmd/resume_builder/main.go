// Package main provides the resume_builder CLI: the HTTP API server, a
// local draft editor and an offline PDF renderer.
package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/logger"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configFile string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "resume_builder",
	Short: "Resume builder API server and CLI",
	Long: "Resume builder edits structured resumes, keeps a local draft between sessions, " +
		"stores resumes per user and exports them to PDF.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to a YAML or JSON config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (overrides LOG_LEVEL)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and environment and applies --log-level.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

// cliLogger is the text logger used by interactive commands.
func cliLogger(cfg *config.Config) *logrus.Logger {
	level := cfg.LogLevel
	if logLevel == "" && level == "info" {
		// Interactive commands stay quiet unless asked.
		level = "warn"
	}
	return logger.NewText(level)
}
