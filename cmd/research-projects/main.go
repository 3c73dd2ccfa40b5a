// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the research-projects CLI. It creates
// and updates research projects (base project, typed record and
// attachments) against the project REST API, rolling back partial writes,
// and can run a local development backend.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/research-projects/internal/logger"
	"github.com/pdiddy/research-projects/internal/secrets"
	"github.com/pdiddy/research-projects/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// loadedSecrets holds credentials loaded from the secrets directory at startup.
	loadedSecrets secrets.Store

	cfg types.Config
	log = zap.NewNop()
)

// rootCmd is the base command for the research-projects CLI.
var rootCmd = &cobra.Command{
	Use:   "research-projects",
	Short: "Create and update research projects with rollback",
	Long: `research-projects persists a research project across the project services:
the base project, exactly one typed record (publication, patent or research)
and its attachments. When a later step fails, the earlier writes are undone:
a new project is deleted, an updated project is restored to its prior values.

Project details are read from a YAML input file; attachments are passed
with --file. The serve subcommand runs a local SQLite-backed API for
development.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("decoding config: %w", err)
		}

		jsonLogs, _ := cmd.Flags().GetBool("log-json")
		verbosity, _ := cmd.Flags().GetCount("verbose")
		log = logger.New(jsonLogs, verbosity)

		s, err := secrets.Load(cfg.Client.SecretsDir, os.Stderr)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if keys := s.Keys(); len(keys) > 0 {
			log.Info("loaded secrets", zap.Strings("keys", keys))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		log.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./research-projects.yaml or ~/.config/research-projects/research-projects.yaml)")
	pf.String("base-url", "", "project REST API root")
	pf.Bool("log-json", false, "write logs as JSON")
	pf.CountP("verbose", "v", "increase log verbosity (-v info, -vv debug)")

	viper.BindPFlag("client.base_url", pf.Lookup("base-url"))

	viper.SetDefault("client.base_url", "http://localhost:8080")
	viper.SetDefault("client.timeout", "30s")
	viper.SetDefault("client.user_agent", "research-projects/"+version)
	viper.SetDefault("client.max_retries", 3)
	viper.SetDefault("client.secrets_dir", ".secrets/")
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("server.db_path", "projects.db")
	viper.SetDefault("server.auth_token", "")
	viper.SetDefault("server.max_upload_bytes", 32<<20)
	viper.SetDefault("api_token", "")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("research-projects")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "research-projects"))
		}
	}

	viper.SetEnvPrefix("RESEARCH_PROJECTS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
