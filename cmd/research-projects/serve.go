// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/research-projects/internal/devserver"
	"github.com/pdiddy/research-projects/internal/secrets"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local development API",
	Long: `Serve runs a SQLite-backed implementation of the project REST API on
--addr. When a server-token secret or server.auth_token is configured, every
API request must carry it as a bearer token. Metrics are exposed at /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		scfg := cfg.Server
		scfg.AuthToken = loadedSecrets.Lookup(secrets.ServerToken, scfg.AuthToken)

		store, err := devserver.OpenStore(scfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log.Info("starting devserver", zap.String("addr", scfg.Addr), zap.String("db", scfg.DBPath))
		return devserver.New(store, scfg, log, reg).Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().String("db", "projects.db", "SQLite database path (:memory: for a throwaway database)")
	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	viper.BindPFlag("server.db_path", serveCmd.Flags().Lookup("db"))

	rootCmd.AddCommand(serveCmd)
}
