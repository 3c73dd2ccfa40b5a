// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/viper"

	"github.com/pdiddy/research-projects/internal/notify"
	"github.com/pdiddy/research-projects/internal/restclient"
	"github.com/pdiddy/research-projects/internal/saga"
)

// newClient returns a REST client authenticated with the api-token secret,
// or with RESEARCH_PROJECTS_API_TOKEN when set.
func newClient() *restclient.Client {
	auth := restclient.SecretToken(loadedSecrets, viper.GetString("api_token"))
	return restclient.New(cfg.Client, auth, log)
}

func newOrchestrator(c *restclient.Client) *saga.Orchestrator {
	return saga.New(c.Repositories(),
		saga.WithLogger(log),
		saga.WithNotifier(notify.NewTerminal(os.Stderr)),
	)
}
