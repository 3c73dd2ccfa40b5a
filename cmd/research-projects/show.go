// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-projects/internal/errors"
	"github.com/pdiddy/research-projects/internal/saga"
	"github.com/pdiddy/research-projects/pkg/types"
)

// projectView is what show prints.
type projectView struct {
	Project     *types.Project     `yaml:"project"`
	Typed       *types.TypedRecord `yaml:"typed,omitempty"`
	Attachments []types.Attachment `yaml:"attachments,omitempty"`
}

var showCmd = &cobra.Command{
	Use:   "show <project-id>",
	Short: "Print a project with its typed record and attachments as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		c := newClient()

		p, err := c.Projects().Get(ctx, args[0])
		if err != nil {
			return err
		}
		view := projectView{Project: p}

		typed, err := c.Projects().Typed(ctx, p.ID)
		switch {
		case err == nil:
			view.Typed = typed
		case !errors.Is(err, errors.ErrNotFound):
			return err
		}

		if entity, ok := saga.EntityFor(p.Type); ok {
			if view.Attachments, err = c.Attachments().List(ctx, entity, p.ID); err != nil {
				return err
			}
		}

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(view)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
