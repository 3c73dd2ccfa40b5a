// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-projects/internal/saga"
)

var updateCmd = &cobra.Command{
	Use:   "update <project-id>",
	Short: "Update a project, its typed record and attachments",
	Long: `Update overwrites the base project with the YAML input, then updates the
typed record (when the input has a typed section) and replaces the
attachments (when --file is given) concurrently. If either fails, the base
project is restored to the values it had before the update.

The project type cannot change. The typed record id comes from --typed-id
or the typed_id key of the input file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		typedID, _ := cmd.Flags().GetString("typed-id")
		paths, _ := cmd.Flags().GetStringArray("file")

		pf, err := readProjectFile(input)
		if err != nil {
			return err
		}
		if typedID == "" {
			typedID = pf.TypedID
		}
		files, err := readUploads(paths)
		if err != nil {
			return err
		}

		out, err := newOrchestrator(newClient()).UpdateProject(cmd.Context(), saga.UpdateInput{
			ProjectID: args[0],
			Project:   pf.Project,
			Typed:     pf.typedForm(),
			TypedID:   typedID,
			Files:     files,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out.ProjectID)
		return nil
	},
}

func init() {
	updateCmd.Flags().String("input", "", "project YAML input file")
	updateCmd.Flags().String("typed-id", "", "id of the project's typed record")
	updateCmd.Flags().StringArray("file", nil, "attachment replacing the current ones (repeatable)")
	updateCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(updateCmd)
}
