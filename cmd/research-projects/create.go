// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-projects/internal/saga"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a project with its typed record and attachments",
	Long: `Create persists a new project from a YAML input file: the base project
first, then its typed record and the --file attachments concurrently. If the
typed record or the upload fails, the new project is deleted.

Prints the new project id on success.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		paths, _ := cmd.Flags().GetStringArray("file")

		pf, err := readProjectFile(input)
		if err != nil {
			return err
		}
		files, err := readUploads(paths)
		if err != nil {
			return err
		}

		out, err := newOrchestrator(newClient()).CreateProject(cmd.Context(), saga.CreateInput{
			Project: pf.Project,
			Typed:   pf.typedForm(),
			Files:   files,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out.ProjectID)
		return nil
	},
}

func init() {
	createCmd.Flags().String("input", "", "project YAML input file")
	createCmd.Flags().StringArray("file", nil, "attachment to upload (repeatable)")
	createCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(createCmd)
}
