// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var attachmentCmd = &cobra.Command{
	Use:   "attachment",
	Short: "Manage project attachments",
}

var attachmentRmCmd = &cobra.Command{
	Use:   "rm <entity-type> <entity-id> <file-name>",
	Short: "Delete one attachment",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newClient().Attachments().Delete(cmd.Context(), args[0], args[1], args[2]); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Deleted %s\n", args[2])
		return nil
	},
}

func init() {
	attachmentCmd.AddCommand(attachmentRmCmd)
	rootCmd.AddCommand(attachmentCmd)
}
