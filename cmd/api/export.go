package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print every note as a JSON array",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		noteService, closeStore, err := openNoteService(cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		data, err := noteService.Snapshot()
		if err != nil {
			return fmt.Errorf("failed to read notes: %w", err)
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	},
}
