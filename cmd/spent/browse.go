package main

import (
	"github.com/spf13/cobra"

	"github.com/spentcli/spent/internal/tui"
)

func browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse expenses interactively",
		Long: `Open a full-screen interactive browser for your expenses: search, filter
by category, refresh, and delete without leaving the view.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, client, err := openAuthenticated()
			if err != nil {
				return err
			}

			return tui.Run(cmd.Context(), tui.Config{Client: client})
		},
	}
}
