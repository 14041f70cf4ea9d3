package main

import (
	"github.com/spf13/cobra"

	"github.com/tallykeep/tally/internal/database"
	"github.com/tallykeep/tally/internal/mcp"
)

func newMCPCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server",
		Long:  "Start the Model Context Protocol server for tally on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dbCtx, err := opts.open()
			if err != nil {
				return err
			}
			defer func() {
				_ = database.CloseDatabase(dbCtx)
			}()

			return mcp.NewServer(dbCtx, opts.logger).Run(cmd.Context())
		},
	}

	return cmd
}
