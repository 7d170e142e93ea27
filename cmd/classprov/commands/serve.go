package commands

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tender-barbarian/classprov/internal/finder"
	"github.com/tender-barbarian/classprov/internal/tools"
)

func newServeCommand(opts *rootOptions, version string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve provenance queries as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			idx, err := opts.buildIndexer(cmd, nil)
			if err != nil {
				return err
			}
			log.Info().Msg("Package table ready, serving MCP on stdio")

			s := server.NewMCPServer("classprov", version)
			tools.Register(s, finder.New(idx))

			if err := server.ServeStdio(s); err != nil {
				return fmt.Errorf("serving MCP: %w", err)
			}
			return nil
		},
	}
}
