package main

import (
	"log"
	"os"

	"github.com/aretw0/idx"
	"github.com/aretw0/idx/internal/logging"
	"github.com/aretw0/idx/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the IDX agent as an MCP Server over Standard Input/Output.
This allows AI agents to list, claim and correlate incidents as tools.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}

		// Ensure logs don't corrupt JSON-RPC on Stdout
		log.SetOutput(os.Stderr)
		logger := logging.New(logging.ParseLevel(settings.LogLevel))

		claims, closeFn, err := newClaimStore(cmd.Context(), settings)
		if err != nil {
			return err
		}
		defer closeFn()

		srv := mcp.NewServer(newSource(settings, logger), claims, idx.Version)
		logger.Info("Starting IDX MCP Server (Stdio)...")
		return srv.ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
