package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/avatar-launch/internal/mcp"
	"github.com/ziadkadry99/avatar-launch/internal/studio"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing the prompt architect, image generation and the showcase carousel as tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		session, err := buildSession(cfg)
		if err != nil {
			return err
		}

		database, store, err := openHistory(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		var st *studio.Studio
		gen, err := createGeneratorFromConfig(cfg)
		if err != nil {
			// Log warning but continue; prompt and carousel tools still work.
			fmt.Fprintf(os.Stderr, "Warning: image generation disabled: %v\n", err)
		} else {
			st = studio.New(gen, store)
		}

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "avatarlaunch MCP server started on stdio (image generation=%t, carousel=%t)\n", st != nil, session != nil)

		srv := mcpserver.NewServer(st, session)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
