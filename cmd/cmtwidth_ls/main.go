package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cybersorcerer/cmtwidth/internal/handler"
	"github.com/cybersorcerer/cmtwidth/internal/logger"
	"github.com/cybersorcerer/cmtwidth/internal/reflow"
	"github.com/cybersorcerer/cmtwidth/pkg/lsp"
)

var version = "0.1.0"

func newRootCmd() *cobra.Command {
	var debug, showVer bool
	var maxWidth int

	cmd := &cobra.Command{
		Use:   "cmtwidth_ls",
		Short: "Language server reporting and reflowing over-long comments",
		Long: `Speaks the Language Server Protocol over stdin/stdout. Editors can change
the reflow options through initializationOptions or workspace/didChangeConfiguration
under the "cmtwidth" section.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVer {
				fmt.Fprintf(cmd.OutOrStdout(), "cmtwidth_ls version %s\n", version)
				return nil
			}

			// Initialize logger
			if err := logger.Init(debug); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer logger.Close()

			logger.Info("cmtwidth_ls version %s starting", version)

			cfg := reflow.DefaultConfig()
			cfg.MaxWidth = maxWidth

			h, err := handler.New(version, cfg)
			if err != nil {
				logger.Fatal("Failed to create handler: %v", err)
			}

			// Create LSP server
			server := lsp.NewServer(os.Stdin, os.Stdout, h)
			h.SetServer(server)

			logger.Info("LSP server starting")

			// Start server (blocks until client disconnects)
			if err := server.Start(); err != nil {
				logger.Fatal("Server error: %v", err)
			}

			logger.Info("Server stopped")
			return nil
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
	cmd.Flags().BoolVar(&showVer, "version", false, "Show version")
	cmd.Flags().IntVar(&maxWidth, "max-width", reflow.DefaultConfig().MaxWidth, "Default maximum comment width until the client configures one")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
