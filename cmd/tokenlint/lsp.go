package main

import (
	"github.com/spf13/cobra"

	"bennypowers.dev/tokenlint/internal/config"
	"bennypowers.dev/tokenlint/internal/log"
	"bennypowers.dev/tokenlint/lsp"
)

func newLSPCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Serve diagnostics to an editor over stdio",
		Long: `Run a language server on stdin and stdout. Open stylesheets and pages
are validated exhaustively on every change. A tokenlint configuration in the
workspace root replaces the one given here.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg := config.DefaultConfig()
			if configPath != "" {
				var err error
				if cfg, err = config.Load(configPath); err != nil {
					return err
				}
			}

			server, err := lsp.NewServer(cfg)
			if err != nil {
				return err
			}
			log.Info("Starting language server")
			return server.RunStdio()
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "configuration used until the workspace provides one")
	return cmd
}
