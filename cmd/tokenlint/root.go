package main

import (
	"github.com/spf13/cobra"

	"bennypowers.dev/tokenlint/internal/log"
)

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "tokenlint",
		Short: "Check design tokens for naming and scale consistency",
		Long: `tokenlint reads the custom properties of a stylesheet's :root rule, a
page's <style> block, or a DTCG token file, and checks them against the
design system's naming patterns, value formats and ordered scales.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("log-level") {
				return nil
			}
			return setLogLevel(logLevel)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn or error")

	root.AddCommand(
		newCheckCmd(),
		newLSPCmd(),
		newBindingsCmd(),
		newLookupCmd(),
		newVersionCmd(),
	)
	return root
}

func setLogLevel(name string) error {
	level, err := log.ParseLevel(name)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	return nil
}
