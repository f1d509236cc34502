package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"bennypowers.dev/tokenlint/internal/site"
)

func newBindingsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "bindings <script.js>",
		Short: "List the event listeners a page script attaches, by selector",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read script %s: %w", args[0], err)
			}
			bindings := site.Bindings(string(data))
			return writeBindings(cmd.OutOrStdout(), bindings, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text or json")
	return cmd
}

func writeBindings(w io.Writer, bindings []site.Binding, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(bindings)
	case "text":
		for _, b := range bindings {
			if _, err := fmt.Fprintf(w, "%d\t%s\t%s\n", b.Line, b.Selector, b.Event); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func newLookupCmd() *cobra.Command {
	var contentPath string

	cmd := &cobra.Command{
		Use:   "lookup <title>",
		Short: "Find the content record a card title opens",
		Long: `Find the content record whose key the visible title contains, either in
full or up to its full-width colon. Exits 1 when no record matches.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := site.LoadContent(contentPath)
			if err != nil {
				return err
			}
			key, entry, ok := store.Lookup(args[0])
			if !ok {
				fmt.Fprintf(cmd.ErrOrStderr(), "no content for %q\n", args[0])
				return &exitCodeError{code: exitFailures}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Key string `json:"key"`
				site.Entry
			}{key, entry})
		},
	}
	cmd.Flags().StringVar(&contentPath, "content", "content.yaml", "YAML file of content records")
	return cmd
}
