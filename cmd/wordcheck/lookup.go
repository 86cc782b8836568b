package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordcheck/internal/dictionary"
	"github.com/at-ishikawa/wordcheck/internal/dictionary/wiktionary"
)

func newLookupCommand() *cobra.Command {
	var format OutputFormat
	command := &cobra.Command{
		Use:   "lookup WORD...",
		Short: "Check words against Wiktionary directly, without a server",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			client := wiktionary.NewClient(cfg.Wiktionary.ClientConfig())
			defer func() {
				_ = client.Close()
			}()
			service := dictionary.NewService(client, cfg.Pipeline.ServiceConfig())
			defer service.Close()

			results := checkWords(cmd.Context(), service, args)
			if err := writeResults(cmd.OutOrStdout(), format, results); err != nil {
				return fmt.Errorf("writeResults > %w", err)
			}
			return countFailures(results)
		},
	}
	addFormatFlag(command.Flags(), &format)
	return command
}
