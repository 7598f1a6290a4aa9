package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tagsort/internal/tokens"
)

func newSplitCommand() *cobra.Command {
	var (
		dedup  bool
		join   bool
		exempt []string
	)

	cmd := &cobra.Command{
		Use:   "split [FILE]",
		Short: "Print the top-level tags of a prompt, one per line",
		Long: `Print the top-level tags of a prompt without any interaction.

Reads FILE, or stdin when FILE is omitted or "-".`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			text, err := readAll(cmd, path)
			if err != nil {
				return err
			}

			parts := tokens.Split(text)
			if dedup {
				parts = tokens.Dedup(parts, exempt)
			}

			out := cmd.OutOrStdout()
			if join {
				fmt.Fprintln(out, tokens.Render(parts))
				return nil
			}
			for _, part := range parts {
				fmt.Fprintln(out, part)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dedup, "dedup", false, "Drop repeated tags")
	cmd.Flags().BoolVar(&join, "join", false, "Print the tags joined on one line")
	cmd.Flags().StringSliceVar(&exempt, "exempt-keywords", tokens.DefaultExemptKeywords, "Tags allowed to repeat with --dedup")
	return cmd
}
