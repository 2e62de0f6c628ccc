package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	service "github.com/okian/availreport/internal/app"
	"github.com/okian/availreport/internal/adapters/watch"
)

func (c *cli) watchCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Regenerate the report whenever the input file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen := c.generator()
			input := args[0]
			path := output
			if path == "" {
				path = service.OutputPath(input, c.cfg.Suffix(gen.Variant()))
			}
			out := cmd.OutOrStdout()
			handler := func(ctx context.Context, changed string) error {
				return generateTo(ctx, gen, service.Source{Path: changed}, path, out)
			}
			return watch.New(input, handler,
				watch.WithDebounce(time.Duration(c.cfg.WatchDebounceMS)*time.Millisecond),
				watch.WithRunOnStart(true),
				watch.WithLogger(c.log.Named("watch")),
			).Run(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default: <input base><suffix> next to the input)")
	return cmd
}
