package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/okian/availreport/internal/adapters/loader"
	"github.com/okian/availreport/internal/adapters/render"
	service "github.com/okian/availreport/internal/app"
	"github.com/okian/availreport/internal/config"
	"github.com/okian/availreport/internal/domain/sample"
	"github.com/okian/availreport/pkg/logger"
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// cli carries state shared by the commands once PersistentPreRunE ran.
type cli struct {
	cfg *config.Config
	log logger.Logger

	variant string
	output  string
	sample  bool
	summary bool
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "availreport [file]",
		Short: "Render a personnel availability spreadsheet as a self-contained HTML report",
		Long: `availreport reads an .xlsx, .xlsm, .xls or .csv sheet with the columns
"Current Role", "Region", "Associate ID", "Associate Name" and
"Current Availability" and writes an interactive HTML report next to it.`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		RunE:              c.runGenerate,
	}
	root.PersistentFlags().StringVarP(&c.variant, "variant", "v", "", "report variant: dashboard or tree (default from config)")
	root.Flags().StringVarP(&c.output, "output", "o", "", "output path (default: <input base><suffix> next to the input)")
	root.Flags().BoolVar(&c.sample, "sample", false, "render the built-in demo dataset instead of a file")
	root.Flags().BoolVar(&c.summary, "summary", false, "print an overview of the input before rendering")

	root.AddCommand(c.serveCmd(), c.watchCmd())
	return root
}

// setup loads configuration, applies flag overrides and initializes logging.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if c.variant != "" {
		r, err := render.New(c.variant)
		if err != nil {
			return err
		}
		cfg.Variant = r.Variant()
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithWriter(cmd.ErrOrStderr())); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	c.log = logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		c.log.Warn(cmd.Context(), "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	c.cfg = cfg
	return nil
}

func (c *cli) generator() *service.Generator {
	return service.New(
		service.WithLogger(c.log),
		service.WithVariant(c.cfg.Variant),
		service.WithTitle(c.cfg.Title),
		service.WithPruneEmptyRegions(c.cfg.TreePruneEmptyRegions),
		service.WithLoader(loader.New(loader.WithSheet(c.cfg.Sheet), loader.WithLogger(c.log))),
	)
}

func (c *cli) runGenerate(cmd *cobra.Command, args []string) error {
	var (
		src   service.Source
		input string
	)
	switch {
	case c.sample:
		src = service.Source{Name: "sample", Table: sample.Table()}
		input = "sample"
	case len(args) == 1:
		src = service.Source{Path: args[0]}
		input = args[0]
	default:
		return cmd.Help()
	}

	ctx := cmd.Context()
	gen := c.generator()
	out := cmd.OutOrStdout()

	if c.summary {
		ov, err := gen.Inspect(ctx, src)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out, renderOverview(filepath.Base(input), ov)); err != nil {
			return err
		}
	}

	path := c.output
	if path == "" {
		path = service.OutputPath(input, c.cfg.Suffix(gen.Variant()))
	}
	return generateTo(ctx, gen, src, path, out)
}

// generateTo renders src and atomically writes it to path.
func generateTo(ctx context.Context, gen *service.Generator, src service.Source, path string, out io.Writer) error {
	doc, err := gen.Generate(ctx, src)
	if err != nil {
		return err
	}
	if err := service.WriteFile(path, doc.HTML); err != nil {
		return err
	}

	msg := fmt.Sprintf("%s report written to %s (%d associates", doc.Variant, path, doc.Records)
	if doc.Dropped > 0 {
		msg += fmt.Sprintf(", %d without availability", doc.Dropped)
	}
	if n := len(doc.Issues); n > 0 {
		msg += fmt.Sprintf(", %d rows skipped", n)
	}
	_, err = fmt.Fprintln(out, msg+")")
	return err
}
