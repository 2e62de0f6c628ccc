package main

import (
	"context"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/okian/availreport/internal/sheetgen"
	"github.com/okian/availreport/pkg/logger"
)

// Default configuration constants.
const (
	defaultRows    = 1000
	defaultOutput  = "availability.xlsx"
	defaultTimeout = 2 * time.Minute
)

func main() {
	var (
		rows    = flag.Int("rows", defaultRows, "Number of associates to generate")
		output  = flag.String("output", defaultOutput, "Output file (.xlsx or .csv)")
		roles   = flag.String("roles", "", "Comma separated role labels (default: built-in mix)")
		regions = flag.String("regions", "", "Comma separated regions (default: built-in list)")
		messy   = flag.Bool("messy", false, "Mix in zero, unparseable and blank cells")
		verbose = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	cfg := sheetgen.Config{
		Rows:    *rows,
		Roles:   splitList(*roles),
		Regions: splitList(*regions),
		Messy:   *messy,
	}
	if err := run(cfg, *output); err != nil {
		logger.Get().Error(context.Background(), "gen-sheet failed", logger.Error(err))
		os.Exit(1)
	}
}

func run(cfg sheetgen.Config, output string) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	t, err := sheetgen.Generate(ctx, cfg)
	if err != nil {
		return err
	}
	if err := sheetgen.WriteFile(output, t); err != nil {
		return err
	}
	logger.Get().Info(ctx, "sheet written", logger.String("path", output), logger.Int("rows", t.Len()))
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
