package main

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/closetcompare/backend/config"
)

// app carries state shared by every subcommand
type app struct {
	out    io.Writer
	format string
	cfg    *config.Config
	logger zerolog.Logger
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out, logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:           "closetctl",
		Short:         "Size charts, catalog sync and recommendations for ClosetCompare",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := newPrinter(a.format)
			return err
		},
	}

	root.PersistentFlags().StringVarP(&a.format, "output", "o", formatText, "output format: text, json or yaml")

	root.AddCommand(
		newChartCmd(a),
		newConvertCmd(a),
		newLetterCmd(a),
		newSyncCmd(a),
		newRecommendCmd(a),
	)

	return root
}

// loadConfig reads configuration once for commands that touch the store or feeds
func (a *app) loadConfig() error {
	if a.cfg != nil {
		return nil
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	a.cfg = cfg
	a.logger = config.SetupLogger(cfg.Logging)
	return nil
}

func (a *app) print(v any) error {
	p, err := newPrinter(a.format)
	if err != nil {
		return err
	}
	return p.Print(a.out, v)
}
