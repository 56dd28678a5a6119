package main

import (
	"time"

	"github.com/iwvelando/rent-vs-buy/internal/analysis"
	"github.com/iwvelando/rent-vs-buy/pkg/constants"
	"github.com/iwvelando/rent-vs-buy/pkg/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newProjectCmd(o *options) *cobra.Command {
	f := &scenarioFlags{}
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project a scenario and recommend buying or renting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.runProject(cmd, f)
		},
	}
	bindScenarioFlags(cmd, f)
	cmd.Flags().StringVar(&f.notes, "notes", "", "write an analysis packet carrying these notes")
	return cmd
}

func (o *options) runProject(cmd *cobra.Command, f *scenarioFlags) error {
	const op = "main.runProject"

	in, err := o.resolveScenario(f)
	if err != nil {
		return err
	}

	c, closeCache := newCache(cmd.Context(), o.conf.Cache, o.logger)
	defer closeCache()

	result, err := analysis.NewAnalyzer(o.logger, c).Analyze(cmd.Context(), in)
	if err != nil {
		return err
	}
	o.logger.Debug("projection complete",
		zap.String("op", op),
		zap.String("recommendation", result.Recommendation.Label),
	)

	w := cmd.OutOrStdout()
	if f.notes != "" {
		return output.JSONFormat(w, analysis.NewPacket(result, f.notes, time.Now()))
	}

	switch o.conf.Output.Format {
	case constants.OutputFormatCSV:
		return output.CsvFormat(w, result.Timeline)
	case constants.OutputFormatJSON:
		return output.JSONFormat(w, result)
	default:
		return output.PrettyFormat(w, result)
	}
}
