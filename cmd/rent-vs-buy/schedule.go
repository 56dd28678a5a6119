package main

import (
	"github.com/iwvelando/rent-vs-buy/pkg/loans"
	"github.com/iwvelando/rent-vs-buy/pkg/mathutil"
	"github.com/iwvelando/rent-vs-buy/pkg/output"
	"github.com/iwvelando/rent-vs-buy/pkg/validation"
	"github.com/spf13/cobra"
)

func newScheduleCmd(o *options) *cobra.Command {
	f := &scenarioFlags{}
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the amortization schedule of the scenario's loan",
		Long: "Print the fixed-payment amortization schedule over the full loan term.\n" +
			"Extra principal payments are not applied.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := o.resolveScenario(f)
			if err != nil {
				return err
			}
			if err := validation.ValidateInputs(in); err != nil {
				return err
			}

			schedule := loans.CalculateAmortizationSchedule(
				in.LoanPrincipal(),
				mathutil.PercentToDecimal(in.InterestRate),
				in.TermMonths(),
			)
			return output.ScheduleFormat(cmd.OutOrStdout(), schedule, o.conf.Output.Format)
		},
	}
	bindScenarioFlags(cmd, f)
	return cmd
}
