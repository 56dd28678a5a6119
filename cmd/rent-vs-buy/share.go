package main

import (
	"fmt"

	"github.com/iwvelando/rent-vs-buy/pkg/scenario"
	"github.com/iwvelando/rent-vs-buy/pkg/validation"
	"github.com/spf13/cobra"
)

func newShareCmd(o *options) *cobra.Command {
	f := &scenarioFlags{}
	var baseURL string
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Print a share code, or a share URL when --base-url is set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := o.resolveScenario(f)
			if err != nil {
				return err
			}
			if err := validation.ValidateInputs(in); err != nil {
				return err
			}

			var shared string
			if baseURL != "" {
				shared, err = scenario.ShareURL(baseURL, in)
			} else {
				shared, err = scenario.EncodeShareCode(in)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), shared)
			return err
		},
	}
	bindScenarioFlags(cmd, f)
	cmd.Flags().StringVar(&baseURL, "base-url", "", "page the share URL points at")
	return cmd
}
