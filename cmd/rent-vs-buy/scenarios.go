package main

import (
	"fmt"

	"github.com/iwvelando/rent-vs-buy/pkg/constants"
	"github.com/iwvelando/rent-vs-buy/pkg/output"
	"github.com/iwvelando/rent-vs-buy/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func newScenariosCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "Manage saved scenarios",
	}
	cmd.AddCommand(
		newScenariosSaveCmd(o),
		newScenariosLoadCmd(o),
		newScenariosListCmd(o),
		newScenariosDeleteCmd(o),
	)
	return cmd
}

func newScenariosSaveCmd(o *options) *cobra.Command {
	f := &scenarioFlags{}
	cmd := &cobra.Command{
		Use:   "save NAME",
		Short: "Save a scenario under NAME, replacing any earlier one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := o.resolveScenario(f)
			if err != nil {
				return err
			}
			if err := validation.ValidateInputs(in); err != nil {
				return err
			}

			st, err := o.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Save(args[0], in); err != nil {
				return err
			}
			o.logger.Info("saved scenario",
				zap.String("op", "main.scenariosSave"),
				zap.String("name", args[0]),
			)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Saved scenario %q\n", args[0])
			return err
		},
	}
	bindScenarioFlags(cmd, f)
	return cmd
}

func newScenariosLoadCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "load NAME",
		Short: "Print a saved scenario as YAML, or JSON with --output-format json",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := o.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			saved, err := st.Metadata(args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if o.conf.Output.Format == constants.OutputFormatJSON {
				return output.JSONFormat(w, saved)
			}
			data, err := yaml.Marshal(saved.Inputs)
			if err != nil {
				return fmt.Errorf("failed to encode scenario: %w", err)
			}
			_, err = w.Write(data)
			return err
		},
	}
}

func newScenariosListCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved scenario names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := o.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			names, err := st.List()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if o.conf.Output.Format == constants.OutputFormatJSON {
				return output.JSONFormat(w, names)
			}
			for _, name := range names {
				if _, err := fmt.Fprintln(w, name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newScenariosDeleteCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a saved scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := o.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Delete(args[0]); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted scenario %q\n", args[0])
			return err
		},
	}
}
