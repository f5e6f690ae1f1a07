package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd(opts *globalOptions) *cobra.Command {
	var (
		unit      string
		require   []string
		recommend []string
		hint      string
	)

	cmd := &cobra.Command{
		Use:   "check [dir]",
		Short: "Verify that properties are set",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd, args)
			if err != nil {
				return err
			}
			if _, err := s.resolve(cmd.Context()); err != nil {
				return err
			}

			reg := s.plugin.Validator()
			reg.RequireProperties(unit, require...)
			reg.RecommendProperties(unit, recommend, hint)
			if err := reg.Validate(cmd.Context(), s.node.Lookup, []string{unit}); err != nil {
				return err
			}

			observed := reg.Observed(unit)
			names := append(append([]string(nil), require...), recommend...)
			for _, name := range names {
				if v, ok := observed[name]; ok {
					fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", name, v)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%s is not set\n", name)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&unit, "unit", "cli", "Name of the unit of work the checks belong to")
	cmd.Flags().StringSliceVar(&require, "require", nil, "Properties that must be set")
	cmd.Flags().StringSliceVar(&recommend, "recommend", nil, "Properties that should be set")
	cmd.Flags().StringVar(&hint, "hint", "", "Where defaults for recommended properties come from")
	return cmd
}
