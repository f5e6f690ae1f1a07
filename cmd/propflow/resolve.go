package main

import (
	"github.com/spf13/cobra"

	"github.com/randalmurphal/propflow/config"
)

func newResolveCmd(opts *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "resolve [dir]",
		Short: "Print the resolved properties with their sources",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := config.ParseFormat(format)
			if err != nil {
				return err
			}
			s, err := opts.open(cmd, args)
			if err != nil {
				return err
			}
			res, err := s.resolve(cmd.Context())
			if err != nil {
				return err
			}
			return config.Write(cmd.OutOrStdout(), res, f)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(config.FormatYAML), "Output format: yaml, json or properties")
	return cmd
}

func newTokensCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [dir]",
		Short: "Print the filter token map",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd, args)
			if err != nil {
				return err
			}
			res, err := s.resolve(cmd.Context())
			if err != nil {
				return err
			}
			return config.WriteTokens(cmd.OutOrStdout(), res.Tokens())
		},
	}
}
