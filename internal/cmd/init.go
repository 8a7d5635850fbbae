package cmd

import (
	"github.com/spf13/cobra"

	"github.com/a-jentleman/pseudo-enum/internal/config"
)

func newInitCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a default configuration file",
		Long:  "Create a default configuration file with an empty [enums] table. An existing file is never overwritten.",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := opts.configPath(cmd)
			if err := config.Init(path); err != nil {
				return err
			}

			opts.log.Info().Str("path", path).Msg("created configuration")
			return nil
		},
	}
}
