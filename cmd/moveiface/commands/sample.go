package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/moveiface/internal/app"
)

func (c *CLI) newSampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print a reproducible random sample of the collected package ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			size, _ := cmd.Flags().GetInt("size")
			return c.app.Sample(cmd.Context(), app.SampleOptions{
				ConfigPath: configPath,
				Inputs:     inputQuery(cmd),
				Overrides:  inputOverrides(cmd),
				Size:       size,
				Out:        cmd.OutOrStdout(),
			})
		},
	}
	addInputFlags(cmd)
	cmd.Flags().IntP("size", "n", 100, "Number of ids to select (0 or less selects every id)")
	return cmd
}
