package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/moveiface/internal/app"
)

func (c *CLI) newIndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index <stream.jsonl>",
		Short: "Rebuild lookup artifacts from a report or legacy stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			return c.app.Index(cmd.Context(), app.IndexOptions{
				Source: args[0],
				OutDir: out,
			})
		},
	}
	cmd.Flags().StringP("out", "o", app.DefaultIndexDir, "Directory the index artifacts are written to")
	return cmd
}
