package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/moveiface/internal/app"
)

func (c *CLI) newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Compare local and on-chain package interfaces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")

			overrides := inputOverrides(cmd)
			overrides.OutputDir = changedString(cmd, "out")
			overrides.OutputMode = changedString(cmd, "mode")
			overrides.Telemetry = changedString(cmd, "telemetry")
			overrides.RPCURL = changedString(cmd, "rpc-url")
			overrides.NoRPC = changedBool(cmd, "no-rpc")
			overrides.Workers = changedInt(cmd, "workers")
			overrides.SampleSize = changedInt(cmd, "sample-size")
			overrides.MaxMismatches = changedInt(cmd, "max-mismatches")
			overrides.Resume = changedBool(cmd, "resume")

			return c.app.Verify(cmd.Context(), app.VerifyOptions{
				ConfigPath: configPath,
				Inputs:     inputQuery(cmd),
				Overrides:  overrides,
			})
		},
	}
	addInputFlags(cmd)
	cmd.Flags().StringP("out", "o", "", "Directory the run artifacts are written to")
	cmd.Flags().String("mode", "", "Output mode: detailed, legacy, or both")
	cmd.Flags().String("telemetry", "", "Tracing backend: none, otel, or progrock")
	cmd.Flags().String("rpc-url", "", "Fullnode JSON-RPC endpoint")
	cmd.Flags().Bool("no-rpc", false, "Only normalize local interfaces, skip the comparison")
	cmd.Flags().IntP("workers", "j", 0, "Number of packages verified concurrently")
	cmd.Flags().Int("sample-size", 0, "Verify a reproducible random sample of this size (0 verifies every id)")
	cmd.Flags().Int("max-mismatches", 0, "Mismatches listed per package record")
	cmd.Flags().Bool("resume", false, "Continue an interrupted run from its checkpoint")
	return cmd
}
