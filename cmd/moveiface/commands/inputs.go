package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/moveiface/internal/app"
	"go.trai.ch/moveiface/internal/core/domain"
)

// addInputFlags registers the package-id source flags shared by verify and sample.
func addInputFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("config", "c", domain.ConfigFileName, "Path to the configuration file")
	f.StringSlice("package-id", nil, "Package id to verify (repeatable)")
	f.StringSlice("ids-file", nil, "File with one package id per line")
	f.StringSlice("catalog", nil, "MVR catalog.json to read package ids from")
	f.String("network", "mainnet", "Catalog network: mainnet or testnet")
	f.StringSlice("from-report", nil, "Report or legacy JSONL of an earlier run")
	f.Bool("discover", false, "Verify every package of the dataset")
	f.String("dataset-root", "", "Root directory of the package dataset")
	f.Int("max-packages", 0, "Stop after this many collected ids")
}

func inputQuery(cmd *cobra.Command) domain.InputQuery {
	f := cmd.Flags()
	ids, _ := f.GetStringSlice("package-id")
	idFiles, _ := f.GetStringSlice("ids-file")
	catalogs, _ := f.GetStringSlice("catalog")
	network, _ := f.GetString("network")
	reports, _ := f.GetStringSlice("from-report")
	discover, _ := f.GetBool("discover")
	return domain.InputQuery{
		PackageIDs:   ids,
		IDFiles:      idFiles,
		CatalogFiles: catalogs,
		Network:      network,
		ReportFiles:  reports,
		Discover:     discover,
	}
}

// inputOverrides returns the overrides shared by verify and sample.
func inputOverrides(cmd *cobra.Command) app.Overrides {
	return app.Overrides{
		DatasetRoot: changedString(cmd, "dataset-root"),
		MaxPackages: changedInt(cmd, "max-packages"),
	}
}

func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func changedInt(cmd *cobra.Command, name string) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetInt(name)
	return &v
}

func changedBool(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetBool(name)
	return &v
}
