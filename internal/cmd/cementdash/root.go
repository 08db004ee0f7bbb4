// Package cementdash wires the cementdash subcommands.
package cementdash

import (
	"context"
	"flag"
	"fmt"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/sekarsister/cement-targets/internal/dataset"
	"github.com/sekarsister/cement-targets/internal/emissions"
	"github.com/sekarsister/cement-targets/internal/platform/config"
)

const serviceName = "cementdash"

// NewRootCommand builds the command tree. cfg supplies flag defaults, so
// environment variables apply unless a flag is given.
func NewRootCommand(cfg config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "cementdash",
		Short:         "Compare cement companies' CO2 intensity targets",
		Long:          "Load the cement company intensity dataset, index it to each company's baseline and serve or export the ambition matrix and progress projection.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	root.PersistentFlags().AddGoFlagSet(klogFlags)

	root.AddCommand(
		newServeCommand(cfg),
		newRenderCommand(cfg),
		newExportCommand(cfg),
		newValidateCommand(cfg),
	)
	return root
}

func addDatasetFlag(cmd *cobra.Command, target *string, def string) {
	cmd.Flags().StringVar(target, "dataset", def, "dataset file (.yaml, .csv or .xlsx); empty uses the built-in data")
}

// loadNormalized runs the load and normalize steps shared by the offline
// commands.
func loadNormalized(ctx context.Context, path string) ([]emissions.NormalizedRecord, error) {
	loader := dataset.New(path)
	records, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s dataset: %w", loader.Name(), err)
	}
	return emissions.Normalize(records), nil
}
