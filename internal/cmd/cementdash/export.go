package cementdash

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/sekarsister/cement-targets/internal/platform/config"
	"github.com/sekarsister/cement-targets/internal/workbook"
)

func newExportCommand(cfg config.Config) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the indexed dataset and projections to an xlsx workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := loadNormalized(cmd.Context(), cfg.DatasetPath)
			if err != nil {
				return err
			}
			if out == "" {
				out = filepath.Join(cfg.OutputDir, "cement_targets.xlsx")
			}
			if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			if err := workbook.Save(out, records); err != nil {
				return err
			}
			klog.InfoS("workbook written", "path", out, "companies", len(records))
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "workbook path (default <output dir>/cement_targets.xlsx)")
	addDatasetFlag(cmd, &cfg.DatasetPath, cfg.DatasetPath)
	return cmd
}
