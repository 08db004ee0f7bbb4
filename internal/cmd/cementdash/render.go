package cementdash

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/sekarsister/cement-targets/internal/charts"
	"github.com/sekarsister/cement-targets/internal/emissions"
	"github.com/sekarsister/cement-targets/internal/platform/config"
)

var renderFormats = map[string]bool{"svg": true, "png": true, "pdf": true}

func newRenderCommand(cfg config.Config) *cobra.Command {
	format := "png"

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write both charts to image files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !renderFormats[format] {
				return fmt.Errorf("unsupported format %q (want svg, png or pdf)", format)
			}
			records, err := loadNormalized(cmd.Context(), cfg.DatasetPath)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}

			builders := []struct {
				name  string
				build func([]emissions.NormalizedRecord, charts.Options) (*charts.Figure, error)
			}{
				{"ambition_matrix", charts.AmbitionMatrix},
				{"progress_projection", charts.ProgressProjection},
			}
			for _, b := range builders {
				fig, err := b.build(records, charts.DefaultOptions())
				if err != nil {
					return fmt.Errorf("build %s: %w", b.name, err)
				}
				path := filepath.Join(cfg.OutputDir, b.name+"."+format)
				if err := fig.Save(path); err != nil {
					return err
				}
				klog.InfoS("chart written", "path", path)
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.OutputDir, "out-dir", cfg.OutputDir, "directory for the chart files")
	cmd.Flags().StringVar(&format, "format", format, "image format: svg, png or pdf")
	addDatasetFlag(cmd, &cfg.DatasetPath, cfg.DatasetPath)
	return cmd
}
