package cementdash

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sekarsister/cement-targets/internal/platform/config"
)

func newValidateCommand(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the dataset and print its baseline indexes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := loadNormalized(cmd.Context(), cfg.DatasetPath)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "COMPANY\tBASELINE\tCURRENT\tCURRENT IDX\t2030 IDX\t2050 IDX\tSOURCE")
			for _, r := range records {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%.1f\t%.1f\t%.1f\t%s\n",
					r.Company, r.BaselineYear, r.CurrentYear, r.CurrentIndex, r.Target2030Index, r.Target2050Index, r.Source)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d companies OK\n", len(records))
			return nil
		},
	}

	addDatasetFlag(cmd, &cfg.DatasetPath, cfg.DatasetPath)
	return cmd
}
