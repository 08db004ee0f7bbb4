package cementdash

import (
	"fmt"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/sekarsister/cement-targets/internal/charts"
	"github.com/sekarsister/cement-targets/internal/dashboard"
	"github.com/sekarsister/cement-targets/internal/dataset"
	"github.com/sekarsister/cement-targets/internal/platform/config"
	"github.com/sekarsister/cement-targets/internal/platform/otel"
)

func newServeCommand(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive dashboard over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			shutdown, err := otel.Setup(ctx, otel.Settings{
				ServiceName: serviceName,
				Endpoint:    cfg.OTelEndpoint,
				Enabled:     cfg.OTelEnabled,
			})
			if err != nil {
				return fmt.Errorf("setup tracing: %w", err)
			}
			// ctx is cancelled by the time the server returns on a signal.
			defer func() {
				if err := otel.Close(shutdown, cfg.ShutdownTimeout); err != nil {
					klog.ErrorS(err, "flush traces")
				}
			}()

			loader := dataset.New(cfg.DatasetPath)
			// Fail fast on a broken dataset; requests still reload it.
			if _, err := loader.Load(ctx); err != nil {
				return fmt.Errorf("load %s dataset: %w", loader.Name(), err)
			}

			server, err := dashboard.NewServer(dashboard.Config{
				HTTPAddr:        cfg.HTTPAddr,
				Loader:          loader,
				Chart:           charts.DefaultOptions(),
				ShutdownTimeout: cfg.ShutdownTimeout,
			})
			if err != nil {
				return fmt.Errorf("init dashboard: %w", err)
			}
			if err := server.ListenAndServe(ctx); err != nil {
				return fmt.Errorf("serve dashboard: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	cmd.Flags().DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "grace period for in-flight requests on shutdown")
	addDatasetFlag(cmd, &cfg.DatasetPath, cfg.DatasetPath)
	return cmd
}
