// Command cementdash serves and exports the cement sector climate target
// dashboard.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"k8s.io/klog/v2"

	"github.com/sekarsister/cement-targets/internal/cmd/cementdash"
	"github.com/sekarsister/cement-targets/internal/platform/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = cementdash.NewRootCommand(cfg).ExecuteContext(ctx)
	stop()
	klog.Flush()
	if err != nil {
		config.Exitf("cementdash: %v", err)
	}
}
