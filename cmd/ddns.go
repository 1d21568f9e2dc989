package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	ddns "github.com/larivierec/cloudflare-ddns-sync/pkg/cmd"
	"github.com/larivierec/cloudflare-ddns-sync/pkg/console"
	"github.com/spf13/pflag"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := console.Default()
	if err := ddns.Start(ctx, os.Args[1:], logger); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		logger.Errorf("%v", err)
		stop()
		os.Exit(1)
	}
}
