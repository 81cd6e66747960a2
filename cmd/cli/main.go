package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/coffeenme/coffeenme/internal/buildinfo"
	"github.com/coffeenme/coffeenme/internal/client/cli"
	"github.com/coffeenme/coffeenme/internal/client/config"
	"github.com/coffeenme/coffeenme/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.NewFileLogger(cfg.LogFile)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
