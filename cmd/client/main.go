package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/gynecare/internal/buildinfo"
	"github.com/dmitrijs2005/gynecare/internal/client/cli"
	"github.com/dmitrijs2005/gynecare/internal/client/config"
	"github.com/dmitrijs2005/gynecare/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.New(cfg.LogLevel, os.Stderr)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
