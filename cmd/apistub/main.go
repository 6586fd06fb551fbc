package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/gynecare/internal/apistub"
	"github.com/dmitrijs2005/gynecare/internal/apistub/config"
	"github.com/dmitrijs2005/gynecare/internal/buildinfo"
	"github.com/dmitrijs2005/gynecare/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg := config.LoadConfig()
	logger := logging.New(cfg.LogLevel, os.Stderr)

	if err := apistub.NewApp(cfg, logger).Run(context.Background()); err != nil {
		log.Fatalf("%v", err)
	}

}
