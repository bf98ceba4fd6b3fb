package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/appgallery/internal/buildinfo"
	"github.com/dmitrijs2005/appgallery/internal/client/config"
	"github.com/dmitrijs2005/appgallery/internal/logging"
	"github.com/dmitrijs2005/appgallery/internal/server"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger, err := logging.New(cfg.LogFormat, cfg.LogLevel, os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
