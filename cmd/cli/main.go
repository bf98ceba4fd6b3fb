package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/appgallery/internal/buildinfo"
	"github.com/dmitrijs2005/appgallery/internal/client/cli"
	"github.com/dmitrijs2005/appgallery/internal/client/client"
	"github.com/dmitrijs2005/appgallery/internal/client/config"
	"github.com/dmitrijs2005/appgallery/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	// логи идут в stderr, чтобы не мешать диалогу
	logger, err := logging.New(cfg.LogFormat, cfg.LogLevel, os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
	}

	c, err := client.NewHTTPClient(cfg.EndpointURL, client.WithLogger(logger))
	if err != nil {
		log.Fatalf("%v", err)
	}

	src, err := cfg.ImageSource(ctx)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app := cli.NewApp(cfg, c, src, logger)
	app.Run(ctx)

}
