package main

import (
	"os"

	"github.com/DRSN-tech/storefront/internal/app"
	config "github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/pkg/logger"
	flag "github.com/spf13/pflag"
)

//	@title			Storefront API
//	@version		1.0
//	@description	Каталог товаров витрины
//	@BasePath		/api/v1
func main() {
	logLevel := flag.String("log-level", os.Getenv("LOG_LEVEL"), "log level: debug, info, warn, error")
	flag.Parse()

	log := logger.NewSlogLoggerWithWriter(os.Stdout, logger.ParseLevel(*logLevel))

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		os.Exit(1)
	}
}
