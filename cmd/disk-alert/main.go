package main

import (
	"github.com/cloudfoundry/disk-alert/cmd/disk-alert/app"
	"github.com/cloudfoundry/disk-alert/internal/version"
	"github.com/cloudfoundry/disk-alert/pkg/logger"
)

func main() {
	cfg := app.LoadConfig()

	log := logger.NewLogger(cfg.LogLevel, "disk-alert")
	log.Info("starting", logger.String("version", version.VERSION))
	defer log.Info("exiting")

	app.NewDiskAlertApp(cfg, log).Run()
}
