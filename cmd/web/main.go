package main

import (
	"vfxworks_backend/internal/app"
	"vfxworks_backend/internal/config"
	"vfxworks_backend/internal/logger"
)

func main() {
	config.LoadConfig()
	logger.Init(config.AppConfig.Server.Env)
	app.Run()
}
