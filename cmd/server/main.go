package main

import (
	"github.com/storyloom/backend/internal/server"
	"github.com/storyloom/backend/internal/util"
	"github.com/storyloom/backend/pkg/logger"
	"github.com/storyloom/backend/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	server.Init()
}
