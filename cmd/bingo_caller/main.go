package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"bingo_caller/internal/app"
	"bingo_caller/pkg/logs"
)

func main() {
	envPath := flag.String("env", ".env", "path to .env file")
	configPath := flag.String("config", "config.yaml", "path to draw config")
	withConsole := flag.Bool("console", false, "draw numbers from this terminal")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.NewApp(app.Options{
		EnvPath:    *envPath,
		ConfigPath: *configPath,
		Console:    *withConsole,
	})
	if err := a.Run(ctx); err != nil {
		logs.NewLogger("main").Errorf("bingo caller stopped: %v", err)
		stop()
		os.Exit(1)
	}
}
