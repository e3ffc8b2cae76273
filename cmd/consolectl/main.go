package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/accreditation-console/internal/cli"
	_ "github.com/JonMunkholm/accreditation-console/internal/core/screens" // Register all screens
	"github.com/joho/godotenv"
)

// Version is set via -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	// A missing .env file is fine; the environment is used as is.
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	root := cli.NewRootCommand(cli.DefaultEnv(os.Stdout), Version)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		cancel()
		os.Exit(1)
	}
}
