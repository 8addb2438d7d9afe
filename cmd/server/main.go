// Command server runs the German drill trainer: the web chat API, the bot
// webhook and the background difficulty reviews.
//
// Configuration comes from config.yaml (CONFIG_PATH), a .env file and the
// environment. See internal/config for the variables.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/sprachtrainer/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}
