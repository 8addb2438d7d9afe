// Command trainerctl applies migrations, inspects and sets the stored
// difficulty level, and runs a local chat session.
//
// Usage:
//
//	trainerctl migrate --dsn=postgres://...
//	trainerctl level show
//	trainerctl level set 3
//	trainerctl chat
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/heartmarshall/sprachtrainer/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.Execute(ctx, os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "trainerctl: %v\n", err)
		os.Exit(1)
	}
}
