// Command rlauth reads, stores and serves the Red Letters engine auth token.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redletters/rlauth/cmd/rlauth/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := commands.Execute(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "rlauth: %v\n", err)
		stop()
		os.Exit(1)
	}
}
