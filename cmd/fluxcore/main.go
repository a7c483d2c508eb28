// Command fluxcore runs a line-oriented REPL over the engine: each line of
// stdin is submitted as one actor's intent, and the resulting narrative
// lines (or declared error codes) are printed to stdout/stderr.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fluxcore/engine/internal/cmd/fluxcore"
)

func main() {
	cfg, err := fluxcore.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "fluxcore: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fluxcore.Run(ctx, cfg, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "fluxcore: %v\n", err)
		os.Exit(1)
	}
}
