package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mmed-hajnasr/do-me/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	cmd := cli.NewRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}
