package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/open-cli-collective/tailwind-shorthand/internal/cmd/check"
	"github.com/open-cli-collective/tailwind-shorthand/internal/cmd/root"
	"github.com/open-cli-collective/tailwind-shorthand/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := root.NewCmdRoot()
	err := cmd.ExecuteContext(ctx)
	logger.Sync()
	if err != nil {
		if !errors.Is(err, check.ErrFindings) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
