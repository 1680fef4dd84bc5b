package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/NVIDIA/collector-sdk/pkg/logging"
	"github.com/NVIDIA/collector-sdk/pkg/protocol"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	t := protocol.New(inputOptions()...)
	protocol.SetDefault(t)
	logging.SetDefaultCollectorLogger(t)

	mux := newApp(t).mux()
	if !mux.Run(ctx, os.Args) {
		_ = t.Error(fmt.Sprintf("usage: %s {%s}", name, strings.Join(mux.Names(), "|")))
		stop()
		os.Exit(2)
	}
}
