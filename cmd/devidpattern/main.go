// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/NVIDIA/nvidia-gpio-status-handler-sub000/logger"
	"github.com/NVIDIA/nvidia-gpio-status-handler-sub000/pkg/buildinfo"
	"github.com/NVIDIA/nvidia-gpio-status-handler-sub000/pkg/cli"
)

func main() {
	_, _ = maxprocs.Set(maxprocs.Logger(func(s string, args ...interface{}) {}))

	opts := parseCLI()

	if opts.Version {
		fmt.Printf("devidpattern, version: %s\n", buildinfo.Version)
		return
	}

	if lvl := os.Getenv("DEVIDPATTERN_LOG_LEVEL"); lvl != "" {
		logger.Level.SetByName(lvl)
	}
	if opts.Debug {
		logger.Level.Set(slog.LevelDebug)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp(opts, os.Stdout).run(ctx); err != nil {
		logger.Error(err)
		stop()
		os.Exit(1)
	}
}

func parseCLI() *cli.Option {
	opt, err := cli.Parse(os.Args)
	if err != nil {
		if cli.IsHelp(err) {
			os.Exit(0)
		}
		os.Exit(1)
	}

	return opt
}
