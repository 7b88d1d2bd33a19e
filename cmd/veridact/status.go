// Copyright 2026 The Veridact Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/veridact/veridact/lib/cli"
)

func statusCommand() *cli.Command {
	var configPath string

	return &cli.Command{
		Name:    "status",
		Summary: "query the calendar servers for a proof's confirmation status",
		Usage:   "veridact status <proof> [flags]",
		Examples: []cli.Example{
			{Command: "veridact status summary.ots"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("status", pflag.ContinueOnError)
			flagSet.StringVar(&configPath, "config", "", "config file path (default: VERIDACT_CONFIG)")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected a single <proof> argument")
			}

			service, err := newAnchorService(configPath)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			result, err := service.ImportProof(ctx, args[0])
			if err != nil {
				return err
			}
			printAnchorResult(result)
			return nil
		},
	}
}
