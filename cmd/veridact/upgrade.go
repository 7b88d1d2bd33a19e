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

	"github.com/veridact/veridact/lib/anchor"
	"github.com/veridact/veridact/lib/cli"
)

func upgradeCommand() *cli.Command {
	var configPath string

	return &cli.Command{
		Name:    "upgrade",
		Summary: "refresh a proof's attestation bytes from the calendar servers",
		Usage:   "veridact upgrade <proof> [flags]",
		Examples: []cli.Example{
			{Command: "veridact upgrade summary.ots"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("upgrade", pflag.ContinueOnError)
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

			upgraded := service.Upgrade(ctx, result)
			printAnchorResult(upgraded)

			if upgraded.Status != anchor.StatusUpgraded {
				fmt.Println("proof unchanged")
				return nil
			}
			if err := service.ExportProof(upgraded, args[0]); err != nil {
				return err
			}
			fmt.Printf("upgraded proof written to %s\n", args[0])
			return nil
		},
	}
}
