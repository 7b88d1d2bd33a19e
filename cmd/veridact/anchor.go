// Copyright 2026 The Veridact Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/veridact/veridact/lib/anchor"
	"github.com/veridact/veridact/lib/bundle"
	"github.com/veridact/veridact/lib/cli"
	"github.com/veridact/veridact/lib/clock"
)

func anchorCommand() *cli.Command {
	var (
		configPath string
		output     string
		wait       bool
	)

	return &cli.Command{
		Name:    "anchor",
		Summary: "anchor a bundle's hash chain to the blockchain via calendar servers",
		Usage:   "veridact anchor <bundle> [flags]",
		Examples: []cli.Example{
			{
				Description: "submit and return immediately with a pending proof",
				Command:     "veridact anchor summary.red",
			},
			{
				Description: "block until the calendar confirms the commitment",
				Command:     "veridact anchor summary.red --wait",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("anchor", pflag.ContinueOnError)
			flagSet.StringVar(&configPath, "config", "", "config file path (default: VERIDACT_CONFIG)")
			flagSet.StringVar(&output, "output", "", "proof output path (default: <bundle>"+anchor.ProofExtension+")")
			flagSet.BoolVar(&wait, "wait", false, "poll until the commitment is confirmed or the timeout expires")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected a single <bundle> argument")
			}

			service, err := newAnchorService(configPath)
			if err != nil {
				return err
			}

			b, err := bundle.Import(args[0])
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			result, err := service.Anchor(ctx, b, anchor.Options{WaitForConfirmation: wait})
			if err != nil {
				return err
			}
			printAnchorResult(result)

			if result.Status == anchor.StatusFailed {
				return fmt.Errorf("anchoring failed")
			}

			if output == "" {
				output = strings.TrimSuffix(args[0], bundle.Extension) + anchor.ProofExtension
			}
			if err := service.ExportProof(result, output); err != nil {
				return err
			}
			fmt.Printf("proof written to %s\n", output)
			return nil
		},
	}
}

// newAnchorService builds the orchestrator from the resolved config.
func newAnchorService(configPath string) (*anchor.Service, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	anchorConfig, err := cfg.AnchorConfig()
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return anchor.NewService(nil, clock.Real(), logger, anchorConfig), nil
}

func printAnchorResult(result *anchor.Result) {
	fmt.Printf("status: %s\n", result.Status)
	fmt.Printf("merkle root: %s\n", result.MerkleRoot)
	if result.JobID != "" {
		fmt.Printf("job: %s\n", result.JobID)
	}
	if result.BlockHeight > 0 {
		fmt.Printf("block height: %d\n", result.BlockHeight)
	}
	if !result.ConfirmedAt.IsZero() {
		fmt.Printf("confirmed at: %s\n", result.ConfirmedAt.Format("2006-01-02T15:04:05Z07:00"))
	}
	if !result.EstimatedConfirmation.IsZero() {
		fmt.Printf("estimated confirmation: %s\n", result.EstimatedConfirmation.Format("2006-01-02T15:04:05Z07:00"))
	}
	for _, attestation := range result.Attestations {
		fmt.Printf("attestation: %s %s\n", attestation.Server, attestation.Type)
	}
	for _, message := range result.Errors {
		fmt.Printf("error: %s\n", message)
	}
	for _, message := range result.Warnings {
		fmt.Printf("warning: %s\n", message)
	}
}
