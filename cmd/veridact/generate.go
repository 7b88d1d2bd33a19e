// Copyright 2026 The Veridact Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/veridact/veridact/lib/bundle"
	"github.com/veridact/veridact/lib/cli"
	"github.com/veridact/veridact/lib/clock"
	"github.com/veridact/veridact/lib/config"
	"github.com/veridact/veridact/lib/policy"
)

func generateCommand() *cli.Command {
	var (
		configPath string
		policyPath string
		issuer     string
		output     string
		redactions int
		durationMs int64
		sealTo     []string
	)

	return &cli.Command{
		Name:    "generate",
		Summary: "generate a trust bundle from an original and a redacted document",
		Usage:   "veridact generate <original> <redacted> [flags]",
		Examples: []cli.Example{
			{
				Description: "bundle a redacted discharge summary",
				Command:     "veridact generate summary.txt summary.redacted.txt --redactions 14 --output summary.red",
			},
			{
				Description: "seal the bundle to an auditor's age key",
				Command:     "veridact generate summary.txt summary.redacted.txt --seal age1auditorkey...",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("generate", pflag.ContinueOnError)
			flagSet.StringVar(&configPath, "config", "", "config file path (default: VERIDACT_CONFIG)")
			flagSet.StringVar(&policyPath, "policy", "", "JSONC redaction policy (default: built-in HIPAA Safe Harbor)")
			flagSet.StringVar(&issuer, "issuer", "", "issuer name on the certificate (default from config)")
			flagSet.StringVar(&output, "output", "", "output path (default: <redacted>"+bundle.Extension+")")
			flagSet.IntVar(&redactions, "redactions", 0, "number of redactions the engine applied")
			flagSet.Int64Var(&durationMs, "duration-ms", 0, "redaction run duration in milliseconds")
			flagSet.StringSliceVar(&sealTo, "seal", nil, "age recipient to encrypt the bundle to (repeatable)")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("expected <original> and <redacted> file arguments")
			}

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if issuer == "" {
				issuer = cfg.Issuer
			}
			if policyPath == "" {
				policyPath = cfg.PolicyFile
			}

			original, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading original document: %w", err)
			}
			redacted, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("reading redacted document: %w", err)
			}

			appliedPolicy := policy.Default()
			if policyPath != "" {
				appliedPolicy, err = policy.ReadFile(policyPath)
				if err != nil {
					return err
				}
			}
			policyDocument, err := appliedPolicy.Document()
			if err != nil {
				return err
			}

			generator := bundle.NewGenerator(clock.Real(), nil)
			b, err := generator.Generate(string(original), string(redacted),
				bundle.Stats{
					Redactions:    redactions,
					DurationMs:    durationMs,
					OriginalChars: len(original),
					RedactedChars: len(redacted),
				},
				bundle.Options{
					Issuer:             issuer,
					Policy:             policyDocument,
					ComplianceStandard: appliedPolicy.Standard,
				})
			if err != nil {
				return err
			}

			if output == "" {
				output = strings.TrimSuffix(args[1], ".txt") + bundle.Extension
				if len(sealTo) > 0 {
					output = strings.TrimSuffix(args[1], ".txt") + bundle.SealedExtension
				}
			}

			if len(sealTo) > 0 {
				if err := bundle.ExportSealed(b, output, sealTo); err != nil {
					return err
				}
			} else {
				if err := bundle.Export(b, output); err != nil {
					return err
				}
			}

			fmt.Printf("job %s: bundle written to %s\n", b.Manifest.JobID, output)
			return nil
		},
	}
}

// loadConfig resolves the configuration for a command: an explicit
// --config path wins, otherwise VERIDACT_CONFIG or the defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}
