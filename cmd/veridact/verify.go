// Copyright 2026 The Veridact Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/veridact/veridact/lib/bundle"
	"github.com/veridact/veridact/lib/cli"
)

func verifyCommand() *cli.Command {
	var jsonOutput bool

	return &cli.Command{
		Name:    "verify",
		Summary: "verify a trust bundle's structure and hash integrity",
		Usage:   "veridact verify <bundle> [flags]",
		Examples: []cli.Example{
			{Command: "veridact verify summary.red"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("verify", pflag.ContinueOnError)
			flagSet.BoolVar(&jsonOutput, "json", false, "emit the verification report as JSON")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected a single <bundle> argument")
			}

			report := bundle.Verify(args[0])

			if jsonOutput {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				if err := encoder.Encode(report); err != nil {
					return err
				}
			} else {
				printReport(report)
			}

			if !report.Valid {
				return fmt.Errorf("bundle is not valid")
			}
			return nil
		},
	}
}

func printReport(report *bundle.Report) {
	if report.Valid {
		fmt.Println("bundle is valid")
	} else {
		fmt.Println("bundle is NOT valid")
	}

	checks := []struct {
		name   string
		passed bool
	}{
		{"bundle structure", report.Checks.BundleStructure},
		{"version compatible", report.Checks.VersionCompatible},
		{"manifest present", report.Checks.ManifestExists},
		{"certificate present", report.Checks.CertificateExists},
		{"redacted document present", report.Checks.RedactedDocumentExists},
		{"policy present", report.Checks.PolicyExists},
		{"hash integrity", report.Checks.HashIntegrity},
	}
	for _, check := range checks {
		mark := "ok  "
		if !check.passed {
			mark = "FAIL"
		}
		fmt.Printf("  %s %s\n", mark, check.name)
	}

	for _, message := range report.Errors {
		fmt.Printf("error: %s\n", message)
	}
	for _, message := range report.Warnings {
		fmt.Printf("warning: %s\n", message)
	}
	if report.Manifest != nil {
		fmt.Printf("job %s, issued %s\n", report.Manifest.JobID, report.Manifest.CreatedAt)
	}
}
