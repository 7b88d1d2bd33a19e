// Copyright 2026 The Veridact Authors
// SPDX-License-Identifier: Apache-2.0

// Command veridact generates, verifies, and blockchain-anchors
// redaction trust bundles.
package main

import (
	"fmt"
	"os"

	"github.com/veridact/veridact/lib/cli"
)

func main() {
	if err := root().Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func root() *cli.Command {
	return &cli.Command{
		Name:        "veridact",
		Description: "Veridact proves that a redaction happened, what it removed, and when,\nwithout exposing the original text.",
		Subcommands: []*cli.Command{
			generateCommand(),
			verifyCommand(),
			anchorCommand(),
			statusCommand(),
			upgradeCommand(),
			versionCommand(),
		},
	}
}
