// Copyright 2026 The Veridact Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/veridact/veridact/lib/cli"
	"github.com/veridact/veridact/lib/version"
)

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:    "version",
		Summary: "print the veridact version",
		Run: func(args []string) error {
			fmt.Println(version.Info())
			return nil
		},
	}
}
