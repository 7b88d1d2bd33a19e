// Copyright 2026 The Veridact Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "veridact",
		Subcommands: []*Command{
			{
				Name: "version",
				Run: func(args []string) error {
					called = "version"
					return nil
				},
			},
			{
				Name: "anchor",
				Run: func(args []string) error {
					called = "anchor"
					return nil
				},
			},
		},
	}

	if err := root.Execute([]string{"anchor"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "anchor" {
		t.Errorf("dispatched to %q, want %q", called, "anchor")
	}
}

func TestCommand_Execute_PassesRemainingArgs(t *testing.T) {
	var receivedArgs []string

	root := &Command{
		Name: "veridact",
		Subcommands: []*Command{
			{
				Name: "verify",
				Run: func(args []string) error {
					receivedArgs = args
					return nil
				},
			},
		},
	}

	if err := root.Execute([]string{"verify", "bundle.red"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "bundle.red" {
		t.Errorf("args = %v, want [bundle.red]", receivedArgs)
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var output string

	command := &Command{
		Name: "anchor",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("anchor", pflag.ContinueOnError)
			flagSet.StringVar(&output, "output", "", "proof output path")
			return flagSet
		},
		Run: func(args []string) error { return nil },
	}

	if err := command.Execute([]string{"--output", "proof.ots"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if output != "proof.ots" {
		t.Errorf("output = %q, want proof.ots", output)
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	command := &Command{
		Name: "anchor",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("anchor", pflag.ContinueOnError)
			flagSet.Bool("wait", false, "wait for confirmation")
			return flagSet
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--wiat"})
	if err == nil {
		t.Fatal("unknown flag should fail")
	}
	if !strings.Contains(err.Error(), "--wait") {
		t.Errorf("error %q does not suggest --wait", err)
	}
}

func TestCommand_Execute_UnknownSubcommandSuggestion(t *testing.T) {
	root := &Command{
		Name: "veridact",
		Subcommands: []*Command{
			{Name: "generate", Run: func(args []string) error { return nil }},
			{Name: "verify", Run: func(args []string) error { return nil }},
		},
	}

	err := root.Execute([]string{"verfy"})
	if err == nil {
		t.Fatal("unknown subcommand should fail")
	}
	if !strings.Contains(err.Error(), `"verify"`) {
		t.Errorf("error %q does not suggest verify", err)
	}
}

func TestCommand_Execute_UnknownSubcommandNoSuggestion(t *testing.T) {
	root := &Command{
		Name: "veridact",
		Subcommands: []*Command{
			{Name: "generate", Run: func(args []string) error { return nil }},
		},
	}

	err := root.Execute([]string{"completely-unrelated"})
	if err == nil {
		t.Fatal("unknown subcommand should fail")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error %q should not carry a far-fetched suggestion", err)
	}
}

func TestCommand_Execute_NoArgsShowsHelp(t *testing.T) {
	root := &Command{
		Name: "veridact",
		Subcommands: []*Command{
			{Name: "version", Summary: "print version", Run: func(args []string) error { return nil }},
		},
	}

	if err := root.Execute(nil); err == nil {
		t.Error("bare invocation of a dispatch-only command should fail")
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	root := &Command{
		Name:        "veridact",
		Description: "Redaction provenance and blockchain anchoring.",
		Subcommands: []*Command{
			{Name: "generate", Summary: "generate a trust bundle"},
			{Name: "anchor", Summary: "anchor a bundle to the blockchain"},
		},
		Examples: []Example{
			{Description: "verify a bundle", Command: "veridact verify bundle.red"},
		},
	}

	var buffer bytes.Buffer
	root.PrintHelp(&buffer)
	help := buffer.String()

	for _, want := range []string{
		"Redaction provenance",
		"generate a trust bundle",
		"anchor a bundle to the blockchain",
		"veridact verify bundle.red",
		"veridact <command> [flags]",
	} {
		if !strings.Contains(help, want) {
			t.Errorf("help output missing %q:\n%s", want, help)
		}
	}
}

func TestCommand_FullName(t *testing.T) {
	root := &Command{
		Name: "veridact",
		Subcommands: []*Command{
			{
				Name: "status",
				Flags: func() *pflag.FlagSet {
					return pflag.NewFlagSet("status", pflag.ContinueOnError)
				},
				Run: func(args []string) error { return nil },
			},
		},
	}

	// Dispatching sets the parent pointer; an unknown flag error then
	// carries the full path.
	err := root.Execute([]string{"status", "--bogus"})
	if err == nil {
		t.Fatal("unexpected success")
	}
	if !strings.Contains(err.Error(), "veridact status") {
		t.Errorf("error %q does not carry the full command path", err)
	}
}

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"anchor", "anchor", 0},
		{"verfy", "verify", 1},
		{"stats", "status", 2},
		{"abc", "", 3},
	}
	for _, tc := range cases {
		if got := levenshtein(tc.a, tc.b); got != tc.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}
