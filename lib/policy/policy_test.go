// Copyright 2026 The Veridact Authors
// SPDX-License-Identifier: Apache-2.0

package policy

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const samplePolicy = `{
	// Operator note: member IDs count as account numbers here.
	"name": "clinic-standard",
	"version": "2.1",
	"standard": "HIPAA Safe Harbor §164.514(b)(2)",
	"rules": [
		{"category": "NAME", "replacement": "[NAME]"},
		{"category": "SSN", "replacement": "[SSN]"},
		{"category": "ACCOUNT", "replacement": "[ACCOUNT]"}, // trailing comma next
	],
}`

func TestParseStripsComments(t *testing.T) {
	p, err := Parse([]byte(samplePolicy))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Name != "clinic-standard" {
		t.Errorf("Name = %q", p.Name)
	}
	if len(p.Rules) != 3 {
		t.Fatalf("Rules = %d, want 3", len(p.Rules))
	}
	if p.Rules[1].Category != "SSN" || p.Rules[1].Replacement != "[SSN]" {
		t.Errorf("rule 1 = %+v", p.Rules[1])
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	if _, err := Parse([]byte(`{"name": `)); err == nil {
		t.Error("truncated document should fail")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		policy Policy
		want   string
	}{
		{"no name", Policy{Rules: []Rule{{Category: "SSN", Replacement: "[SSN]"}}}, "no name"},
		{"no rules", Policy{Name: "p"}, "no rules"},
		{"empty category", Policy{Name: "p", Rules: []Rule{{Replacement: "x"}}}, "no category"},
		{"empty replacement", Policy{Name: "p", Rules: []Rule{{Category: "SSN"}}}, "no replacement"},
		{"duplicate category", Policy{Name: "p", Rules: []Rule{
			{Category: "SSN", Replacement: "[SSN]"},
			{Category: "SSN", Replacement: "[SSN2]"},
		}}, "duplicate"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.policy.Validate()
			if err == nil {
				t.Fatal("Validate should fail")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.jsonc")
	if err := os.WriteFile(path, []byte(samplePolicy), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if p.Version != "2.1" {
		t.Errorf("Version = %q", p.Version)
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "absent.jsonc")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestDocumentIsStableJSON(t *testing.T) {
	p, err := Parse([]byte(samplePolicy))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	first, err := p.Document()
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	second, err := p.Document()
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	if first != second {
		t.Error("Document output is not stable")
	}
	if strings.Contains(first, "//") {
		t.Error("comments leaked into the normalized document")
	}

	// The normalized form must itself parse back to the same policy.
	reparsed, err := Parse([]byte(first))
	if err != nil {
		t.Fatalf("reparsing normalized document: %v", err)
	}
	if reparsed.Name != p.Name || len(reparsed.Rules) != len(p.Rules) {
		t.Error("normalized document does not round-trip")
	}
}

func TestDefault(t *testing.T) {
	p := Default()
	if err := p.Validate(); err != nil {
		t.Fatalf("default policy invalid: %v", err)
	}
	if p.Standard == "" {
		t.Error("default policy has no standard")
	}

	categories := make(map[string]string, len(p.Rules))
	for _, rule := range p.Rules {
		categories[rule.Category] = rule.Replacement
	}
	for _, required := range []string{"NAME", "SSN", "MRN", "DATE", "ADDRESS"} {
		if categories[required] != "["+required+"]" {
			t.Errorf("category %s = %q, want bracketed token", required, categories[required])
		}
	}
}
