// Copyright 2026 The Veridact Authors
// SPDX-License-Identifier: Apache-2.0

// Package policy loads and validates redaction policy documents.
//
// Policies are authored on disk as JSONC files (JSON extended with
// comments and trailing commas) so operators can annotate why a
// category is redacted or exempted. Before a policy is embedded in a
// trust bundle it is normalized to plain, stable JSON so the
// embedded document hashes reproducibly.
package policy

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

// Rule maps one identifier category to its replacement token.
type Rule struct {
	// Category is the identifier class, e.g. "SSN", "NAME", "MRN".
	Category string `json:"category"`

	// Replacement is the token substituted for matched text,
	// conventionally "[CATEGORY]".
	Replacement string `json:"replacement"`
}

// Policy describes which identifier categories a redaction run
// removes. A copy of the policy travels inside every bundle it
// produced, so verifiers can see what the redaction claimed to do.
type Policy struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	Standard string `json:"standard"`
	Rules    []Rule `json:"rules"`
}

// Parse strips JSONC comments and trailing commas from data, then
// unmarshals and validates the result.
func Parse(data []byte) (*Policy, error) {
	stripped := jsonc.ToJSON(data)

	var p Policy
	if err := json.Unmarshal(stripped, &p); err != nil {
		return nil, fmt.Errorf("parsing policy: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// ReadFile reads a JSONC policy file from disk and parses it.
func ReadFile(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Validate checks the structural requirements: a name, at least one
// rule, and a non-empty category and replacement on every rule.
// Duplicate categories are rejected since the later rule would be
// unreachable.
func (p *Policy) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("policy has no name")
	}
	if len(p.Rules) == 0 {
		return fmt.Errorf("policy %q has no rules", p.Name)
	}

	seen := make(map[string]bool, len(p.Rules))
	for i, rule := range p.Rules {
		if rule.Category == "" {
			return fmt.Errorf("policy %q: rule %d has no category", p.Name, i)
		}
		if rule.Replacement == "" {
			return fmt.Errorf("policy %q: rule for %s has no replacement", p.Name, rule.Category)
		}
		if seen[rule.Category] {
			return fmt.Errorf("policy %q: duplicate rule for %s", p.Name, rule.Category)
		}
		seen[rule.Category] = true
	}
	return nil
}

// Document renders the policy as indented plain JSON, the form
// embedded in trust bundles. Comments and formatting quirks of the
// authored JSONC never reach the bundle, so the same policy always
// hashes to the same digest.
func (p *Policy) Document() (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding policy: %w", err)
	}
	return string(data) + "\n", nil
}

// Default returns the built-in policy applied when the operator
// supplies none: the HIPAA Safe Harbor identifier categories, each
// replaced with its bracketed token.
func Default() *Policy {
	categories := []string{
		"NAME", "ADDRESS", "CITY", "STATE", "COUNTY", "ZIPCODE",
		"DATE", "AGE", "PHONE", "FAX", "EMAIL", "SSN", "MRN",
		"HEALTH_PLAN", "ACCOUNT", "LICENSE", "VEHICLE", "DEVICE",
		"URL", "IP", "BIOMETRIC",
	}

	rules := make([]Rule, len(categories))
	for i, category := range categories {
		rules[i] = Rule{Category: category, Replacement: "[" + category + "]"}
	}

	return &Policy{
		Name:     "hipaa-safe-harbor",
		Version:  "1.0",
		Standard: "HIPAA Safe Harbor §164.514(b)(2)",
		Rules:    rules,
	}
}
