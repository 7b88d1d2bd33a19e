// Copyright 2026 The Veridact Authors
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/veridact/veridact/lib/clock"
	"github.com/veridact/veridact/lib/codec"
	"github.com/veridact/veridact/lib/hashchain"
	"github.com/veridact/veridact/lib/version"
)

// DefaultIssuer identifies bundles generated without an explicit
// issuer in [Options].
const DefaultIssuer = "veridact"

// Options configures bundle generation. The zero value is usable.
type Options struct {
	// Issuer names the organization issuing the certificate. Defaults
	// to [DefaultIssuer].
	Issuer string

	// Policy is the redaction policy text embedded in the bundle.
	// Empty means the bundle records that no policy was supplied.
	Policy string

	// ComplianceStandard names the regulatory regime the redaction
	// was performed under (e.g. "HIPAA Safe Harbor §164.514(b)(2)").
	ComplianceStandard string
}

// Generator builds trust bundles. It is a pure function of its inputs
// plus the injected clock (creation timestamps) and randomness source
// (job identifiers); it performs no I/O and cannot partially fail.
type Generator struct {
	clock clock.Clock
	rand  io.Reader
}

// NewGenerator creates a Generator. randSource supplies job identifier
// entropy; nil selects crypto/rand.
func NewGenerator(clk clock.Clock, randSource io.Reader) *Generator {
	if randSource == nil {
		randSource = rand.Reader
	}
	return &Generator{clock: clk, rand: randSource}
}

// Generate assembles a complete trust bundle from a finished redaction
// job. originalText is hashed and discarded — it never appears in the
// bundle.
func (g *Generator) Generate(originalText, redactedText string, stats Stats, options Options) (*TrustBundle, error) {
	now := g.clock.Now().UTC()

	jobID, err := g.newJobID(now)
	if err != nil {
		return nil, err
	}

	hashOriginal := hashchain.HashString(originalText)
	hashRedacted := hashchain.HashString(redactedText)

	issuer := options.Issuer
	if issuer == "" {
		issuer = DefaultIssuer
	}
	standard := options.ComplianceStandard
	if standard == "" {
		standard = "HIPAA Safe Harbor §164.514(b)(2)"
	}

	policy := options.Policy
	instructions := auditorInstructions(jobID, now)

	manifest := Manifest{
		JobID:      jobID,
		CreatedAt:  now.Format(time.RFC3339),
		Statistics: stats,
		Compliance: Compliance{
			Standard:    standard,
			Method:      "automated-redaction",
			GeneratedBy: "veridact " + version.Version,
		},
		Files: []FileEntry{
			{Name: FileManifest},
			{Name: FileCertificate},
			{Name: FileRedactedDocument, Checksum: hashRedacted},
			{Name: FilePolicy, Checksum: hashchain.HashString(policy)},
			{Name: FileAuditorInstructions, Checksum: hashchain.HashString(instructions)},
		},
	}

	// The manifest hash covers the pre-integrity serialization: the
	// integrity block is attached only after hashing, so the hash
	// never includes itself.
	preIntegrity, err := codec.Marshal(manifest)
	if err != nil {
		return nil, fmt.Errorf("serializing manifest for hashing: %w", err)
	}
	hashManifest := hashchain.Hash(preIntegrity)

	manifest.Integrity = &Integrity{
		Algorithm:    hashchain.Algorithm,
		HashOriginal: hashOriginal,
		HashRedacted: hashRedacted,
		HashManifest: hashManifest,
	}

	certificate := Certificate{
		Issuer:   issuer,
		Subject:  jobID,
		IssuedAt: now.Format(time.RFC3339),
		CryptographicProofs: Proofs{
			HashChain: HashChain{
				HashOriginal: hashOriginal,
				HashRedacted: hashRedacted,
				HashManifest: hashManifest,
			},
		},
		Attestations: Attestations{
			RedactionApplied: true,
			OriginalWithheld: true,
			HashesComputed:   true,
		},
		ProofStatement: proofStatement(jobID, now, stats, hashOriginal, hashRedacted),
	}

	return &TrustBundle{
		Manifest:            manifest,
		Certificate:         certificate,
		RedactedDocument:    redactedText,
		Policy:              policy,
		AuditorInstructions: instructions,
	}, nil
}

// newJobID produces a job identifier of the form
// red-<unix seconds>-<8 hex chars>. The timestamp component makes IDs
// sortable by creation time; the random component makes collisions
// within a second implausible.
func (g *Generator) newJobID(now time.Time) (string, error) {
	var entropy [4]byte
	if _, err := io.ReadFull(g.rand, entropy[:]); err != nil {
		return "", fmt.Errorf("generating job identifier: %w", err)
	}
	return fmt.Sprintf("red-%d-%s", now.Unix(), hex.EncodeToString(entropy[:])), nil
}

// proofStatement renders the certificate's human-readable summary. It
// restates the hash chain in prose so an auditor without tooling can
// still read what is being claimed.
func proofStatement(jobID string, now time.Time, stats Stats, hashOriginal, hashRedacted string) string {
	return fmt.Sprintf(
		"This certifies that redaction job %s completed on %s, replacing %d sensitive span(s). "+
			"The original document (SHA256 %s) was withheld; the redacted document (SHA256 %s) is "+
			"included in this bundle. Any party can verify the redacted document by recomputing its "+
			"SHA256 digest and comparing it against this certificate.",
		jobID, now.Format(time.RFC3339), stats.Redactions, hashOriginal, hashRedacted)
}
