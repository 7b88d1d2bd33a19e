// Copyright 2026 The Veridact Authors
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"fmt"

	"github.com/veridact/veridact/lib/codec"
	"github.com/veridact/veridact/lib/hashchain"
)

// Logical file names inside a bundle container. These are the keys of
// the container's files section and the names recorded in the
// manifest's file list.
const (
	FileManifest            = "manifest"
	FileCertificate         = "certificate"
	FileRedactedDocument    = "redactedDocument"
	FilePolicy              = "policy"
	FileAuditorInstructions = "auditorInstructions"
)

// Stats carries the redaction engine's result record. This subsystem
// only copies these values into the manifest; it never recomputes or
// second-guesses them.
type Stats struct {
	// Redactions is the number of spans the engine replaced.
	Redactions int `cbor:"redactions"`

	// DurationMs is the engine's execution time in milliseconds.
	DurationMs int64 `cbor:"durationMs"`

	// OriginalChars and RedactedChars are the document lengths in
	// characters before and after redaction.
	OriginalChars int `cbor:"originalChars"`
	RedactedChars int `cbor:"redactedChars"`
}

// Integrity is the manifest's integrity block: the hash-chain digests
// linking the manifest to the original and redacted documents.
//
// HashManifest is computed over the manifest's canonical serialization
// with the integrity block absent. Recomputing it therefore requires
// stripping the block first — see [Verify].
type Integrity struct {
	Algorithm    string `cbor:"algorithm"`
	HashOriginal string `cbor:"hashOriginal"`
	HashRedacted string `cbor:"hashRedacted"`
	HashManifest string `cbor:"hashManifest"`
}

// FileEntry describes one logical file in the bundle.
//
// Checksum is the SHA256 digest of the file's content. It is empty
// for the manifest (which cannot checksum itself — its integrity block
// is authoritative) and for the certificate (whose hash chain makes it
// independently verifiable).
type FileEntry struct {
	Name     string `cbor:"name"`
	Checksum string `cbor:"checksum,omitempty"`
}

// Compliance records how and under what regime the redaction was
// performed. The values are static attestations, not computed facts.
type Compliance struct {
	Standard    string `cbor:"standard"`
	Method      string `cbor:"method"`
	GeneratedBy string `cbor:"generatedBy"`
}

// Manifest is the bundle's structural record: what job produced it,
// when, with what statistics, and the integrity digests tying it all
// together. Immutable once the bundle is generated.
type Manifest struct {
	JobID      string     `cbor:"jobId"`
	CreatedAt  string     `cbor:"createdAt"`
	Statistics Stats      `cbor:"statistics"`
	Integrity  *Integrity `cbor:"integrity,omitempty"`
	Compliance Compliance `cbor:"compliance"`
	Files      []FileEntry `cbor:"files"`
}

// HashChain is the ordered trio of digests linking a certificate to
// the bundle's content.
type HashChain struct {
	HashOriginal string `cbor:"hashOriginal"`
	HashRedacted string `cbor:"hashRedacted"`
	HashManifest string `cbor:"hashManifest"`
}

// Proofs groups the certificate's cryptographic material.
type Proofs struct {
	HashChain HashChain `cbor:"hashChain"`
}

// Attestations are the certificate's boolean claims about the
// redaction job.
type Attestations struct {
	// RedactionApplied states that the redaction engine ran and
	// replaced the detected spans.
	RedactionApplied bool `cbor:"redactionApplied"`

	// OriginalWithheld states that the original document is not part
	// of this bundle; only its digest is.
	OriginalWithheld bool `cbor:"originalWithheld"`

	// HashesComputed states that the hash chain was computed at
	// generation time, before the bundle left the operator's custody.
	HashesComputed bool `cbor:"hashesComputed"`
}

// Certificate is the bundle's independently verifiable identity
// document. Its hash chain duplicates the manifest's integrity digests
// so either can be checked without the other.
//
// The invariant that must hold for the bundle's entire lifetime:
// CryptographicProofs.HashChain.HashRedacted equals the SHA256 of the
// bundle's redacted document. This is the primary integrity check.
type Certificate struct {
	Issuer              string       `cbor:"issuer"`
	Subject             string       `cbor:"subject"`
	IssuedAt            string       `cbor:"issuedAt"`
	CryptographicProofs Proofs       `cbor:"cryptographicProofs"`
	Attestations        Attestations `cbor:"attestations"`
	ProofStatement      string       `cbor:"proofStatement"`
}

// TrustBundle is the complete tamper-evident package. Created once by
// [Generator.Generate]; immutable thereafter.
type TrustBundle struct {
	Manifest            Manifest
	Certificate         Certificate
	RedactedDocument    string
	Policy              string
	AuditorInstructions string
}

// ComponentHashes returns the five per-component digests the anchor
// subsystem commits to: manifest, certificate, redacted document,
// policy, and auditor instructions, each individually hashed. The
// manifest and certificate are hashed over their canonical
// serializations; the text components over their raw bytes.
//
// The order of the returned slice is not significant — the Merkle
// builder sorts its leaves.
func (b *TrustBundle) ComponentHashes() ([]string, error) {
	manifestBytes, err := codec.Marshal(b.Manifest)
	if err != nil {
		return nil, fmt.Errorf("serializing manifest for hashing: %w", err)
	}
	certificateBytes, err := codec.Marshal(b.Certificate)
	if err != nil {
		return nil, fmt.Errorf("serializing certificate for hashing: %w", err)
	}
	return []string{
		hashchain.Hash(manifestBytes),
		hashchain.Hash(certificateBytes),
		hashchain.HashString(b.RedactedDocument),
		hashchain.HashString(b.Policy),
		hashchain.HashString(b.AuditorInstructions),
	}, nil
}
