// Copyright 2026 The Veridact Authors
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"fmt"
	"os"

	"github.com/veridact/veridact/lib/codec"
	"github.com/veridact/veridact/lib/hashchain"
)

// Checks records the outcome of each verification step independently,
// so a report shows exactly which guarantees held and which did not.
type Checks struct {
	ManifestExists         bool
	CertificateExists      bool
	RedactedDocumentExists bool
	PolicyExists           bool
	HashIntegrity          bool
	BundleStructure        bool
	VersionCompatible      bool
}

// Report is the structured result of verifying a bundle file. Verify
// always returns a report, never panics or raises: batch tooling can
// verify many bundles without per-item error handling.
//
// Valid is true when there are no errors and the hash integrity check
// passed. Warnings alone (missing policy, version skew) do not make a
// bundle invalid.
type Report struct {
	Valid    bool
	Errors   []string
	Warnings []string
	Checks   Checks

	// Manifest and Certificate are populated when their sections
	// parsed, even if the bundle is otherwise invalid, so callers can
	// report what the bundle claims to be.
	Manifest    *Manifest
	Certificate *Certificate
}

// Verify reads the bundle at path and runs the full check sequence:
// parse, structure, version, file presence, hash integrity. Checks
// run in that order and each is recorded independently; only a file
// that cannot be read or parsed aborts the sequence.
func Verify(path string) *Report {
	report := &Report{}

	data, err := os.ReadFile(path)
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("reading bundle: %v", err))
		return report
	}

	var loose any
	if err := codec.Unmarshal(data, &loose); err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("parsing bundle container: %v", err))
		return report
	}
	top, ok := loose.(map[string]any)
	if !ok {
		report.Errors = append(report.Errors, fmt.Sprintf("bundle container is not a map (got %T)", loose))
		return report
	}

	files, ok := top["files"].(map[string]any)
	report.Checks.BundleStructure = ok
	if !ok {
		report.Errors = append(report.Errors, "bundle container has no files section")
	}

	checkVersion(top, report)
	checkPresence(files, report)

	// Typed decode for the integrity checks. The loose parse already
	// succeeded, so a failure here means a section has the wrong
	// shape — structural, not a parse abort.
	var container Container
	if err := codec.Unmarshal(data, &container); err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("bundle sections have unexpected shape: %v", err))
	} else {
		if report.Checks.ManifestExists {
			report.Manifest = &container.Files.Manifest
		}
		if report.Checks.CertificateExists {
			report.Certificate = &container.Files.Certificate
		}
		checkIntegrity(&container, report)
	}

	report.Valid = len(report.Errors) == 0 && report.Checks.HashIntegrity
	return report
}

// checkVersion compares the container version tag. A mismatch is a
// warning, not an error: newer bundles should degrade gracefully on
// older verifiers.
func checkVersion(top map[string]any, report *Report) {
	declared, ok := top["version"].(string)
	switch {
	case !ok:
		report.Warnings = append(report.Warnings, "bundle container has no version tag")
	case declared != ContainerVersion:
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("bundle version %s differs from supported version %s", declared, ContainerVersion))
	default:
		report.Checks.VersionCompatible = true
	}
}

// checkPresence verifies the mandatory logical files are present.
// Missing manifest, certificate, or redacted document is an error;
// missing policy only a warning.
func checkPresence(files map[string]any, report *Report) {
	if files == nil {
		return
	}

	_, report.Checks.ManifestExists = files[FileManifest].(map[string]any)
	if !report.Checks.ManifestExists {
		report.Errors = append(report.Errors, "bundle is missing its manifest")
	}

	_, report.Checks.CertificateExists = files[FileCertificate].(map[string]any)
	if !report.Checks.CertificateExists {
		report.Errors = append(report.Errors, "bundle is missing its certificate")
	}

	_, report.Checks.RedactedDocumentExists = files[FileRedactedDocument].(string)
	if !report.Checks.RedactedDocumentExists {
		report.Errors = append(report.Errors, "bundle is missing its redacted document")
	}

	_, report.Checks.PolicyExists = files[FilePolicy].(string)
	if !report.Checks.PolicyExists {
		report.Warnings = append(report.Warnings, "bundle has no policy document")
	}
}

// checkIntegrity recomputes the hash chain. The primary check is the
// redacted document against the certificate; the manifest self-hash
// and the manifest/certificate agreement are verified alongside.
func checkIntegrity(container *Container, report *Report) {
	if !report.Checks.CertificateExists || !report.Checks.RedactedDocumentExists {
		return
	}

	chain := container.Files.Certificate.CryptographicProofs.HashChain
	recomputed := hashchain.HashString(container.Files.RedactedDocument)
	if recomputed == chain.HashRedacted {
		report.Checks.HashIntegrity = true
	} else {
		report.Errors = append(report.Errors,
			"Hash integrity check failed: redacted document has been modified")
	}

	if !report.Checks.ManifestExists {
		return
	}
	manifest := container.Files.Manifest
	if manifest.Integrity == nil {
		report.Errors = append(report.Errors, "manifest has no integrity block")
		return
	}

	// The manifest hash covers the pre-integrity serialization:
	// strip the block and reserialize canonically to recompute it.
	stripped := manifest
	stripped.Integrity = nil
	preIntegrity, err := codec.Marshal(stripped)
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("reserializing manifest: %v", err))
		return
	}
	if hashchain.Hash(preIntegrity) != manifest.Integrity.HashManifest {
		report.Errors = append(report.Errors,
			"Manifest integrity check failed: manifest has been modified")
	}

	integrityChain := HashChain{
		HashOriginal: manifest.Integrity.HashOriginal,
		HashRedacted: manifest.Integrity.HashRedacted,
		HashManifest: manifest.Integrity.HashManifest,
	}
	if integrityChain != chain {
		report.Errors = append(report.Errors,
			"certificate hash chain does not match the manifest integrity block")
	}
}
