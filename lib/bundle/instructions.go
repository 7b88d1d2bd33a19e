// Copyright 2026 The Veridact Authors
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"fmt"
	"time"
)

// auditorInstructions renders the static how-to-verify document
// included in every bundle. Pure formatting: the content varies only
// in the job identifier and creation time.
func auditorInstructions(jobID string, now time.Time) string {
	return fmt.Sprintf(`AUDITOR INSTRUCTIONS
====================

Bundle: %s
Created: %s

This trust bundle contains five logical files:

  manifest             job metadata, statistics, and integrity digests
  certificate          issuer identity and the cryptographic hash chain
  redactedDocument     the document after redaction
  policy               the redaction policy in effect for this job
  auditorInstructions  this document

To verify the bundle:

  1. Recompute the SHA256 digest of redactedDocument and compare it
     against certificate.cryptographicProofs.hashChain.hashRedacted.
     A mismatch means the redacted document was modified after
     issuance.
  2. Remove the manifest's integrity block, reserialize the manifest
     canonically, hash it, and compare against integrity.hashManifest.
  3. If the bundle was anchored, verify the timestamp proof against
     the calendar servers recorded in the anchor result.

The original document is not part of this bundle. Its digest
(integrity.hashOriginal) allows the holder of the original to prove
it is the document this bundle was generated from, without this
bundle revealing its content.
`, jobID, now.Format(time.RFC3339))
}
