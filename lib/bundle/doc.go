// Copyright 2026 The Veridact Authors
// SPDX-License-Identifier: Apache-2.0

// Package bundle builds, persists, and verifies trust bundles.
//
// A trust bundle is the tamper-evident package produced at the end of
// a redaction job: a manifest, a certificate, the redacted document,
// the redaction policy, and auditor instructions. The bundle proves —
// without exposing the original text — that a redaction happened,
// what was redacted, and when.
//
// The cryptographic spine is a hash chain of three SHA256 digests:
// the original text, the redacted text, and the manifest itself. The
// manifest hash is computed over the manifest's canonical
// serialization before the integrity block is attached, so the hash
// never includes itself. The certificate duplicates all three digests
// so it can be checked independently of the manifest.
//
// Bundles are persisted as a single flat container document (canonical
// extension .red) rather than a multi-file archive. Export writes
// through a temporary file and an atomic rename so a crash mid-write
// never leaves a corrupt bundle behind.
package bundle
