// Copyright 2026 The Veridact Authors
// SPDX-License-Identifier: Apache-2.0

// Package sealed provides age encryption and decryption for trust
// bundle exports. It wraps filippo.io/age for the two operations this
// system needs: encrypt a serialized bundle to one or more recipient
// public keys, and decrypt it with a private identity.
//
// Redacted documents are still sensitive in many deployments — a
// redaction policy can leave dates, initials, or facility names in
// place — so operators shipping bundles across trust boundaries can
// seal them at rest. Sealing is optional and orthogonal to the hash
// chain: the digests inside the bundle are computed before
// encryption and survive unseal unchanged.
package sealed
