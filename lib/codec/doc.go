// Copyright 2026 The Veridact Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the canonical serialization used for trust
// bundle containers and manifest hashing.
//
// The manifest integrity contract requires that the same logical
// manifest always serializes to identical bytes: the manifest hash is
// computed over the serialized pre-integrity manifest, and a bundle
// re-verified years later must reproduce it exactly. CBOR Core
// Deterministic Encoding (RFC 8949 §4.2) gives that guarantee — sorted
// map keys, smallest integer encoding, no indefinite-length items —
// so this package is the only serialization path for anything that is
// hashed or persisted.
//
// Decoding accepts standard CBOR and ignores unknown fields, which is
// what lets newer bundle container versions degrade to a verification
// warning instead of a parse failure.
package codec
