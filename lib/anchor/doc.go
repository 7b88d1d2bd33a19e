// Copyright 2026 The Veridact Authors
// SPDX-License-Identifier: Apache-2.0

// Package anchor drives the blockchain commitment lifecycle for trust
// bundles: anchor → verify → upgrade, modeled as a state machine over
// immutable results.
//
// Anchoring computes a Merkle root over a bundle's five component
// hashes and submits it to the configured calendar servers. The
// resulting anchor starts pending; verification aggregates per-server
// attestations into confirmed, pending, or failed; upgrading refreshes
// the proof bytes once a server can attest confirmation, marking the
// anchor upgraded.
//
// Status moves only forward: pending to confirmed or failed, and
// confirmed to upgraded. Operations return new Result values rather
// than mutating in place, and a later observation can never regress a
// result that already reached confirmed or upgraded.
//
// Per-server network faults are converted to warnings inside this
// package; they never escape as errors. Anchor and Verify always
// return a structured result so batch tooling can process many
// bundles without per-item error handling. Only local filesystem
// problems (proof export/import) abort the caller directly.
package anchor
