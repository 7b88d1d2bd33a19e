// Copyright 2026 The Veridact Authors
// SPDX-License-Identifier: Apache-2.0

package calendar

import "time"

// AttestationType classifies a calendar server's claim about a
// commitment.
type AttestationType string

const (
	// AttestationPending means the server holds the commitment but
	// has not yet embedded it in a blockchain transaction.
	AttestationPending AttestationType = "pending"

	// AttestationBitcoin means the commitment is embedded in a
	// Bitcoin block at the attestation's block height.
	AttestationBitcoin AttestationType = "bitcoin"
)

// Attestation is one server's claim about a commitment's status.
// Attestations are collected into lists, never merged: each server's
// answer stands on its own during aggregation.
type Attestation struct {
	// Server is the calendar server URL that produced this claim.
	Server string

	// Type is the claim's classification.
	Type AttestationType

	// BlockHeight is the confirming block for bitcoin attestations;
	// zero when the attestation carries no height.
	BlockHeight int64

	// Time is when this attestation was observed.
	Time time.Time
}

// Confirmed reports whether this attestation proves blockchain
// inclusion.
func (a *Attestation) Confirmed() bool {
	return a.Type == AttestationBitcoin && a.BlockHeight > 0
}
