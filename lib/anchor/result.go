// Copyright 2026 The Veridact Authors
// SPDX-License-Identifier: Apache-2.0

package anchor

import (
	"slices"
	"time"

	"github.com/veridact/veridact/lib/calendar"
)

// Status is an anchor's position in the commitment lifecycle.
type Status string

const (
	// StatusPending: the commitment was accepted by at least one
	// calendar server but no blockchain inclusion is attested yet.
	StatusPending Status = "pending"

	// StatusConfirmed: at least one server attests inclusion in a
	// block.
	StatusConfirmed Status = "confirmed"

	// StatusFailed: the proof is unusable or every reachable server
	// knows nothing about the commitment.
	StatusFailed Status = "failed"

	// StatusUpgraded: a terminal refinement of confirmed — the proof
	// bytes were refreshed from a calendar server after confirmation.
	StatusUpgraded Status = "upgraded"
)

// terminal reports whether a status can never regress to pending.
func (s Status) terminal() bool {
	return s == StatusConfirmed || s == StatusUpgraded
}

// Result is one observation of an anchor's state. Operations on the
// orchestrator produce new Result values; an existing Result is never
// mutated.
type Result struct {
	// Status is the lifecycle position as of this observation.
	Status Status

	// MerkleRoot is the hex digest committed to the calendar servers:
	// the root over the bundle's five component hashes.
	MerkleRoot string

	// Proof is the opaque timestamp proof: binary header plus the
	// contributing servers' attestation bytes.
	Proof []byte

	// CalendarServers lists the servers that accepted the original
	// submission.
	CalendarServers []string

	// JobID ties the anchor back to the redaction job that produced
	// the bundle.
	JobID string

	// BlockHeight and BlockHash identify the confirming block. Height
	// zero means unconfirmed; the hash is not carried by the
	// simplified attestation format and stays empty until a richer
	// proof source fills it.
	BlockHeight int64
	BlockHash   string

	// ConfirmedAt is when confirmation was first observed. Zero until
	// confirmed.
	ConfirmedAt time.Time

	// EstimatedConfirmation is when the commitment is expected to
	// reach a block. Set at anchor time, dropped on confirmation.
	EstimatedConfirmation time.Time

	// Attestations are the per-server claims collected by the most
	// recent verification. One entry per server that answered usefully;
	// never merged.
	Attestations []calendar.Attestation

	// Errors and Warnings accumulate the observation's faults:
	// errors are fatal to this anchor, warnings are tolerated
	// per-server failures.
	Errors   []string
	Warnings []string
}

// clone returns a deep copy of r, the starting point for every
// operation that produces a new observation.
func (r *Result) clone() *Result {
	copied := *r
	copied.Proof = slices.Clone(r.Proof)
	copied.CalendarServers = slices.Clone(r.CalendarServers)
	copied.Attestations = slices.Clone(r.Attestations)
	copied.Errors = slices.Clone(r.Errors)
	copied.Warnings = slices.Clone(r.Warnings)
	return &copied
}
