// Copyright 2026 The Veridact Authors
// SPDX-License-Identifier: Apache-2.0

package anchor

import (
	"context"
	"fmt"
	"time"

	"github.com/veridact/veridact/lib/calendar"
	"github.com/veridact/veridact/lib/hashchain"
)

// Verify produces a fresh observation of an anchor's status by
// querying every configured calendar server concurrently.
//
// A malformed proof header fails the anchor immediately, with no
// server queried. Otherwise attestations are aggregated after all
// queries settle: any bitcoin attestation with a block height means
// confirmed; else any pending attestation means pending; else, when
// the servers answered but attested nothing, the anchor is failed
// with an explicit no-valid-attestations error. When every server was
// simply unreachable the status is left alone — "nobody answered" is
// kept distinct from "everyone answered, but there is nothing to
// confirm". Per-server faults become warnings, never errors.
//
// A result that already reached confirmed or upgraded never regresses:
// a weaker fresh observation is reported through warnings instead.
func (s *Service) Verify(ctx context.Context, result *Result) *Result {
	observed := result.clone()
	observed.Attestations = nil
	observed.Errors = nil
	observed.Warnings = nil

	digest, _, err := calendar.DecodeHeader(result.Proof)
	if err != nil {
		return s.degrade(result, observed, StatusFailed,
			fmt.Sprintf("invalid timestamp proof: %v", err))
	}
	if committed := hashchain.FormatDigest(digest); committed != result.MerkleRoot {
		return s.degrade(result, observed, StatusFailed,
			fmt.Sprintf("proof commits to %s, not this anchor's merkle root", committed))
	}

	attestations, warnings := s.queryAll(ctx, result.MerkleRoot)
	observed.Warnings = warnings
	observed.Attestations = attestations

	var confirmed *calendar.Attestation
	pending := false
	for i := range attestations {
		if attestations[i].Confirmed() && confirmed == nil {
			confirmed = &attestations[i]
		}
		if attestations[i].Type == calendar.AttestationPending {
			pending = true
		}
	}

	switch {
	case confirmed != nil:
		observed.Status = StatusConfirmed
		if result.Status.terminal() {
			// Upgraded stays upgraded even though the fresh
			// observation alone only proves confirmed.
			observed.Status = result.Status
		}
		observed.BlockHeight = confirmed.BlockHeight
		observed.ConfirmedAt = confirmed.Time
		observed.EstimatedConfirmation = time.Time{}
	case pending:
		if result.Status.terminal() {
			return s.degrade(result, observed, StatusPending,
				"servers no longer attest confirmation")
		}
		observed.Status = StatusPending
	case len(observed.Warnings) > 0:
		// Every server was unreachable: nothing was observed either
		// way, so the anchor keeps its status. This is deliberately
		// distinct from the failed case below — "nobody answered" is
		// not "everyone answered and there is nothing to confirm".
		observed.Status = result.Status
	default:
		return s.degrade(result, observed, StatusFailed, "no valid attestations found")
	}

	return observed
}

// degrade applies a weaker observation to a result, respecting status
// monotonicity: a terminal result keeps its status and block fields
// and records the degradation as a warning; a non-terminal result
// takes the weaker status, with failure reasons as errors.
func (s *Service) degrade(previous, observed *Result, weaker Status, reason string) *Result {
	if previous.Status.terminal() {
		observed.Status = previous.Status
		observed.Warnings = append(observed.Warnings,
			fmt.Sprintf("ignoring regression to %s: %s", weaker, reason))
		return observed
	}
	observed.Status = weaker
	if weaker == StatusFailed {
		observed.Errors = append(observed.Errors, reason)
	} else {
		observed.Warnings = append(observed.Warnings, reason)
	}
	return observed
}

// queryAll fans one status query out to every configured server, each
// bounded by the query timeout, and joins after all settle. Failed
// queries are returned as warnings alongside whatever attestations
// were collected.
func (s *Service) queryAll(ctx context.Context, merkleRoot string) ([]calendar.Attestation, []string) {
	servers := s.config.Servers

	type queryResult struct {
		attestation *calendar.Attestation
		err         error
	}
	results := make([]queryResult, len(servers))
	done := make(chan int, len(servers))

	for i, server := range servers {
		go func(i int, server string) {
			defer func() { done <- i }()
			queryCtx, cancel := context.WithTimeout(ctx, s.config.QueryTimeout)
			defer cancel()
			attestation, err := s.client.Query(queryCtx, server, merkleRoot)
			results[i] = queryResult{attestation: attestation, err: err}
		}(i, server)
	}
	for range servers {
		<-done
	}

	var attestations []calendar.Attestation
	var warnings []string
	for i, server := range servers {
		if results[i].err != nil {
			s.logger.Warn("calendar status query failed",
				"server", server, "error", results[i].err)
			warnings = append(warnings, fmt.Sprintf("calendar server %s: %v", server, results[i].err))
			continue
		}
		attestations = append(attestations, *results[i].attestation)
	}
	return attestations, warnings
}
