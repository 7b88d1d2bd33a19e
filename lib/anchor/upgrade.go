// Copyright 2026 The Veridact Authors
// SPDX-License-Identifier: Apache-2.0

package anchor

import (
	"context"

	"github.com/veridact/veridact/lib/calendar"
	"github.com/veridact/veridact/lib/hashchain"
)

// Upgrade attempts to refresh an anchor's proof bytes from the
// calendar servers. Already-confirmed and already-upgraded anchors
// are returned unchanged with no network calls. Otherwise the servers
// are tried in order; the first successful refresh is re-verified,
// and only a re-verification that reports confirmed produces a new
// upgraded result. In every other case the input is returned
// unmodified — Upgrade never fails, it simply may do nothing.
func (s *Service) Upgrade(ctx context.Context, result *Result) *Result {
	if result.Status.terminal() {
		return result
	}

	digest, err := hashchain.ParseDigest(result.MerkleRoot)
	if err != nil {
		// Nothing to refresh against; leave the anchor as it is.
		return result
	}

	var refreshed []byte
	for _, server := range s.config.Servers {
		fetchCtx, cancel := context.WithTimeout(ctx, s.config.QueryTimeout)
		fetched, err := s.client.FetchUpgrade(fetchCtx, server, result.MerkleRoot)
		cancel()
		if err != nil {
			s.logger.Warn("proof upgrade fetch failed", "server", server, "error", err)
			continue
		}
		refreshed = fetched
		break
	}
	if refreshed == nil {
		return result
	}

	candidate := result.clone()
	candidate.Proof = append(calendar.EncodeHeader(digest), refreshed...)

	verified := s.Verify(ctx, candidate)
	if verified.Status != StatusConfirmed {
		return result
	}

	verified.Status = StatusUpgraded
	s.logger.Info("anchor proof upgraded",
		"jobId", verified.JobID,
		"blockHeight", verified.BlockHeight)
	return verified
}
