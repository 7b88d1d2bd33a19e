// Copyright 2026 The Veridact Authors
// SPDX-License-Identifier: Apache-2.0

package anchor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/veridact/veridact/lib/bundle"
	"github.com/veridact/veridact/lib/calendar"
	"github.com/veridact/veridact/lib/clock"
	"github.com/veridact/veridact/lib/hashchain"
)

// estimatedConfirmationDelay is how far out a fresh anchor's expected
// confirmation is set. Calendar servers batch commitments into
// roughly hourly blockchain transactions.
const estimatedConfirmationDelay = time.Hour

// Config holds the orchestrator's operating parameters, typically
// produced by lib/config.
type Config struct {
	// Servers are the calendar server base URLs used for submission,
	// verification, and upgrades.
	Servers []string

	// SubmitTimeout bounds each per-server submission request.
	SubmitTimeout time.Duration

	// QueryTimeout bounds each per-server status query.
	QueryTimeout time.Duration

	// PollInterval is the confirmation poll cadence inside Anchor
	// when waiting for confirmation.
	PollInterval time.Duration

	// ConfirmationTimeout bounds the total confirmation wait.
	ConfirmationTimeout time.Duration
}

// Options modifies a single Anchor call.
type Options struct {
	// WaitForConfirmation keeps Anchor polling until the commitment
	// is confirmed, the configured timeout elapses, or ctx is
	// cancelled. Without it, Anchor returns as soon as the submission
	// settles.
	WaitForConfirmation bool
}

// Service is the anchor orchestrator. Construct one per server set
// with NewService and share it freely; it holds no per-anchor state.
type Service struct {
	client *calendar.Client
	clock  clock.Clock
	logger *slog.Logger
	config Config
}

// NewService creates an orchestrator. A nil client gets a default
// calendar client sharing clk and logger; nil clk and logger select
// the real clock and slog.Default().
func NewService(client *calendar.Client, clk clock.Clock, logger *slog.Logger, config Config) *Service {
	if clk == nil {
		clk = clock.Real()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if client == nil {
		client = calendar.NewClient(nil, clk, logger)
	}
	return &Service{client: client, clock: clk, logger: logger, config: config}
}

// Anchor commits a bundle to the calendar servers and returns the
// initial observation. Submission failures are reported in the
// result's status and errors, never as a returned error; the error
// return covers only unusable input (a nil bundle or one whose
// components cannot be hashed).
func (s *Service) Anchor(ctx context.Context, b *bundle.TrustBundle, options Options) (*Result, error) {
	if b == nil {
		return nil, fmt.Errorf("anchoring requires a bundle")
	}

	leaves, err := b.ComponentHashes()
	if err != nil {
		return nil, fmt.Errorf("hashing bundle components: %w", err)
	}
	root, err := hashchain.MerkleRoot(leaves)
	if err != nil {
		return nil, fmt.Errorf("building bundle merkle root: %w", err)
	}
	digest, err := hashchain.ParseDigest(root)
	if err != nil {
		return nil, fmt.Errorf("parsing bundle merkle root: %w", err)
	}

	result := &Result{
		MerkleRoot: root,
		JobID:      b.Manifest.JobID,
	}

	outcome, err := s.client.Submit(ctx, digest, s.config.Servers, s.config.SubmitTimeout)
	if err != nil {
		result.Status = StatusFailed
		result.Errors = append(result.Errors, err.Error())
		return result, nil
	}

	result.Status = StatusPending
	result.Proof = outcome.Proof
	result.CalendarServers = outcome.Servers
	result.Warnings = outcome.Warnings
	result.EstimatedConfirmation = s.clock.Now().Add(estimatedConfirmationDelay)

	s.logger.Info("bundle anchored",
		"jobId", result.JobID,
		"merkleRoot", result.MerkleRoot,
		"servers", len(result.CalendarServers))

	if options.WaitForConfirmation {
		return s.waitForConfirmation(ctx, result), nil
	}
	return result, nil
}

// waitForConfirmation polls Verify at the configured interval until
// the anchor confirms, the confirmation timeout elapses, or ctx is
// cancelled. On timeout or cancellation the pending result is
// returned unchanged — waiting longer is the caller's choice to make
// again later.
func (s *Service) waitForConfirmation(ctx context.Context, result *Result) *Result {
	ticker := s.clock.NewTicker(s.config.PollInterval)
	defer ticker.Stop()
	deadline := s.clock.After(s.config.ConfirmationTimeout)

	for {
		select {
		case <-ctx.Done():
			return result
		case <-deadline:
			s.logger.Info("confirmation wait timed out", "jobId", result.JobID)
			return result
		case <-ticker.C:
			observed := s.Verify(ctx, result)
			if observed.Status == StatusConfirmed {
				return observed
			}
			// Pending and transient failures alike: keep polling
			// until the deadline decides.
		}
	}
}
