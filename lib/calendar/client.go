// Copyright 2026 The Veridact Authors
// SPDX-License-Identifier: Apache-2.0

package calendar

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/veridact/veridact/lib/clock"
)

// bitcoinMarker is the 8-byte tag a calendar server includes in a
// status response body when the commitment is embedded in a Bitcoin
// block. The 4 bytes immediately following it carry the block height
// as a big-endian uint32.
var bitcoinMarker = []byte{0x05, 0x88, 0x96, 0x0d, 0x73, 0xd7, 0x19, 0x01}

// upgradeAccept is the Accept header sent on upgrade fetches, per the
// calendar protocol.
const upgradeAccept = "application/vnd.opentimestamps.v1"

// maxResponseBytes bounds how much of a server response is read. A
// calendar attestation is tens of bytes; anything approaching this
// limit is a misbehaving server.
const maxResponseBytes = 1 << 16

// Client performs the HTTP exchanges of the timestamp protocol. A
// Client holds no per-operation state and is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	clock      clock.Clock
	logger     *slog.Logger
}

// NewClient creates a calendar client. Nil arguments select the
// defaults: a fresh http.Client, the real clock, and slog.Default().
func NewClient(httpClient *http.Client, clk clock.Clock, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if clk == nil {
		clk = clock.Real()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{httpClient: httpClient, clock: clk, logger: logger}
}

// SubmitOutcome is the result of a multi-server submission.
type SubmitOutcome struct {
	// Proof is the combined timestamp proof: the binary header
	// followed by each successful server's raw response, concatenated
	// in configured server order.
	Proof []byte

	// Servers lists the servers whose responses are included.
	Servers []string

	// Warnings describes the servers that failed. Partial failure is
	// tolerated; these are informational.
	Warnings []string
}

// Submit commits digest to every server concurrently, each request
// bounded by its own timeout and cancelled independently. The calls
// join only after all have settled — there is no first-response
// short-circuit. If at least one server accepts, the combined proof
// is returned with a warning per failed server; only when every
// server fails does Submit return an error.
func (c *Client) Submit(ctx context.Context, digest [32]byte, servers []string, timeout time.Duration) (*SubmitOutcome, error) {
	if len(servers) == 0 {
		return nil, fmt.Errorf("no calendar servers configured")
	}

	type submitResult struct {
		response []byte
		err      error
	}
	results := make([]submitResult, len(servers))
	done := make(chan int, len(servers))

	for i, server := range servers {
		go func(i int, server string) {
			defer func() { done <- i }()
			requestCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			response, err := c.submitOne(requestCtx, server, digest)
			results[i] = submitResult{response: response, err: err}
		}(i, server)
	}
	for range servers {
		<-done
	}

	outcome := &SubmitOutcome{Proof: EncodeHeader(digest)}
	for i, server := range servers {
		if results[i].err != nil {
			c.logger.Warn("calendar submission failed",
				"server", server, "error", results[i].err)
			outcome.Warnings = append(outcome.Warnings,
				fmt.Sprintf("calendar server %s: %v", server, results[i].err))
			continue
		}
		outcome.Proof = append(outcome.Proof, results[i].response...)
		outcome.Servers = append(outcome.Servers, server)
	}

	if len(outcome.Servers) == 0 {
		return nil, fmt.Errorf("all %d calendar servers failed: %v", len(servers), outcome.Warnings)
	}
	return outcome, nil
}

// submitOne POSTs the raw digest bytes to one server's digest
// endpoint and returns the raw response body.
func (c *Client) submitOne(ctx context.Context, server string, digest [32]byte) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodPost,
		server+"/digest", bytes.NewReader(digest[:]))
	if err != nil {
		return nil, fmt.Errorf("building submission request: %w", err)
	}
	request.Header.Set("Content-Type", "application/octet-stream")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("submitting digest: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("digest submission returned status %d", response.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading submission response: %w", err)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("digest submission returned an empty attestation")
	}
	return body, nil
}

// Query asks one server for the status of a Merkle root commitment.
//
// Outcomes: a response body containing the bitcoin marker yields a
// bitcoin attestation with the block height read from the four bytes
// after the marker; HTTP 404 yields a pending attestation; anything
// else (transport error, timeout, other status, malformed body)
// yields no attestation and an error the caller records as a warning.
func (c *Client) Query(ctx context.Context, server, merkleRoot string) (*Attestation, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet,
		server+"/timestamp/"+merkleRoot, nil)
	if err != nil {
		return nil, fmt.Errorf("building status request: %w", err)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("querying status: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusNotFound {
		// The server has not aggregated this commitment yet.
		return &Attestation{
			Server: server,
			Type:   AttestationPending,
			Time:   c.clock.Now(),
		}, nil
	}
	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status query returned status %d", response.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading status response: %w", err)
	}

	markerIndex := bytes.Index(body, bitcoinMarker)
	if markerIndex < 0 {
		return nil, fmt.Errorf("status response carries no recognizable attestation")
	}
	heightOffset := markerIndex + len(bitcoinMarker)
	if len(body) < heightOffset+4 {
		return nil, fmt.Errorf("status response truncated after the bitcoin marker")
	}

	return &Attestation{
		Server:      server,
		Type:        AttestationBitcoin,
		BlockHeight: int64(binary.BigEndian.Uint32(body[heightOffset : heightOffset+4])),
		Time:        c.clock.Now(),
	}, nil
}

// FetchUpgrade requests a refreshed proof for a Merkle root from one
// server. The returned bytes replace the proof's attestation section;
// the caller re-verifies before adopting them.
func (c *Client) FetchUpgrade(ctx context.Context, server, merkleRoot string) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet,
		server+"/timestamp/"+merkleRoot, nil)
	if err != nil {
		return nil, fmt.Errorf("building upgrade request: %w", err)
	}
	request.Header.Set("Accept", upgradeAccept)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("fetching upgraded proof: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upgrade fetch returned status %d", response.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading upgraded proof: %w", err)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("upgrade fetch returned an empty proof")
	}
	return body, nil
}
