// Copyright 2026 The Veridact Authors
// SPDX-License-Identifier: Apache-2.0

package anchor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/veridact/veridact/lib/calendar"
	"github.com/veridact/veridact/lib/hashchain"
)

// ProofExtension is the canonical extension for standalone proof
// files: the raw header-plus-attestation bytes.
const ProofExtension = ".ots"

// ExportProof writes an anchor's proof bytes to path. Unlike the
// network operations, filesystem problems abort directly — they are
// immediately retryable and carry no partial-success semantics.
func (s *Service) ExportProof(result *Result, path string) error {
	if len(result.Proof) == 0 {
		return fmt.Errorf("anchor %s has no proof to export", result.JobID)
	}
	return writeFileAtomic(path, result.Proof, 0600)
}

// ImportProof reads a standalone proof file and immediately
// re-verifies it, so a freshly loaded proof reflects current
// confirmation status rather than whatever was true at export time.
// The error return covers only file access; a proof whose content is
// malformed comes back as a failed result.
func (s *Service) ImportProof(ctx context.Context, path string) (*Result, error) {
	proof, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading proof file: %w", err)
	}

	loaded := &Result{
		Status:          StatusPending,
		Proof:           proof,
		CalendarServers: s.config.Servers,
	}
	if digest, _, err := calendar.DecodeHeader(proof); err == nil {
		loaded.MerkleRoot = hashchain.FormatDigest(digest)
	}

	return s.Verify(ctx, loaded), nil
}

// writeFileAtomic writes data through a temporary file and an atomic
// rename, syncing both the file and its directory.
func writeFileAtomic(path string, data []byte, mode os.FileMode) error {
	directory := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(directory, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", tmpPath, err)
	}
	if err := tmpFile.Chmod(mode); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("setting mode on %s: %w", tmpPath, err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("syncing %s: %w", tmpPath, err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming into place: %w", err)
	}

	if parent, err := os.Open(directory); err == nil {
		parent.Sync()
		parent.Close()
	}
	return nil
}
