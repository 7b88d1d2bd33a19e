// Copyright 2026 The Veridact Authors
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/veridact/veridact/lib/codec"
)

// Container framing constants. Version is the container format
// version, not the software version: it only changes when the
// container shape changes incompatibly.
const (
	ContainerVersion = "1.0"
	ContainerFormat  = "redaction-trust-bundle"

	// Extension is the canonical file extension for exported bundles.
	Extension = ".red"
)

// Container is the on-disk shape of a bundle: a single flat document
// holding all five logical files. Deliberately not a multi-file
// archive — the flat form keeps verification a single read + parse.
type Container struct {
	Version string         `cbor:"version"`
	Format  string         `cbor:"format"`
	Files   ContainerFiles `cbor:"files"`
}

// ContainerFiles is the files section of a container.
type ContainerFiles struct {
	Manifest            Manifest    `cbor:"manifest"`
	Certificate         Certificate `cbor:"certificate"`
	RedactedDocument    string      `cbor:"redactedDocument"`
	Policy              string      `cbor:"policy"`
	AuditorInstructions string      `cbor:"auditorInstructions"`
}

// Export writes the bundle to path as a container document. The write
// goes through a temporary file in the same directory, an fsync, and
// an atomic rename, so readers never observe a partially written
// bundle and a crash mid-export leaves the previous file intact.
func Export(b *TrustBundle, path string) error {
	container := Container{
		Version: ContainerVersion,
		Format:  ContainerFormat,
		Files: ContainerFiles{
			Manifest:            b.Manifest,
			Certificate:         b.Certificate,
			RedactedDocument:    b.RedactedDocument,
			Policy:              b.Policy,
			AuditorInstructions: b.AuditorInstructions,
		},
	}

	data, err := codec.Marshal(container)
	if err != nil {
		return fmt.Errorf("serializing bundle container: %w", err)
	}
	return writeFileAtomic(path, data, 0600)
}

// Import reads and parses a container from path, validating the
// top-level shape before trusting any field. An unknown future
// version is not an error here — version skew is the verifier's
// business, and it reports it as a warning.
func Import(path string) (*TrustBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bundle: %w", err)
	}

	if err := validateShape(data); err != nil {
		return nil, err
	}

	var container Container
	if err := codec.Unmarshal(data, &container); err != nil {
		return nil, fmt.Errorf("parsing bundle container: %w", err)
	}

	return &TrustBundle{
		Manifest:            container.Files.Manifest,
		Certificate:         container.Files.Certificate,
		RedactedDocument:    container.Files.RedactedDocument,
		Policy:              container.Files.Policy,
		AuditorInstructions: container.Files.AuditorInstructions,
	}, nil
}

// validateShape checks the container's top-level structure against
// the loose decoded form: a map with a format tag and a files map
// containing the mandatory entries. Typed decoding would silently
// zero-fill missing sections; this check runs first so a truncated or
// foreign file is rejected with a structural error instead.
func validateShape(data []byte) error {
	var loose any
	if err := codec.Unmarshal(data, &loose); err != nil {
		return fmt.Errorf("parsing bundle container: %w", err)
	}

	top, ok := loose.(map[string]any)
	if !ok {
		return fmt.Errorf("bundle container is not a map (got %T)", loose)
	}
	if format, ok := top["format"].(string); !ok || format != ContainerFormat {
		return fmt.Errorf("bundle container format is %v, want %q", top["format"], ContainerFormat)
	}
	files, ok := top["files"].(map[string]any)
	if !ok {
		return fmt.Errorf("bundle container has no files section")
	}
	for _, name := range []string{FileManifest, FileCertificate, FileRedactedDocument} {
		if _, ok := files[name]; !ok {
			return fmt.Errorf("bundle container is missing %s", name)
		}
	}
	return nil
}

// writeFileAtomic writes data to path via a temporary file in the
// same directory, fsync, close, and rename, then syncs the parent
// directory so the rename survives power loss.
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
