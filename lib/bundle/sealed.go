// Copyright 2026 The Veridact Authors
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"fmt"
	"os"

	"github.com/veridact/veridact/lib/codec"
	"github.com/veridact/veridact/lib/sealed"
)

// SealedExtension is the canonical extension for encrypted bundle
// exports: a .red container sealed with age.
const SealedExtension = ".red.age"

// ExportSealed writes the bundle to path encrypted to the given age
// recipient public keys. The plaintext payload is byte-identical to
// what [Export] writes, so unsealing and verifying are independent
// steps.
func ExportSealed(b *TrustBundle, path string, recipientKeys []string) error {
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
	ciphertext, err := sealed.Encrypt(data, recipientKeys)
	if err != nil {
		return fmt.Errorf("sealing bundle: %w", err)
	}
	return writeFileAtomic(path, ciphertext, 0600)
}

// ImportSealed reads an encrypted bundle from path, decrypts it with
// the age private key, and parses the contained bundle.
func ImportSealed(path, privateKey string) (*TrustBundle, error) {
	ciphertext, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sealed bundle: %w", err)
	}
	data, err := sealed.Decrypt(ciphertext, privateKey)
	if err != nil {
		return nil, fmt.Errorf("unsealing bundle: %w", err)
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
