// Copyright 2026 The Veridact Authors
// SPDX-License-Identifier: Apache-2.0

package calendar

import (
	"bytes"
	"fmt"
)

// headerMagic is the 31-byte marker opening every proof file. The
// byte sequence follows the public timestamping protocol's file
// signature; proofs from other sources are recognizable even though
// the body format here is simplified.
var headerMagic = []byte{
	0x00, 'O', 'p', 'e', 'n', 'T', 'i', 'm', 'e', 's', 't', 'a', 'm', 'p', 's',
	0x00, 0x00, 'P', 'r', 'o', 'o', 'f', 0x00,
	0xbf, 0x89, 0xe2, 0xe8, 0x84, 0xe8, 0x92, 0x94,
}

const (
	// headerVersion is the proof format version byte.
	headerVersion = 0x01

	// tagSHA256 is the hash algorithm tag for SHA256 digests.
	tagSHA256 = 0x08

	// digestLength is the only supported digest length.
	digestLength = 0x20
)

// HeaderSize is the full encoded header length: magic, version,
// algorithm tag, length byte, and the 32 digest bytes.
var HeaderSize = len(headerMagic) + 3 + 32

// EncodeHeader builds the proof header for a digest: the magic, one
// version byte, one hash-algorithm tag byte, one length byte, then
// the raw digest bytes.
func EncodeHeader(digest [32]byte) []byte {
	header := make([]byte, 0, HeaderSize)
	header = append(header, headerMagic...)
	header = append(header, headerVersion, tagSHA256, digestLength)
	header = append(header, digest[:]...)
	return header
}

// ValidHeader reports whether proof opens with a well-formed header
// marker: at least the magic's length and an exact magic match. This
// is the cheap gate the orchestrator applies before any server is
// queried.
func ValidHeader(proof []byte) bool {
	return len(proof) >= len(headerMagic) && bytes.Equal(proof[:len(headerMagic)], headerMagic)
}

// DecodeHeader fully parses a proof header, returning the committed
// digest and the remaining attestation bytes. Errors identify the
// first malformed field.
func DecodeHeader(proof []byte) (digest [32]byte, rest []byte, err error) {
	if !ValidHeader(proof) {
		return digest, nil, fmt.Errorf("proof does not start with the timestamp header magic")
	}
	if len(proof) < HeaderSize {
		return digest, nil, fmt.Errorf("proof header truncated: %d bytes, want at least %d", len(proof), HeaderSize)
	}

	offset := len(headerMagic)
	if version := proof[offset]; version != headerVersion {
		return digest, nil, fmt.Errorf("unsupported proof version 0x%02x", version)
	}
	if algorithm := proof[offset+1]; algorithm != tagSHA256 {
		return digest, nil, fmt.Errorf("unsupported hash algorithm tag 0x%02x", algorithm)
	}
	if length := proof[offset+2]; length != digestLength {
		return digest, nil, fmt.Errorf("unsupported digest length %d", length)
	}

	copy(digest[:], proof[offset+3:offset+3+32])
	return digest, proof[HeaderSize:], nil
}
