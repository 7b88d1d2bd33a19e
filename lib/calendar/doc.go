// Copyright 2026 The Veridact Authors
// SPDX-License-Identifier: Apache-2.0

// Package calendar implements the timestamp protocol client: the
// binary proof header and the HTTP exchanges with calendar servers
// that aggregate hash commitments into blockchain transactions.
//
// The proof format is a deliberate simplification of a calendar-tree
// timestamp proof: a fixed header (magic, version, hash algorithm,
// digest) followed by each contributing server's raw submission
// response, concatenated. It is self-consistent — proofs written by
// this package verify with this package — but is not interoperable
// with standards-faithful timestamp verifiers. The magic and tag
// constants follow the public protocol so a faithful implementation
// could share them.
//
// All multi-server operations fan out concurrently with one
// independently cancellable request per server, and join only after
// every request settles. One unresponsive server never stalls the
// others or the caller.
package calendar
