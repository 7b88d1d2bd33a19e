// Copyright 2026 The Veridact Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides channel assertion helpers for tests that
// coordinate with goroutines, such as the anchor orchestrator's
// confirmation poll loop. The helpers bound every channel operation
// with a timeout so a broken test hangs for seconds, not forever.
package testutil
