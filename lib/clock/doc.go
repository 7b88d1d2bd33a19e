// Copyright 2026 The Veridact Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time abstraction.
//
// Bundle generation stamps creation times and derives job identifiers
// from the current time, and the anchor orchestrator runs a bounded
// confirmation poll loop. Both would be untestable against the wall
// clock, so every component that reads or waits on time accepts a
// Clock instead of calling the time package directly.
//
// Production code injects Real(). Tests inject Fake(initial), then
// drive time forward explicitly:
//
//	c := clock.Fake(time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC))
//	service := anchor.NewService(client, c, nil, config)
//	// ... start the poll loop in a goroutine ...
//	c.WaitForWaiters(1)
//	c.Advance(5 * time.Second)
package clock
