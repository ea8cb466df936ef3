// Package bfscrawl provides a bounded, domain-restricted breadth-first web
// crawler. Starting from a seed URL it discovers and records reachable pages
// inside a set of allowed domains, honoring per-host robots.txt exclusions
// and global visit and extraction limits.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, zap/).
package bfscrawl
