// Package main hosts the kotoba CLI entrypoint and command graph.
//
// The Cobra-based command tree covers the two dataset passes (split and
// merge), a status overview of sources, chunks, and journaled run
// outcomes, and configuration scaffolding. It centralizes configuration
// resolution and logging setup so subcommands can focus on user
// experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags
// here.
package main
