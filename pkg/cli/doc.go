// Package cli provides the command-line interface for fixtures.
//
// Commands:
//   - get: resolve a fixture (with optional fallback) and print it
//   - list: list fixture files matching a glob
//   - validate: decode every fixture and check it against a JSON Schema
//   - watch: print fixture changes until interrupted
//   - init: write a starter server options file and create the data root
//   - config: show the effective CLI configuration and server options
//   - version: show build information
//
// Global flags are layered over FIXTURES_* environment variables and
// .fixturesrc.yaml files by package cliconfig.
package cli
