// Package model defines the domain types and value objects for the
// pylaunch CLI.
//
// This package contains pure data structures with no external
// dependencies: the launch plan, doctor check results, exit codes, and
// the error types (CLIError, ExitStatusError) that carry exit codes to
// the OS process boundary. Nothing here is persisted — every value is
// rebuilt from the filesystem and environment on each invocation.
package model
