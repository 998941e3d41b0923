// Package model defines the domain types and value objects for the
// ribbonx CLI.
//
// This package contains pure data structures with no external dependencies:
// the application family derived from a file extension (ApplicationKind),
// the closed set of custom UI part kinds (PartKind) together with their
// fixed part-path/relationship-type wiring, and the error taxonomy
// (OfficeError) used across the packaging, staging, and document layers.
//
// The package also defines exit codes (ExitCode) so the CLI layer can
// translate domain errors into proper OS process exit codes.
package model
