// Package office orchestrates custom UI editing over one staged OOXML
// document.
//
// Document owns the staged package for its whole lifetime: opening a file
// stages a private copy, scans the package-root relationships for the three
// custom UI part kinds, and exposes create/retrieve/save/remove operations
// over the discovered parts. Save flushes the package, commits the staged
// copy back over the target file, and rescans — the in-memory document
// stays usable even when the commit itself fails.
//
// Instances follow a single-owner, single-threaded usage model. There is no
// internal locking; callers must serialize access externally.
package office
