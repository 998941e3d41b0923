// Package staging manages the lifetime of the private editable copy of a
// document file.
//
// Editing never touches the user's file directly: Stage copies it to a
// fresh temp file, opens that copy as an OPC package, and all edits happen
// there. Commit copies the staged file back over the original (or a "save
// as" target), and Dispose releases the package handle and deletes the
// temp file.
//
// Dispose is deliberately forgiving — it runs on cleanup paths including
// after prior errors, so double closes and deletion failures are logged
// rather than returned.
package staging
