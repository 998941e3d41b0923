// Package opc implements the minimal Open Packaging Conventions container
// the editor core needs: named parts in a zip archive, typed package-root
// relationships, and the [Content_Types].xml bookkeeping that goes with them.
//
// The implementation keeps the whole archive in memory and rewrites it to
// the backing file on Flush. Parts the editor never touches are carried
// through byte-for-byte, so flushing a package that was only read produces
// an archive with identical part content.
//
// Only package-root relationships (_rels/.rels) are managed. Part-level
// relationship files are preserved as opaque entries — custom UI parts are
// always targets of package-root relationships, so nothing here needs to
// edit nested .rels parts.
package opc
