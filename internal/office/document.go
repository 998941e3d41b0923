package office

import (
	"path/filepath"

	"github.com/clbispo/office-ribbonx-editor/internal/model"
	"github.com/clbispo/office-ribbonx-editor/internal/staging"
)

// customPartContentType is the content type new custom UI parts are
// registered with. Office accepts plain application/xml for all three
// part kinds.
const customPartContentType = "application/xml"

// Document is an OOXML document open for custom UI editing.
//
// The lifecycle over one instance is Constructed → Open → [Dirty ⇄ Clean]
// → Closed. Closed is terminal: no operation is valid afterwards except
// Close itself, which is idempotent.
type Document struct {
	// originalPath is the user-facing file location. It is the document's
	// identity and is never mutated by editing — Save takes an explicit
	// target instead of rewriting it.
	originalPath string

	staged *staging.Staged
	parts  []*OfficePart
	dirty  bool
	closed bool
}

// OpenDocument stages a private copy of the file at path, opens it as a
// package, and scans it for existing custom UI parts.
//
// Fails with an invalid-argument error for an empty path, not-found if the
// file does not exist, and package-open if it is not a valid container.
// Construction-time failures leave no resources allocated.
func OpenDocument(path string) (*Document, error) {
	if path == "" {
		return nil, model.NewError(model.KindInvalidArgument, "document path must not be empty")
	}

	staged, err := staging.Stage(path)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		originalPath: path,
		staged:       staged,
	}
	doc.scanParts()
	return doc, nil
}

// scanParts rebuilds the tracked part list from the package-root
// relationships. For each custom UI relationship type only the FIRST
// matching relationship is consumed; additional relationships of the same
// type, if present, are ignored. A relationship whose resolved target does
// not exist as a part is skipped.
func (d *Document) scanParts() {
	d.parts = nil
	pkg := d.staged.Package

	for _, kind := range model.AllPartKinds {
		rels := pkg.RelationshipsByType(kind.Wiring().RelationshipType)
		if len(rels) == 0 {
			continue
		}
		rel := rels[0]

		target, ok := pkg.ResolveTarget(rel)
		if !ok || !pkg.PartExists(target) {
			continue
		}
		part, err := pkg.Part(target)
		if err != nil {
			continue
		}

		d.parts = append(d.parts, &OfficePart{
			kind:           kind,
			relationshipID: rel.ID,
			pkg:            pkg,
			part:           part,
		})
	}
}

// OriginalPath returns the user-facing file location the document was
// opened from.
func (d *Document) OriginalPath() string {
	return d.originalPath
}

// StagingPath returns the path of the private staged copy.
func (d *Document) StagingPath() string {
	return d.staged.Path
}

// Parts returns a copy of the tracked custom UI parts, in scan order.
func (d *Document) Parts() []*OfficePart {
	out := make([]*OfficePart, len(d.parts))
	copy(out, d.parts)
	return out
}

// IsDirty reports whether in-memory state diverges from the last persisted
// state of the staged copy.
func (d *Document) IsDirty() bool {
	return d.dirty
}

// FileType derives the owning application family from the document's file
// extension.
func (d *Document) FileType() model.ApplicationKind {
	return model.ClassifyExtension(filepath.Ext(d.originalPath))
}

// HasCustomUI reports whether the document carries ribbon customization.
// Only the two ribbon part kinds count; a QAT part alone does not.
func (d *Document) HasCustomUI() bool {
	for _, p := range d.parts {
		if p.Kind().IsRibbon() {
			return true
		}
	}
	return false
}

// HasExternalChanges reports whether the file at the original path has
// diverged from the staged copy. See staging.Staged.HasExternalChanges for
// the documented reliability limitation.
func (d *Document) HasExternalChanges() (bool, error) {
	if d.closed {
		return false, errDocumentClosed()
	}
	return d.staged.HasExternalChanges()
}

// RetrieveCustomPart returns the tracked part of the given kind, or nil if
// the document has none.
func (d *Document) RetrieveCustomPart(kind model.PartKind) *OfficePart {
	for _, p := range d.parts {
		if p.Kind() == kind {
			return p
		}
	}
	return nil
}

// CreateCustomPart returns the custom UI part of the given kind, creating
// it if necessary.
//
// When the kind is already tracked, the tracked part is returned unchanged
// and no duplicate relationship is created. Otherwise a fresh package-root
// relationship is wired to the kind's fixed part path; the part itself is
// get-or-create — a part orphaned at that URI by a prior inconsistent
// state is reused rather than recreated.
func (d *Document) CreateCustomPart(kind model.PartKind) (*OfficePart, error) {
	if d.closed {
		return nil, errDocumentClosed()
	}

	if existing := d.RetrieveCustomPart(kind); existing != nil {
		return existing, nil
	}

	pkg := d.staged.Package
	wiring := kind.Wiring()

	rel, err := pkg.CreateRelationship(wiring.Path, wiring.RelationshipType)
	if err != nil {
		return nil, err
	}

	part, err := pkg.Part(wiring.Path)
	if err != nil {
		part, err = pkg.CreatePart(wiring.Path, customPartContentType)
		if err != nil {
			return nil, err
		}
	}

	op := &OfficePart{
		kind:           kind,
		relationshipID: rel.ID,
		pkg:            pkg,
		part:           part,
	}
	d.parts = append(d.parts, op)
	d.dirty = true
	return op, nil
}

// SaveCustomPart writes text into the part of the given kind.
//
// If the document has no such part and createIfMissing is false, this is a
// silent no-op — "save only if a part already exists" — not an error. With
// createIfMissing the part is created first.
func (d *Document) SaveCustomPart(kind model.PartKind, text string, createIfMissing bool) error {
	if d.closed {
		return errDocumentClosed()
	}

	part := d.RetrieveCustomPart(kind)
	if part == nil {
		if !createIfMissing {
			return nil
		}
		created, err := d.CreateCustomPart(kind)
		if err != nil {
			return err
		}
		part = created
	}

	if err := part.Save(text); err != nil {
		return err
	}
	d.dirty = true
	return nil
}

// RemoveCustomPart removes every tracked part of the given kind — at most
// one, per the single-part-per-kind invariant — deleting its relationship
// and part from the package and flushing. A no-op if no part of that kind
// exists.
func (d *Document) RemoveCustomPart(kind model.PartKind) error {
	if d.closed {
		return errDocumentClosed()
	}

	var kept []*OfficePart
	removed := false
	for _, p := range d.parts {
		if p.Kind() != kind {
			kept = append(kept, p)
			continue
		}
		if err := p.Remove(); err != nil {
			return err
		}
		removed = true
	}
	d.parts = kept

	if !removed {
		return nil
	}
	if err := d.staged.Package.Flush(); err != nil {
		return err
	}
	d.dirty = true
	return nil
}

// Save persists the document. An empty targetPath means the original path.
//
// Saving is skipped entirely when nothing changed AND the destination is
// the original path; a clean "save as" to a different path still performs
// the copy. Otherwise the package is flushed and closed, the staged file
// is committed over the target, and the document unconditionally
// reinitializes — reopening the staged copy and rescanning parts — even
// when the commit failed, so the in-memory document remains usable and the
// save can be retried. The dirty flag is cleared in all cases.
func (d *Document) Save(targetPath string, preserveAttributes bool) error {
	if d.closed {
		return errDocumentClosed()
	}

	if targetPath == "" {
		targetPath = d.originalPath
	}
	if !d.dirty && targetPath == d.originalPath {
		return nil
	}

	err := d.staged.Package.Close()
	if err == nil {
		err = d.staged.Commit(targetPath, preserveAttributes)
	}

	// Reinitialize no matter how the commit went; a reopen failure only
	// surfaces when the commit itself succeeded.
	if reopenErr := d.staged.Reopen(); reopenErr != nil {
		if err == nil {
			err = reopenErr
		}
	} else {
		d.scanParts()
	}

	d.dirty = false
	return err
}

// Close releases the staged package and temp file and clears the tracked
// parts. Safe to call multiple times; release failures are logged by the
// staging layer, never returned.
func (d *Document) Close() {
	if d.closed {
		return
	}
	d.closed = true
	d.parts = nil
	d.staged.Dispose()
}

func errDocumentClosed() error {
	return model.NewError(model.KindInvalidArgument, "document is closed")
}
