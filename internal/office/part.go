package office

import (
	"github.com/clbispo/office-ribbonx-editor/internal/model"
	"github.com/clbispo/office-ribbonx-editor/internal/opc"
)

// OfficePart is one tracked custom UI part: the package part itself plus
// the package-root relationship that links it. It references into the
// package owned by its Document; it does not own any lifetime of its own,
// and the wrapper is discarded whenever the document rescans after a save.
type OfficePart struct {
	kind           model.PartKind
	relationshipID string
	pkg            *opc.Package
	part           *opc.Part
}

// Kind returns the custom UI part kind.
func (p *OfficePart) Kind() model.PartKind {
	return p.kind
}

// RelationshipID returns the identifier of the package-root relationship
// linking this part.
func (p *OfficePart) RelationshipID() string {
	return p.relationshipID
}

// URI returns the absolute part URI inside the package.
func (p *OfficePart) URI() string {
	return p.part.URI()
}

// Content returns the part's current text. Reads go to the live part, not
// a cached snapshot, so repeated reads reflect the latest state.
func (p *OfficePart) Content() (string, error) {
	data, err := p.part.Content()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Save writes text as the part's content, fully replacing whatever was
// there. Dirty tracking is the owning document's job, not the part's —
// Document.SaveCustomPart marks the document dirty after delegating here.
func (p *OfficePart) Save(text string) error {
	return p.part.SetContent([]byte(text))
}

// Remove deletes the relationship identified by RelationshipID, then the
// underlying part if no other relationship still targets it.
//
// Calling Remove on a part that was already removed is a caller error and
// surfaces as a part-not-found error rather than being silently ignored.
func (p *OfficePart) Remove() error {
	if err := p.pkg.DeleteRelationship(p.relationshipID); err != nil {
		return err
	}
	if len(p.pkg.RelationshipsTargeting(p.part.URI())) == 0 {
		if err := p.pkg.DeletePart(p.part.URI()); err != nil {
			return err
		}
	}
	return nil
}
