package opc

import (
	"fmt"

	"github.com/clbispo/office-ribbonx-editor/internal/model"
)

// Part is a handle to one named part inside an open package. It holds no
// content itself — reads and writes go straight to the owning package, so
// a handle stays valid across content changes and reflects the latest
// state on every read.
type Part struct {
	pkg *Package
	uri string
}

// URI returns the absolute part URI, e.g. "/customUI/customUI14.xml".
func (p *Part) URI() string {
	return p.uri
}

// ContentType returns the part's effective content type.
func (p *Part) ContentType() string {
	return p.pkg.ContentTypeOf(p.uri)
}

// Content returns the part's current bytes. The returned slice is a copy;
// mutating it does not affect the package.
func (p *Part) Content() ([]byte, error) {
	if p.pkg.closed {
		return nil, errClosed()
	}
	data, ok := p.pkg.entries[zipName(p.uri)]
	if !ok {
		return nil, model.NewError(model.KindPartNotFound, fmt.Sprintf("package has no part %s", p.uri))
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// SetContent replaces the part's bytes entirely. Setting content on a part
// that was deleted from the package is a caller error.
func (p *Part) SetContent(data []byte) error {
	if p.pkg.closed {
		return errClosed()
	}
	name := zipName(p.uri)
	if _, ok := p.pkg.entries[name]; !ok {
		return model.NewError(model.KindPartNotFound, fmt.Sprintf("package has no part %s", p.uri))
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	p.pkg.entries[name] = stored
	return nil
}
