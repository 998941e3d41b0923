package opc

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/clbispo/office-ribbonx-editor/internal/model"
)

// Zip entry names of the two bookkeeping parts. These are fixed by OPC.
const (
	contentTypesEntry = "[Content_Types].xml"
	rootRelsEntry     = "_rels/.rels"
)

// Package is an open OPC container backed by a file on disk.
//
// All entries are held in memory; Flush rewrites the backing file from
// scratch. A Package is exclusively owned by one document instance and is
// not safe for concurrent use.
type Package struct {
	// path is the backing file the package was opened from and is
	// flushed back to.
	path string

	// order preserves the original zip entry order so a flushed archive
	// diffs cleanly against its source. New parts are appended.
	order []string

	// entries holds the raw bytes of every zip entry except the two
	// bookkeeping parts, keyed by zip entry name (no leading slash).
	entries map[string][]byte

	// contentTypes and rels are the parsed bookkeeping parts. They are
	// re-serialized on every flush.
	contentTypes ContentTypes
	rels         []Relationship

	// nextRelID is the numeric suffix for the next allocated "rId<n>".
	nextRelID int

	closed bool
}

// Open reads the zip archive at path and parses its OPC bookkeeping parts.
// It returns a package-open error if the bytes are not a valid zip archive
// or the mandatory [Content_Types].xml part is missing.
func Open(filePath string) (*Package, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, model.WrapError(model.KindIO, fmt.Sprintf("failed to read package file %s", filePath), err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, model.WrapError(model.KindPackageOpen, fmt.Sprintf("%s is not a valid OOXML package", filePath), err)
	}

	pkg := &Package{
		path:      filePath,
		entries:   make(map[string][]byte),
		nextRelID: 1,
	}

	for _, f := range zr.File {
		// Directory entries carry no content and are not parts.
		if strings.HasSuffix(f.Name, "/") {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, model.WrapError(model.KindPackageOpen, fmt.Sprintf("failed to open entry %s", f.Name), err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, model.WrapError(model.KindPackageOpen, fmt.Sprintf("failed to read entry %s", f.Name), err)
		}

		pkg.order = append(pkg.order, f.Name)

		switch f.Name {
		case contentTypesEntry:
			if err := xml.Unmarshal(content, &pkg.contentTypes); err != nil {
				return nil, model.WrapError(model.KindPackageOpen, "failed to parse [Content_Types].xml", err)
			}
		case rootRelsEntry:
			var rels Relationships
			if err := xml.Unmarshal(content, &rels); err != nil {
				return nil, model.WrapError(model.KindPackageOpen, "failed to parse _rels/.rels", err)
			}
			pkg.rels = rels.Relationship
		default:
			pkg.entries[f.Name] = content
		}
	}

	if pkg.contentTypes.XMLName.Local == "" {
		return nil, model.NewError(model.KindPackageOpen, fmt.Sprintf("%s has no [Content_Types].xml part", filePath))
	}
	if pkg.contentTypes.Namespace == "" {
		pkg.contentTypes.Namespace = contentTypesNamespace
	}

	// Seed the relationship ID allocator past every existing rId<n>.
	for _, rel := range pkg.rels {
		if n, ok := relIDNumber(rel.ID); ok && n >= pkg.nextRelID {
			pkg.nextRelID = n + 1
		}
	}

	return pkg, nil
}

// zipName converts an absolute part URI to its zip entry name.
func zipName(uri string) string {
	return strings.TrimPrefix(uri, "/")
}

// PartExists reports whether a part exists at the given absolute URI.
func (p *Package) PartExists(uri string) bool {
	_, ok := p.entries[zipName(uri)]
	return ok
}

// Part returns the part at the given absolute URI, or a part-not-found
// error if the package has no such entry.
func (p *Package) Part(uri string) (*Part, error) {
	if !p.PartExists(uri) {
		return nil, model.NewError(model.KindPartNotFound, fmt.Sprintf("package has no part %s", uri))
	}
	return &Part{pkg: p, uri: uri}, nil
}

// CreatePart adds a new empty part at the given absolute URI and registers
// its content type. Creating a part at a URI that already exists is a
// caller error.
func (p *Package) CreatePart(uri, contentType string) (*Part, error) {
	if p.closed {
		return nil, errClosed()
	}
	name := zipName(uri)
	if _, ok := p.entries[name]; ok {
		return nil, model.NewError(model.KindInvalidArgument, fmt.Sprintf("part %s already exists", uri))
	}

	p.entries[name] = []byte{}
	p.order = append(p.order, name)
	p.registerContentType(uri, contentType)

	return &Part{pkg: p, uri: uri}, nil
}

// DeletePart removes the part at the given absolute URI together with its
// content type override, if one exists.
func (p *Package) DeletePart(uri string) error {
	if p.closed {
		return errClosed()
	}
	name := zipName(uri)
	if _, ok := p.entries[name]; !ok {
		return model.NewError(model.KindPartNotFound, fmt.Sprintf("package has no part %s", uri))
	}

	delete(p.entries, name)
	for i, n := range p.order {
		if n == name {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	for i, o := range p.contentTypes.Overrides {
		if o.PartName == uri {
			p.contentTypes.Overrides = append(p.contentTypes.Overrides[:i], p.contentTypes.Overrides[i+1:]...)
			break
		}
	}
	return nil
}

// registerContentType makes sure the part at uri resolves to contentType:
// if a Default entry for the extension already yields it, nothing is added,
// otherwise an Override entry is written for the part name. This mirrors
// how System.IO.Packaging registers part types.
func (p *Package) registerContentType(uri, contentType string) {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(uri), "."))
	for _, def := range p.contentTypes.Defaults {
		if strings.EqualFold(def.Extension, ext) && def.ContentType == contentType {
			return
		}
	}
	for i, o := range p.contentTypes.Overrides {
		if o.PartName == uri {
			p.contentTypes.Overrides[i].ContentType = contentType
			return
		}
	}
	p.contentTypes.Overrides = append(p.contentTypes.Overrides, ContentTypeOverride{
		PartName:    uri,
		ContentType: contentType,
	})
}

// ContentTypeOf returns the effective content type of the part at uri,
// resolving Override entries before Default entries.
func (p *Package) ContentTypeOf(uri string) string {
	for _, o := range p.contentTypes.Overrides {
		if o.PartName == uri {
			return o.ContentType
		}
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(uri), "."))
	for _, def := range p.contentTypes.Defaults {
		if strings.EqualFold(def.Extension, ext) {
			return def.ContentType
		}
	}
	return ""
}

// RelationshipsByType returns the package-root relationships with the given
// type URI, in document order.
func (p *Package) RelationshipsByType(relType string) []Relationship {
	var out []Relationship
	for _, rel := range p.rels {
		if rel.Type == relType {
			out = append(out, rel)
		}
	}
	return out
}

// RelationshipsTargeting returns the package-root relationships whose
// resolved target is the given absolute part URI.
func (p *Package) RelationshipsTargeting(uri string) []Relationship {
	var out []Relationship
	for _, rel := range p.rels {
		if target, ok := p.ResolveTarget(rel); ok && target == uri {
			out = append(out, rel)
		}
	}
	return out
}

// CreateRelationship adds a package-root relationship of the given type
// pointing at the absolute part URI, and returns it with a freshly
// allocated "rId<n>" identifier.
func (p *Package) CreateRelationship(targetURI, relType string) (Relationship, error) {
	if p.closed {
		return Relationship{}, errClosed()
	}

	rel := Relationship{
		ID:     p.allocateRelID(),
		Type:   relType,
		Target: zipName(targetURI),
	}
	p.rels = append(p.rels, rel)
	return rel, nil
}

// DeleteRelationship removes the package-root relationship with the given
// identifier. Deleting an unknown identifier is a caller error.
func (p *Package) DeleteRelationship(id string) error {
	if p.closed {
		return errClosed()
	}
	for i, rel := range p.rels {
		if rel.ID == id {
			p.rels = append(p.rels[:i], p.rels[i+1:]...)
			return nil
		}
	}
	return model.NewError(model.KindPartNotFound, fmt.Sprintf("package has no relationship %s", id))
}

// ResolveTarget resolves a package-root relationship to an absolute part
// URI. Returns false for external relationships, whose targets are not
// parts of this package.
func (p *Package) ResolveTarget(rel Relationship) (string, bool) {
	if rel.IsExternal() {
		return "", false
	}
	// Package-root relationships resolve relative to the package root, so
	// the absolute URI is just the cleaned target with a leading slash.
	return path.Clean("/" + strings.TrimPrefix(rel.Target, "/")), true
}

// allocateRelID returns the next unused "rId<n>" identifier.
func (p *Package) allocateRelID() string {
	for {
		id := fmt.Sprintf("rId%d", p.nextRelID)
		p.nextRelID++
		if !p.relIDInUse(id) {
			return id
		}
	}
}

func (p *Package) relIDInUse(id string) bool {
	for _, rel := range p.rels {
		if rel.ID == id {
			return true
		}
	}
	return false
}

// relIDNumber extracts n from an "rId<n>" identifier. Non-conforming
// identifiers (allowed by OPC, unusual in practice) report false and are
// simply skipped by the allocator seeding.
func relIDNumber(id string) (int, bool) {
	rest, ok := strings.CutPrefix(id, "rId")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Flush rewrites the backing file from the in-memory state. Entry order is
// preserved from the source archive, with newly created parts appended.
func (p *Package) Flush() error {
	if p.closed {
		return errClosed()
	}

	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	wroteRels := false
	for _, name := range p.order {
		var content []byte
		switch name {
		case contentTypesEntry:
			data, err := marshalWithHeader(&p.contentTypes)
			if err != nil {
				return model.WrapError(model.KindIO, "failed to marshal [Content_Types].xml", err)
			}
			content = data
		case rootRelsEntry:
			data, err := p.marshalRootRels()
			if err != nil {
				return err
			}
			content = data
			wroteRels = true
		default:
			content = p.entries[name]
		}

		fw, err := w.Create(name)
		if err != nil {
			return model.WrapError(model.KindIO, fmt.Sprintf("failed to create entry %s", name), err)
		}
		if _, err := fw.Write(content); err != nil {
			return model.WrapError(model.KindIO, fmt.Sprintf("failed to write entry %s", name), err)
		}
	}

	// A package whose source had no root rels gains one only once
	// relationships exist.
	if !wroteRels && len(p.rels) > 0 {
		data, err := p.marshalRootRels()
		if err != nil {
			return err
		}
		fw, err := w.Create(rootRelsEntry)
		if err != nil {
			return model.WrapError(model.KindIO, "failed to create _rels/.rels", err)
		}
		if _, err := fw.Write(data); err != nil {
			return model.WrapError(model.KindIO, "failed to write _rels/.rels", err)
		}
		p.order = append(p.order, rootRelsEntry)
	}

	if err := w.Close(); err != nil {
		return model.WrapError(model.KindIO, "failed to finalize package archive", err)
	}
	if err := os.WriteFile(p.path, buf.Bytes(), 0o600); err != nil {
		return model.WrapError(model.KindIO, fmt.Sprintf("failed to write package file %s", p.path), err)
	}
	return nil
}

// Close flushes the package and releases it. Closing an already-closed
// package is a no-op.
func (p *Package) Close() error {
	if p.closed {
		return nil
	}
	err := p.Flush()
	p.closed = true
	return err
}

func (p *Package) marshalRootRels() ([]byte, error) {
	data, err := marshalWithHeader(&Relationships{
		Namespace:    relationshipsNamespace,
		Relationship: p.rels,
	})
	if err != nil {
		return nil, model.WrapError(model.KindIO, "failed to marshal _rels/.rels", err)
	}
	return data, nil
}

// marshalWithHeader serializes v compactly and prepends the XML declaration
// Office expects (standalone="yes").
func marshalWithHeader(v any) ([]byte, error) {
	body, err := xml.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append([]byte(xmlHeader), body...), nil
}

func errClosed() error {
	return model.NewError(model.KindIO, "package is closed")
}
