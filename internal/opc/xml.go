package opc

import "encoding/xml"

// OPC namespace URIs for the two bookkeeping parts every package carries.
const (
	relationshipsNamespace = "http://schemas.openxmlformats.org/package/2006/relationships"
	contentTypesNamespace  = "http://schemas.openxmlformats.org/package/2006/content-types"
)

// xmlHeader is the declaration Office writes (and expects) at the top of
// every XML part, including standalone="yes".
const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// Relationship is a typed, identified link from the package root to a
// target part. Target is stored the way OPC serializes it: relative to the
// relationship source, without a leading slash.
type Relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

// IsExternal reports whether the relationship points outside the package
// (e.g. a hyperlink). External targets are never resolvable to parts.
func (r Relationship) IsExternal() bool {
	return r.TargetMode == "External"
}

// Relationships maps the root element of a .rels part.
type Relationships struct {
	XMLName      xml.Name       `xml:"Relationships"`
	Namespace    string         `xml:"xmlns,attr"`
	Relationship []Relationship `xml:"Relationship"`
}

// ContentTypes maps the Types element of [Content_Types].xml. Each part in
// the package gets its MIME type either from a Default entry keyed by file
// extension or from an Override entry keyed by part name.
type ContentTypes struct {
	XMLName   xml.Name              `xml:"Types"`
	Namespace string                `xml:"xmlns,attr"`
	Defaults  []ContentTypeDefault  `xml:"Default"`
	Overrides []ContentTypeOverride `xml:"Override"`
}

// ContentTypeDefault maps the Default element: all parts with the given
// extension share this content type unless overridden.
type ContentTypeDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// ContentTypeOverride maps the Override element: the named part gets this
// content type regardless of its extension.
type ContentTypeOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}
