package model

import (
	"fmt"
	"strings"
)

// ApplicationKind represents the Office application family a document
// belongs to, derived from its file extension. It determines nothing about
// how the package is edited — all families share the same custom UI wiring —
// but it is surfaced to the user and used for display purposes.
type ApplicationKind string

const (
	// AppWord covers Word documents and templates (.docx, .docm, .dotx, ...).
	AppWord ApplicationKind = "word"

	// AppExcel covers Excel workbooks and templates (.xlsx, .xlsm, .xltx, ...).
	AppExcel ApplicationKind = "excel"

	// AppPowerPoint covers PowerPoint presentations and templates
	// (.pptx, .pptm, .potx, ...).
	AppPowerPoint ApplicationKind = "powerpoint"

	// AppXML is the fallback for extensions that do not match any known
	// family. It is non-fatal: the file already opened as a valid package,
	// so an unrecognized extension only means we cannot name the owning
	// application.
	AppXML ApplicationKind = "xml"
)

// String returns the string representation of ApplicationKind.
// This method satisfies the fmt.Stringer interface, enabling
// human-readable output in CLI commands.
func (k ApplicationKind) String() string {
	return string(k)
}

// IsValid checks whether the ApplicationKind value is one of the
// predefined valid families.
func (k ApplicationKind) IsValid() bool {
	switch k {
	case AppWord, AppExcel, AppPowerPoint, AppXML:
		return true
	default:
		return false
	}
}

// ClassifyExtension maps a file extension to an ApplicationKind using a
// case-insensitive prefix match:
//
//	do* → word (docx, docm, dotx, dotm, ...)
//	xl* → excel (xlsx, xlsm, xltx, xlam, ...)
//	pp* → powerpoint (pptx, pptm, potx, ppam, ...)
//
// Anything else (including an empty extension) yields AppXML. A leading
// dot is accepted and stripped, so both "xlsm" and ".xlsm" work.
func ClassifyExtension(ext string) ApplicationKind {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))

	switch {
	case strings.HasPrefix(ext, "do"):
		return AppWord
	case strings.HasPrefix(ext, "xl"):
		return AppExcel
	case strings.HasPrefix(ext, "pp"):
		return AppPowerPoint
	default:
		return AppXML
	}
}

// PartKind identifies one of the three custom UI part kinds an Office
// document can carry. The set is closed: there is no mechanism to register
// additional kinds, because the part paths and relationship type URIs are
// wire-format constants fixed by the Office applications.
type PartKind string

const (
	// PartQAT is the Quick Access Toolbar customization part.
	PartQAT PartKind = "qat"

	// PartRibbon12 is the Office 2007 ribbon customization part.
	PartRibbon12 PartKind = "ribbon12"

	// PartRibbon14 is the Office 2010+ ribbon customization part.
	PartRibbon14 PartKind = "ribbon14"
)

// AllPartKinds lists every PartKind in scan order. Document initialization
// iterates this slice, so its order determines the order of discovered parts.
var AllPartKinds = []PartKind{PartRibbon12, PartRibbon14, PartQAT}

// String returns the string representation of PartKind.
func (k PartKind) String() string {
	return string(k)
}

// IsValid checks whether the PartKind value is one of the predefined kinds.
func (k PartKind) IsValid() bool {
	switch k {
	case PartQAT, PartRibbon12, PartRibbon14:
		return true
	default:
		return false
	}
}

// IsRibbon returns true for the two ribbon format generations. The QAT part
// alone does not count as ribbon customization (see Document.HasCustomUI).
func (k PartKind) IsRibbon() bool {
	return k == PartRibbon12 || k == PartRibbon14
}

// ParsePartKind converts a string to a PartKind. It accepts a few common
// aliases ("ribbon" means the modern ribbon14 format). Returns an error if
// the string does not match any valid kind.
func ParsePartKind(s string) (PartKind, error) {
	switch strings.ToLower(s) {
	case "qat":
		return PartQAT, nil
	case "ribbon12", "customui":
		return PartRibbon12, nil
	case "ribbon14", "ribbon", "customui14":
		return PartRibbon14, nil
	default:
		return "", fmt.Errorf("invalid part kind: %q (valid: qat, ribbon12, ribbon14)", s)
	}
}

// PartWiring is the fixed (part path, relationship type URI) pair for one
// PartKind. Both values are wire-format constants and must match the Office
// applications exactly for the customization to be picked up.
type PartWiring struct {
	// Path is the absolute part URI inside the package, e.g.
	// "/customUI/customUI14.xml".
	Path string

	// RelationshipType is the relationship type URI linking the package
	// root to the part.
	RelationshipType string
}

// Relationship type URIs for the three custom UI part kinds. These are
// defined by Microsoft and shared across Word, Excel, and PowerPoint.
const (
	RelTypeQAT      = "http://schemas.microsoft.com/office/2006/relationships/ui/customization"
	RelTypeRibbon12 = "http://schemas.microsoft.com/office/2006/relationships/ui/extensibility"
	RelTypeRibbon14 = "http://schemas.microsoft.com/office/2007/relationships/ui/extensibility"
)

// partWirings is the fixed wiring table the Office applications define.
// It is not configurable.
var partWirings = map[PartKind]PartWiring{
	PartQAT:      {Path: "/customUI/qat.xml", RelationshipType: RelTypeQAT},
	PartRibbon12: {Path: "/customUI/customUI.xml", RelationshipType: RelTypeRibbon12},
	PartRibbon14: {Path: "/customUI/customUI14.xml", RelationshipType: RelTypeRibbon14},
}

// Wiring returns the fixed part path and relationship type URI for the kind.
//
// Calling Wiring on a PartKind outside the closed set is a programmer error,
// not a recoverable runtime condition, so it panics rather than returning an
// error value.
func (k PartKind) Wiring() PartWiring {
	w, ok := partWirings[k]
	if !ok {
		panic(fmt.Sprintf("model: undefined PartKind %q", string(k)))
	}
	return w
}
