package office

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clbispo/office-ribbonx-editor/internal/model"
)

// TestTemplateFor verifies every kind in the closed set has a starter
// template carrying the namespace its generation requires.
func TestTemplateFor(t *testing.T) {
	tests := []struct {
		kind      model.PartKind
		namespace string
	}{
		{model.PartRibbon12, "http://schemas.microsoft.com/office/2006/01/customui"},
		{model.PartRibbon14, "http://schemas.microsoft.com/office/2009/07/customui"},
		{model.PartQAT, "http://schemas.microsoft.com/office/2006/01/customui"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			tmpl, err := TemplateFor(tt.kind)
			require.NoError(t, err)
			assert.NotEmpty(t, tmpl)
			assert.Contains(t, tmpl, tt.namespace)
		})
	}
}

// TestTemplateFor_UnknownKind verifies the error path for a kind outside
// the manifest.
func TestTemplateFor_UnknownKind(t *testing.T) {
	_, err := TemplateFor(model.PartKind("toolbar"))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "toolbar"))
}

// TestTemplate_UsableAsPartContent verifies a starter template round-trips
// through a real document.
func TestTemplate_UsableAsPartContent(t *testing.T) {
	tmpl, err := TemplateFor(model.PartRibbon14)
	require.NoError(t, err)

	path := writeDocument(t, "book.xlsm", plainEntries())
	doc, err := OpenDocument(path)
	require.NoError(t, err)
	defer doc.Close()

	require.NoError(t, doc.SaveCustomPart(model.PartRibbon14, tmpl, true))
	require.NoError(t, doc.Save("", true))

	part := doc.RetrieveCustomPart(model.PartRibbon14)
	require.NotNil(t, part)
	content, err := part.Content()
	require.NoError(t, err)
	assert.Equal(t, tmpl, content)
}
