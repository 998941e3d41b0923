package office

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/clbispo/office-ribbonx-editor/internal/model"
)

//go:embed templates.yaml
var templatesYAML []byte

// templateManifest maps the embedded templates.yaml file.
type templateManifest struct {
	Templates map[string]string `yaml:"templates"`
}

var (
	templatesOnce sync.Once
	templates     map[string]string
	templatesErr  error
)

// TemplateFor returns the starter custom UI document for the given kind,
// loaded from the embedded template manifest. Every kind in the closed set
// has a template; a missing entry means the manifest was edited
// inconsistently and surfaces as an error rather than a panic.
func TemplateFor(kind model.PartKind) (string, error) {
	templatesOnce.Do(func() {
		var manifest templateManifest
		if err := yaml.Unmarshal(templatesYAML, &manifest); err != nil {
			templatesErr = fmt.Errorf("failed to parse embedded template manifest: %w", err)
			return
		}
		templates = manifest.Templates
	})
	if templatesErr != nil {
		return "", templatesErr
	}

	tmpl, ok := templates[kind.String()]
	if !ok {
		return "", fmt.Errorf("no starter template for part kind %q", kind)
	}
	return tmpl, nil
}
