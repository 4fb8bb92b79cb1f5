package config

import (
	_ "embed"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/notework-lab/notework/pkg/domain/model"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

//go:embed templates/default.toml
var defaultTemplates []byte

// Templates holds CLI flags for the analysis template presets
type Templates struct {
	path string
}

// NewTemplates creates a Templates config pinned to a preset file path
func NewTemplates(path string) *Templates {
	return &Templates{path: path}
}

// Flags returns CLI flags for template configuration
func (t *Templates) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "templates",
			Usage:       "Path to a TOML file of analysis template presets (built-in presets when empty)",
			Sources:     cli.EnvVars("NOTEWORK_TEMPLATES"),
			Destination: &t.path,
		},
	}
}

// Path returns the configured preset file path, empty for built-ins
func (t *Templates) Path() string {
	return t.path
}

// Configure loads and validates the template presets
func (t *Templates) Configure() ([]*model.Template, error) {
	data := defaultTemplates
	if t.path != "" {
		loaded, err := os.ReadFile(t.path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read template file", goerr.V("path", t.path))
		}
		data = loaded
	}

	return parseTemplates(data)
}

func parseTemplates(data []byte) ([]*model.Template, error) {
	var doc struct {
		Templates []*model.Template `toml:"template"`
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, goerr.Wrap(err, "failed to parse template TOML")
	}

	seen := map[model.TemplateID]struct{}{}
	for _, tpl := range doc.Templates {
		if err := tpl.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid template")
		}
		if _, ok := seen[tpl.ID]; ok {
			return nil, goerr.New("duplicate template ID", goerr.V("id", tpl.ID))
		}
		seen[tpl.ID] = struct{}{}
	}

	return doc.Templates, nil
}
