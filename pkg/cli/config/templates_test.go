package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/notework-lab/notework/pkg/cli/config"
)

func TestBuiltinTemplates(t *testing.T) {
	var cfg config.Templates

	templates, err := cfg.Configure()
	gt.NoError(t, err).Required()
	gt.Bool(t, len(templates) > 0).True()

	for _, tpl := range templates {
		gt.NoError(t, tpl.Validate())
	}
}

func TestTemplateFileOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.toml")
	body := `
[[template]]
id = "custom"
name = "Custom Check"
icon = "🔎"
prompt = "Check the document."
`
	gt.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg := config.NewTemplates(path)
	templates, err := cfg.Configure()
	gt.NoError(t, err).Required()
	gt.Array(t, templates).Length(1)
	gt.Value(t, string(templates[0].ID)).Equal("custom")
}

func TestTemplateFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.toml")
	body := `
[[template]]
id = "broken"
name = ""
prompt = "no name"
`
	gt.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg := config.NewTemplates(path)
	_, err := cfg.Configure()
	gt.Error(t, err)
}

func TestTemplateFileDuplicateID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.toml")
	body := `
[[template]]
id = "twice"
name = "First"
prompt = "p"

[[template]]
id = "twice"
name = "Second"
prompt = "p"
`
	gt.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg := config.NewTemplates(path)
	_, err := cfg.Configure()
	gt.Error(t, err)
}
