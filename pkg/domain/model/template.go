package model

import "github.com/m-mizutani/goerr/v2"

// TemplateID identifies an analysis template preset
type TemplateID string

// Template is a preset analysis: a prompt sent with the source content,
// with an icon and name prefixed to the resulting note body
type Template struct {
	ID     TemplateID `json:"id" toml:"id"`
	Name   string     `json:"name" toml:"name"`
	Icon   string     `json:"icon" toml:"icon"`
	Prompt string     `json:"prompt" toml:"prompt"`
}

// Validate checks that the template is usable
func (t *Template) Validate() error {
	if t.ID == "" {
		return goerr.New("template ID is required")
	}
	if t.Name == "" {
		return goerr.New("template name is required", goerr.V("id", t.ID))
	}
	if t.Prompt == "" {
		return goerr.New("template prompt is required", goerr.V("id", t.ID))
	}
	return nil
}
