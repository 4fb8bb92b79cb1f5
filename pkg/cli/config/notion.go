package config

import (
	"github.com/notework-lab/notework/pkg/service/notion"
	"github.com/notework-lab/notework/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Notion holds CLI flags for the Notion integration
type Notion struct {
	token string
}

// Flags returns CLI flags for Notion configuration
func (n *Notion) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "notion-api-token",
			Usage:       "Notion API token for loading Notion pages as sources",
			Sources:     cli.EnvVars("NOTEWORK_NOTION_API_TOKEN"),
			Destination: &n.token,
		},
	}
}

// Configure creates a Notion service when a token is provided. Returns nil
// when unconfigured; Notion URLs cannot be loaded in that case.
func (n *Notion) Configure() (notion.Service, error) {
	if n.token == "" {
		logging.Default().Info("Notion API token not configured, Notion sources are disabled")
		return nil, nil
	}
	return notion.New(n.token)
}
