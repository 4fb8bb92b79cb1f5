package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/notework-lab/notework/pkg/cli/config"
	"github.com/notework-lab/notework/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var templateCfg config.Templates

	return &cli.Command{
		Name:  "validate",
		Usage: "Validate a template preset file",
		Flags: templateCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			templates, err := templateCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "template validation failed")
			}

			for _, tpl := range templates {
				logging.Default().Info("template ok",
					"id", tpl.ID,
					"name", tpl.Name,
				)
			}
			logging.Default().Info("all templates valid", "count", len(templates))
			return nil
		},
	}
}
