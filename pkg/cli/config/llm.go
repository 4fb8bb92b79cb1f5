package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/claude"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/m-mizutani/gollem/llm/openai"
	"github.com/notework-lab/notework/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// LLM holds CLI flags for the AI model backends. A model with no credential
// simply stays unconfigured; the engine reports it as such.
type LLM struct {
	claudeAPIKey   string
	openaiAPIKey   string
	geminiProject  string
	geminiLocation string
}

// Flags returns CLI flags for LLM configuration
func (l *LLM) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "claude-api-key",
			Usage:       "Anthropic API key for the Claude backend",
			Category:    "AI Models",
			Sources:     cli.EnvVars("NOTEWORK_CLAUDE_API_KEY", "ANTHROPIC_API_KEY"),
			Destination: &l.claudeAPIKey,
		},
		&cli.StringFlag{
			Name:        "openai-api-key",
			Usage:       "OpenAI API key for the OpenAI backend",
			Category:    "AI Models",
			Sources:     cli.EnvVars("NOTEWORK_OPENAI_API_KEY", "OPENAI_API_KEY"),
			Destination: &l.openaiAPIKey,
		},
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "Google Cloud project ID for the Gemini backend",
			Category:    "AI Models",
			Sources:     cli.EnvVars("NOTEWORK_GEMINI_PROJECT"),
			Destination: &l.geminiProject,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location for the Gemini backend",
			Category:    "AI Models",
			Value:       "us-central1",
			Sources:     cli.EnvVars("NOTEWORK_GEMINI_LOCATION"),
			Destination: &l.geminiLocation,
		},
	}
}

// LogAttrs returns log attributes showing which backends are configured
func (l *LLM) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.Bool("claude", l.claudeAPIKey != ""),
		slog.Bool("openai", l.openaiAPIKey != ""),
		slog.Bool("gemini", l.geminiProject != ""),
	}
}

// Configure creates a gollem client per configured backend. Backends
// without a credential are left out of the map.
func (l *LLM) Configure(ctx context.Context) (map[types.ModelID]gollem.LLMClient, error) {
	clients := map[types.ModelID]gollem.LLMClient{}

	if l.claudeAPIKey != "" {
		client, err := claude.New(ctx, l.claudeAPIKey)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create Claude client")
		}
		clients[types.ModelClaude] = client
	}

	if l.openaiAPIKey != "" {
		client, err := openai.New(ctx, l.openaiAPIKey)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create OpenAI client")
		}
		clients[types.ModelOpenAI] = client
	}

	if l.geminiProject != "" {
		client, err := gemini.New(ctx, l.geminiProject, l.geminiLocation)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create Gemini client")
		}
		clients[types.ModelGemini] = client
	}

	return clients, nil
}
