package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/notework-lab/notework/pkg/cli/config"
	httpctrl "github.com/notework-lab/notework/pkg/controller/http"
	"github.com/notework-lab/notework/pkg/service/extract"
	"github.com/notework-lab/notework/pkg/service/llm"
	"github.com/notework-lab/notework/pkg/service/web"
	"github.com/notework-lab/notework/pkg/service/worker"
	"github.com/notework-lab/notework/pkg/usecase"
	"github.com/notework-lab/notework/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var autosaveInterval time.Duration
	var repoCfg config.Repository
	var llmCfg config.LLM
	var notionCfg config.Notion
	var templateCfg config.Templates

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       "127.0.0.1:8080",
			Sources:     cli.EnvVars("NOTEWORK_ADDR"),
			Destination: &addr,
		},
		&cli.DurationFlag{
			Name:        "autosave-interval",
			Usage:       "Interval between session autosaves",
			Value:       worker.DefaultAutosaveInterval,
			Sources:     cli.EnvVars("NOTEWORK_AUTOSAVE_INTERVAL"),
			Destination: &autosaveInterval,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, llmCfg.Flags()...)
	flags = append(flags, notionCfg.Flags()...)
	flags = append(flags, templateCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start the engine HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			store, err := repoCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to initialize store")
			}
			defer func() {
				if err := store.Close(); err != nil {
					logging.Default().Error("failed to close store", "error", err.Error())
				}
			}()

			templates, err := templateCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load templates")
			}

			clients, err := llmCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure AI backends")
			}
			invoker := llm.New(clients)
			logging.Default().Info("AI backends configured", "models", invoker.Models())

			ucOpts := []usecase.Option{
				usecase.WithInvoker(invoker),
				usecase.WithWebResolver(web.New()),
				usecase.WithExtractor(extract.New()),
				usecase.WithTemplates(templates),
			}

			notionSvc, err := notionCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to initialize notion service")
			}
			if notionSvc != nil {
				ucOpts = append(ucOpts,
					usecase.WithNotionResolver(notionSvc),
					usecase.WithNotionWriter(notionSvc),
				)
				logging.Default().Info("Notion service enabled")
			}

			uc := usecase.New(store, ucOpts...)
			uc.Init(ctx)

			autosave := worker.NewAutosaveWorker(uc, autosaveInterval)
			if err := autosave.Start(ctx); err != nil {
				return goerr.Wrap(err, "failed to start autosave worker")
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 10 * time.Second,
			}

			sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			eg, egCtx := errgroup.WithContext(sigCtx)

			eg.Go(func() error {
				logging.Default().Info("HTTP server starting", "addr", addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return goerr.Wrap(err, "HTTP server failed")
				}
				return nil
			})

			eg.Go(func() error {
				<-egCtx.Done()
				logging.Default().Info("Shutting down")

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					logging.Default().Error("HTTP server shutdown failed", "error", err.Error())
				}

				// Final flush runs inside Stop
				autosave.Stop(shutdownCtx)
				return nil
			})

			return eg.Wait()
		},
	}
}
