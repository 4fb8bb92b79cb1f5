package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/notework-lab/notework/pkg/domain/interfaces"
	"github.com/notework-lab/notework/pkg/repository/local"
	"github.com/notework-lab/notework/pkg/repository/memory"
	"github.com/notework-lab/notework/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Repository holds CLI flags for the store backend configuration
type Repository struct {
	backend string
	dataDir string
}

// Flags returns CLI flags for store configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "store-backend",
			Usage:       "Store backend type (local or memory)",
			Value:       "local",
			Sources:     cli.EnvVars("NOTEWORK_STORE_BACKEND"),
			Destination: &r.backend,
		},
		&cli.StringFlag{
			Name:        "store-dir",
			Usage:       "Data directory for the local store backend",
			Value:       ".notework",
			Sources:     cli.EnvVars("NOTEWORK_STORE_DIR"),
			Destination: &r.dataDir,
		},
	}
}

// Backend returns the configured backend type
func (r *Repository) Backend() string {
	return r.backend
}

// Configure initializes the store for the configured backend. The caller is
// responsible for calling Close() on the returned store.
func (r *Repository) Configure() (interfaces.Store, error) {
	switch r.backend {
	case "local":
		store, err := local.New(r.dataDir)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize local store")
		}
		logging.Default().Info("Using local file store", "dir", r.dataDir)
		return store, nil

	case "memory":
		logging.Default().Info("Using in-memory store (state is lost on exit)")
		return memory.New(), nil

	default:
		return nil, goerr.New("unknown store backend", goerr.V("backend", r.backend))
	}
}
