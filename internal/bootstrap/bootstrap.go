package bootstrap

import (
	"context"
	"errors"
	"log/slog"

	"cloud.google.com/go/firestore"
	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/ngo-dashboard/internal/client/ngoapi"
	"github.com/GregMSThompson/ngo-dashboard/internal/config"
	"github.com/GregMSThompson/ngo-dashboard/internal/models"
	"github.com/GregMSThompson/ngo-dashboard/internal/store"
	"github.com/GregMSThompson/ngo-dashboard/pkg/logger"
)

// ApplicationCache is the local grant-application slot selected by
// CACHE_BACKEND.
type ApplicationCache interface {
	Load(ctx context.Context) ([]models.GrantApplication, error)
	Append(ctx context.Context, app models.GrantApplication) error
	Replace(ctx context.Context, app models.GrantApplication) (bool, error)
}

type Bootstrap struct {
	Log       *slog.Logger
	Firestore *firestore.Client // nil unless the Firestore cache is selected
	Firebase  *auth.Client      // nil unless AUTH_ENABLED
	Backend   *ngoapi.Adapter
	Cache     ApplicationCache
}

func Run(cfg *config.Config) (*Bootstrap, error) {
	var err error
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.ForFormat(cfg.LogFormat))
	ctx := logger.ToContext(applicationCtx, bs.Log)

	switch cfg.CacheBackend {
	case config.CacheBackendFirestore:
		if cfg.ProjectID == "" {
			return bs, errors.New("PROJECTID is required for the firestore cache")
		}
		bs.Firestore, err = InitFirestore(ctx, cfg.ProjectID)
		if err != nil {
			return bs, err
		}
		bs.Cache = store.NewFirestoreApplicationCache(bs.Firestore)
	default:
		bs.Cache, err = store.NewFileApplicationCache(cfg.CacheDir)
		if err != nil {
			return bs, err
		}
	}

	if cfg.AuthEnabled {
		bs.Firebase, err = InitFirebase(ctx)
		if err != nil {
			return bs, err
		}
	}

	token, err := ResolveBackendToken(ctx, cfg)
	if err != nil {
		return bs, err
	}
	bs.Backend = ngoapi.NewAdapter(ngoapi.Options{
		BaseURL:   cfg.BackendBaseURL,
		Token:     token,
		Endpoints: cfg.Endpoints,
		Timeout:   cfg.BackendTimeout,
	})

	bs.Log.Info("bootstrap complete",
		"backend", cfg.BackendBaseURL,
		"cache", cfg.CacheBackend,
		"auth", cfg.AuthEnabled,
	)
	return bs, nil
}

func (bs *Bootstrap) Close() {
	if bs.Firestore != nil {
		if err := bs.Firestore.Close(); err != nil {
			bs.Log.Warn("firestore close failed", "error", err)
		}
	}
}
