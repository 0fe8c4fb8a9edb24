package bootstrap

import (
	"context"
	"errors"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"

	"github.com/GregMSThompson/ngo-dashboard/internal/config"
	"github.com/GregMSThompson/ngo-dashboard/internal/store"
	"github.com/GregMSThompson/ngo-dashboard/pkg/logger"
)

// ResolveBackendToken returns BACKEND_TOKEN, or reads BACKEND_TOKEN_SECRET
// from Secret Manager when only the secret id is configured.
func ResolveBackendToken(ctx context.Context, cfg *config.Config) (string, error) {
	if cfg.BackendToken != "" || cfg.BackendTokenSecret == "" {
		return cfg.BackendToken, nil
	}
	if cfg.ProjectID == "" {
		return "", errors.New("PROJECTID is required to read BACKEND_TOKEN_SECRET")
	}

	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return "", err
	}
	defer client.Close()

	token, err := store.NewSecretsStore(client, cfg.ProjectID).Latest(ctx, cfg.BackendTokenSecret)
	if err != nil {
		return "", err
	}
	logger.FromContext(ctx).Debug("backend token loaded from secret manager", "secret", cfg.BackendTokenSecret)
	return token, nil
}
