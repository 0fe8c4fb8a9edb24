package services

import "github.com/GregMSThompson/ngo-dashboard/internal/models"

// MergeApplications combines the backend and local-cache views. Backend
// records come first, then local-only ones, each in their original order.
// The first record seen for an id wins, and a record whose idempotency key
// was already seen is treated as the same submission.
func MergeApplications(remote, local []models.GrantApplication) []models.GrantApplication {
	out := make([]models.GrantApplication, 0, len(remote)+len(local))
	seenIDs := make(map[string]struct{}, len(remote)+len(local))
	seenKeys := make(map[string]struct{})

	add := func(app models.GrantApplication) {
		if _, ok := seenIDs[app.ID]; ok {
			return
		}
		if app.IdempotencyKey != "" {
			if _, ok := seenKeys[app.IdempotencyKey]; ok {
				// later copies under this id are the same dropped submission
				seenIDs[app.ID] = struct{}{}
				return
			}
			seenKeys[app.IdempotencyKey] = struct{}{}
		}
		seenIDs[app.ID] = struct{}{}
		out = append(out, app)
	}

	for _, app := range remote {
		add(app)
	}
	for _, app := range local {
		add(app)
	}
	return out
}
