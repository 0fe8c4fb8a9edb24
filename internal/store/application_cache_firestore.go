package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/ngo-dashboard/internal/errs"
	"github.com/GregMSThompson/ngo-dashboard/internal/models"
)

// slotDoc is the stored shape of a cache slot document.
type slotDoc struct {
	Applications []models.GrantApplication `firestore:"applications"`
	UpdatedAt    time.Time                 `firestore:"updatedAt"`
}

// firestoreApplicationCache keeps the application slot in a single Firestore
// document so that every instance of the service sees the same fallback set.
type firestoreApplicationCache struct {
	client *firestore.Client
}

func NewFirestoreApplicationCache(client *firestore.Client) *firestoreApplicationCache {
	return &firestoreApplicationCache{client: client}
}

func (s *firestoreApplicationCache) doc() *firestore.DocumentRef {
	return s.client.Collection("cache_slots").Doc(ApplicationsSlot)
}

func (s *firestoreApplicationCache) Load(ctx context.Context) ([]models.GrantApplication, error) {
	snap, err := s.doc().Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return []models.GrantApplication{}, nil
		}
		return nil, errs.NewDatabaseError("read", "failed to get application cache", err)
	}
	return decodeSlot(snap)
}

func (s *firestoreApplicationCache) Append(ctx context.Context, app models.GrantApplication) error {
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		apps, err := s.loadTx(tx)
		if err != nil {
			return err
		}
		return tx.Set(s.doc(), slotDoc{Applications: append(apps, app), UpdatedAt: time.Now()})
	})
	if err != nil {
		return errs.NewDatabaseError("update", "failed to append to application cache", err)
	}
	return nil
}

func (s *firestoreApplicationCache) Replace(ctx context.Context, app models.GrantApplication) (bool, error) {
	var replaced bool
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		// transactions may retry; reset per attempt
		replaced = false
		apps, err := s.loadTx(tx)
		if err != nil {
			return err
		}
		for i := range apps {
			if apps[i].ID == app.ID {
				apps[i] = app
				replaced = true
				break
			}
		}
		if !replaced {
			return nil
		}
		return tx.Set(s.doc(), slotDoc{Applications: apps, UpdatedAt: time.Now()})
	})
	if err != nil {
		return false, errs.NewDatabaseError("update", "failed to replace cached application", err)
	}
	return replaced, nil
}

func (s *firestoreApplicationCache) loadTx(tx *firestore.Transaction) ([]models.GrantApplication, error) {
	snap, err := tx.Get(s.doc())
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return []models.GrantApplication{}, nil
		}
		return nil, err
	}
	return decodeSlot(snap)
}

func decodeSlot(snap *firestore.DocumentSnapshot) ([]models.GrantApplication, error) {
	var slot slotDoc
	if err := snap.DataTo(&slot); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse application cache", err)
	}
	if slot.Applications == nil {
		return []models.GrantApplication{}, nil
	}
	return slot.Applications, nil
}
