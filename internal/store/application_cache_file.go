package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/GregMSThompson/ngo-dashboard/internal/errs"
	"github.com/GregMSThompson/ngo-dashboard/internal/models"
)

// ApplicationsSlot is the name of the persisted grant-application slot.
const ApplicationsSlot = "grant_applications"

// fileApplicationCache keeps the application slot as a JSON array on disk.
// Writes go to a temp file that is renamed over the slot.
type fileApplicationCache struct {
	mu   sync.Mutex
	path string
}

func NewFileApplicationCache(dir string) (*fileApplicationCache, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("store: cache directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errs.NewDatabaseError("init", "failed to create cache directory", err)
	}
	return &fileApplicationCache{path: filepath.Join(dir, ApplicationsSlot+".json")}, nil
}

func (c *fileApplicationCache) Load(ctx context.Context) ([]models.GrantApplication, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.read()
}

func (c *fileApplicationCache) Append(ctx context.Context, app models.GrantApplication) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	apps, err := c.read()
	if err != nil {
		return err
	}
	return c.write(append(apps, app))
}

// Replace overwrites the cached copy with the same ID. It reports false when
// no copy is cached.
func (c *fileApplicationCache) Replace(ctx context.Context, app models.GrantApplication) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	apps, err := c.read()
	if err != nil {
		return false, err
	}
	for i := range apps {
		if apps[i].ID == app.ID {
			apps[i] = app
			return true, c.write(apps)
		}
	}
	return false, nil
}

func (c *fileApplicationCache) read() ([]models.GrantApplication, error) {
	raw, err := os.ReadFile(c.path)
	if errors.Is(err, os.ErrNotExist) {
		return []models.GrantApplication{}, nil
	}
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to read application cache", err)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return []models.GrantApplication{}, nil
	}

	var apps []models.GrantApplication
	if err := json.Unmarshal(raw, &apps); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse application cache", err)
	}
	if apps == nil {
		apps = []models.GrantApplication{}
	}
	return apps, nil
}

func (c *fileApplicationCache) write(apps []models.GrantApplication) error {
	raw, err := json.MarshalIndent(apps, "", "  ")
	if err != nil {
		return errs.NewDatabaseError("write", "failed to encode application cache", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(c.path), ApplicationsSlot+"-*.tmp")
	if err != nil {
		return errs.NewDatabaseError("write", "failed to create temp cache file", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return errs.NewDatabaseError("write", "failed to write application cache", err)
	}
	if err := tmp.Close(); err != nil {
		return errs.NewDatabaseError("write", "failed to write application cache", err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		return errs.NewDatabaseError("write", "failed to replace application cache", err)
	}
	return nil
}
