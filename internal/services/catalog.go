package services

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/GregMSThompson/ngo-dashboard/internal/dto"
	"github.com/GregMSThompson/ngo-dashboard/internal/errs"
	"github.com/GregMSThompson/ngo-dashboard/internal/models"
)

//go:embed catalog/grants.yaml
var defaultCatalog []byte

type catalogService struct {
	grants []models.Grant
}

// NewCatalogService loads the built-in grant catalog.
func NewCatalogService() (*catalogService, error) {
	return NewCatalogServiceFromYAML(defaultCatalog)
}

func NewCatalogServiceFromYAML(raw []byte) (*catalogService, error) {
	var grants []models.Grant
	if err := yaml.Unmarshal(raw, &grants); err != nil {
		return nil, fmt.Errorf("catalog: decode grants: %w", err)
	}
	seen := make(map[string]struct{}, len(grants))
	for _, g := range grants {
		if g.ID == "" {
			return nil, fmt.Errorf("catalog: grant %q has no id", g.Title)
		}
		if _, dup := seen[g.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate grant id %q", g.ID)
		}
		seen[g.ID] = struct{}{}
	}
	return &catalogService{grants: grants}, nil
}

// List returns the grants matching every set field of f, in catalog order.
func (s *catalogService) List(f dto.GrantFilter) []models.Grant {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]models.Grant, 0, len(s.grants))
	for _, g := range s.grants {
		if search != "" && !strings.Contains(strings.ToLower(g.Title), search) {
			continue
		}
		if f.Category != "" && !strings.EqualFold(g.Category, f.Category) {
			continue
		}
		if f.MinAmount > 0 && g.Amount < f.MinAmount {
			continue
		}
		if f.MaxAmount > 0 && g.Amount > f.MaxAmount {
			continue
		}
		out = append(out, g)
	}
	return out
}

func (s *catalogService) Get(id string) (*models.Grant, error) {
	for _, g := range s.grants {
		if g.ID == id {
			return &g, nil
		}
	}
	return nil, errs.NewNotFoundError("grant not found")
}
