package service

import (
	"context"
	"sort"
	"strings"

	"github.com/aperture-dining/web-service/internal/apiclient"
	"github.com/aperture-dining/web-service/internal/models"
)

type MenuBackend interface {
	ListMenu(ctx context.Context, f apiclient.MenuFilter) ([]models.MenuItem, error)
	GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error)
}

type MenuService interface {
	List(ctx context.Context, category, search string) ([]models.MenuItem, error)
	Get(ctx context.Context, id string) (*models.MenuItem, error)
	Categories(ctx context.Context) ([]string, error)
}

type menuService struct {
	backend MenuBackend
}

func NewMenuService(backend MenuBackend) MenuService {
	return &menuService{backend: backend}
}

// List returns the items customers can order, filtered by category and a case-insensitive search.
func (s *menuService) List(ctx context.Context, category, search string) ([]models.MenuItem, error) {
	items, err := s.backend.ListMenu(ctx, apiclient.MenuFilter{AvailableOnly: true})
	if err != nil {
		return nil, err
	}
	out := make([]models.MenuItem, 0, len(items))
	for _, it := range items {
		if !it.Available {
			continue
		}
		if category != "" && !strings.EqualFold(it.Category, category) {
			continue
		}
		if !matchesSearch(search, it.Name, it.Description, it.Category) {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func (s *menuService) Get(ctx context.Context, id string) (*models.MenuItem, error) {
	return s.backend.GetMenuItem(ctx, id)
}

func (s *menuService) Categories(ctx context.Context) ([]string, error) {
	items, err := s.backend.ListMenu(ctx, apiclient.MenuFilter{AvailableOnly: true})
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	out := []string{}
	for _, it := range items {
		if it.Category == "" || seen[it.Category] {
			continue
		}
		seen[it.Category] = true
		out = append(out, it.Category)
	}
	sort.Strings(out)
	return out, nil
}
