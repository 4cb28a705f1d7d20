package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shegacafe/cafe-app/models"
	"gorm.io/gorm"
)

type MenuService struct {
	db *gorm.DB
}

func NewMenuService(db *gorm.DB) *MenuService {
	return &MenuService{db: db}
}

// ListMenu returns the menu ordered by id. A non-empty category narrows
// the result; unknown categories are a validation error.
func (s *MenuService) ListMenu(ctx context.Context, category string) ([]models.MenuItem, error) {
	q := s.db.WithContext(ctx).Order("id asc")
	if c := strings.TrimSpace(category); c != "" {
		cat := models.Category(c)
		if models.ParseCategory(c) != cat {
			return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, category)
		}
		q = q.Where("category = ?", cat)
	}

	var items []models.MenuItem
	if err := q.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list menu: %w", err)
	}
	for i := range items {
		items[i].Category = models.ParseCategory(string(items[i].Category))
	}
	return items, nil
}
