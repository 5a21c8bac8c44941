package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/kdimtricp/acholiflixx/internal/catalog"
	"github.com/kdimtricp/acholiflixx/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrContentNotFound wraps catalog.ErrNotFound so the provider can tell a
// missing row from a query failure.
var ErrContentNotFound = fmt.Errorf("content_items: %w", catalog.ErrNotFound)

// ContentRepository serves the catalog from the content_items table.
type ContentRepository struct {
	db *DB
}

func NewContentRepository(db *DB) *ContentRepository {
	return &ContentRepository{db: db}
}

// Items returns every row in display position order.
func (r *ContentRepository) Items(ctx context.Context) ([]models.ContentItem, error) {
	var items []models.ContentItem
	result := r.db.GORM().WithContext(ctx).Order("position ASC").Find(&items)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list content: %w", result.Error)
	}
	return items, nil
}

// Get fetches one row by id for the watch page.
func (r *ContentRepository) Get(ctx context.Context, id string) (*models.ContentItem, error) {
	var item models.ContentItem
	result := r.db.GORM().WithContext(ctx).First(&item, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, fmt.Errorf("failed to get content: %w", result.Error)
	}
	return &item, nil
}

// Seed upserts items by id, so reseeding refreshes existing rows.
func (r *ContentRepository) Seed(ctx context.Context, items []models.ContentItem) error {
	if len(items) == 0 {
		return nil
	}
	result := r.db.GORM().WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&items)
	if result.Error != nil {
		return fmt.Errorf("failed to seed content: %w", result.Error)
	}
	return nil
}

func (r *ContentRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GORM().WithContext(ctx).Model(&models.ContentItem{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count content: %w", err)
	}
	return n, nil
}
