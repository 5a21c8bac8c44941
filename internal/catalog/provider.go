package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/kdimtricp/acholiflixx/internal/models"
)

var ErrNotFound = errors.New("content not found")

// Source supplies the raw catalog. The static sample data and the database
// repository both implement it.
type Source interface {
	Items(ctx context.Context) ([]models.ContentItem, error)
}

// ItemGetter is implemented by sources that can fetch a single item without
// loading the whole catalog. A miss must wrap ErrNotFound.
type ItemGetter interface {
	Get(ctx context.Context, id string) (*models.ContentItem, error)
}

type StaticSource struct {
	items []models.ContentItem
}

func NewStaticSource() *StaticSource {
	return &StaticSource{items: SampleItems()}
}

func (s *StaticSource) Items(ctx context.Context) ([]models.ContentItem, error) {
	out := make([]models.ContentItem, len(s.items))
	copy(out, s.items)
	return out, nil
}

// Provider answers the catalog questions the pages ask.
type Provider struct {
	source Source
	logger hclog.Logger
}

func NewProvider(source Source, logger hclog.Logger) *Provider {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Provider{source: source, logger: logger}
}

func (p *Provider) items(ctx context.Context) ([]models.ContentItem, error) {
	items, err := p.source.Items(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return items, nil
}

func (p *Provider) Featured(ctx context.Context) (models.ContentItem, error) {
	items, err := p.items(ctx)
	if err != nil {
		return models.ContentItem{}, err
	}
	for _, item := range items {
		if item.Row == RowFeatured {
			return item, nil
		}
	}
	return models.ContentItem{}, ErrNotFound
}

// Row returns the items of one home page row in display order.
func (p *Provider) Row(ctx context.Context, row string) ([]models.ContentItem, error) {
	items, err := p.items(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.ContentItem
	for _, item := range items {
		if item.Row == row {
			out = append(out, item)
		}
	}
	return out, nil
}

// Browsable is every item except the featured hero.
func (p *Provider) Browsable(ctx context.Context) ([]models.ContentItem, error) {
	items, err := p.items(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.ContentItem, 0, len(items))
	for _, item := range items {
		if item.Row != RowFeatured {
			out = append(out, item)
		}
	}
	return out, nil
}

func (p *Provider) Browse(ctx context.Context, category string, key SortKey) ([]models.ContentItem, error) {
	items, err := p.Browsable(ctx)
	if err != nil {
		return nil, err
	}
	return Apply(items, category, key), nil
}

// Categories returns the browse filters with their item counts.
func (p *Provider) Categories(ctx context.Context) ([]models.Category, error) {
	items, err := p.Browsable(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Category, len(Categories))
	for i, c := range Categories {
		c.Count = len(Filter(items, c.ID))
		out[i] = c
	}
	return out, nil
}

// Lookup resolves a watch page id. Unknown ids return ErrNotFound.
func (p *Provider) Lookup(ctx context.Context, id string) (models.ContentDetails, error) {
	if getter, ok := p.source.(ItemGetter); ok {
		item, err := getter.Get(ctx, id)
		if errors.Is(err, ErrNotFound) {
			p.logger.Debug("lookup miss", "id", id)
			return models.ContentDetails{}, ErrNotFound
		}
		if err != nil {
			return models.ContentDetails{}, fmt.Errorf("loading item %s: %w", id, err)
		}
		return Details(*item), nil
	}

	items, err := p.items(ctx)
	if err != nil {
		return models.ContentDetails{}, err
	}
	for _, item := range items {
		if item.ID == id {
			return Details(item), nil
		}
	}
	p.logger.Debug("lookup miss", "id", id)
	return models.ContentDetails{}, ErrNotFound
}
