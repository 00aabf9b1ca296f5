package repository

import (
	"context"
	"errors"
	"fmt"

	"dahcoins/database"
	"dahcoins/domain/entities"

	"github.com/jackc/pgx/v5"
)

const rewardItemColumns = `id, name, price, category, tier, stock, featured, limited_edition`

// CatalogRepository implements the CatalogRepository interface
type CatalogRepository struct {
	q Queryable
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *database.DB) *CatalogRepository {
	return &CatalogRepository{q: db.Pool}
}

// NewCatalogRepositoryScoped creates a new catalog repository bound to a transaction
func NewCatalogRepositoryScoped(tx Queryable) *CatalogRepository {
	return &CatalogRepository{q: tx}
}

// GetItem returns an item, or nil if the ID is unknown
func (r *CatalogRepository) GetItem(ctx context.Context, itemID string) (*entities.RewardItem, error) {
	query := `SELECT ` + rewardItemColumns + ` FROM reward_items WHERE id = $1`

	item, err := scanRewardItem(r.q.QueryRow(ctx, query, itemID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item %s: %w", itemID, err)
	}
	return item, nil
}

// GetAll returns the whole catalog in display order
func (r *CatalogRepository) GetAll(ctx context.Context) ([]*entities.RewardItem, error) {
	return r.list(ctx, `SELECT `+rewardItemColumns+` FROM reward_items ORDER BY sort_order, id`)
}

// GetByCategory returns the items in one category in display order
func (r *CatalogRepository) GetByCategory(ctx context.Context, category entities.ItemCategory) ([]*entities.RewardItem, error) {
	return r.list(ctx, `SELECT `+rewardItemColumns+` FROM reward_items WHERE category = $1 ORDER BY sort_order, id`, category)
}

// GetFeatured returns the featured items in display order
func (r *CatalogRepository) GetFeatured(ctx context.Context) ([]*entities.RewardItem, error) {
	return r.list(ctx, `SELECT `+rewardItemColumns+` FROM reward_items WHERE featured ORDER BY sort_order, id`)
}

// DecrementStock takes one unit of a stock-limited item; false if none remain
func (r *CatalogRepository) DecrementStock(ctx context.Context, itemID string) (bool, error) {
	query := `
		UPDATE reward_items
		SET stock = stock - 1
		WHERE id = $1 AND stock IS NOT NULL AND stock > 0
	`
	tag, err := r.q.Exec(ctx, query, itemID)
	if err != nil {
		return false, fmt.Errorf("failed to decrement stock for %s: %w", itemID, err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *CatalogRepository) list(ctx context.Context, query string, args ...any) ([]*entities.RewardItem, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer rows.Close()

	items := make([]*entities.RewardItem, 0)
	for rows.Next() {
		item, err := scanRewardItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reward item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating catalog: %w", err)
	}
	return items, nil
}

func scanRewardItem(row pgx.Row) (*entities.RewardItem, error) {
	var item entities.RewardItem
	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Price,
		&item.Category,
		&item.Tier,
		&item.Stock,
		&item.Featured,
		&item.LimitedEdition,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}
