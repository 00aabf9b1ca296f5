package entities

// ItemCategory groups catalog items. The set is closed. Coins have no cash value,
// so a category that turns coins back into money must never be added.
type ItemCategory string

const (
	CategoryGiftCard ItemCategory = "gift_card"
	CategoryBadge    ItemCategory = "badge"
	CategoryTheme    ItemCategory = "theme"
	CategoryBoost    ItemCategory = "boost"
	CategoryMerch    ItemCategory = "merch"
)

// IsValid returns true if the category is part of the catalog
func (c ItemCategory) IsValid() bool {
	switch c {
	case CategoryGiftCard, CategoryBadge, CategoryTheme, CategoryBoost, CategoryMerch:
		return true
	default:
		return false
	}
}

// RewardItem is a catalog entry that can be redeemed for coins
type RewardItem struct {
	ID             string       `db:"id" json:"id"`
	Name           string       `db:"name" json:"name"`
	Price          int64        `db:"price" json:"price"`
	Category       ItemCategory `db:"category" json:"category"`
	Tier           string       `db:"tier" json:"tier"`
	Stock          *int64       `db:"stock" json:"stock"`
	Featured       bool         `db:"featured" json:"featured"`
	LimitedEdition bool         `db:"limited_edition" json:"limitedEdition"`
}

// IsStockLimited returns true if the item has a finite stock
func (i *RewardItem) IsStockLimited() bool {
	return i.Stock != nil
}

// IsSoldOut returns true if a stock-limited item has none left
func (i *RewardItem) IsSoldOut() bool {
	return i.Stock != nil && *i.Stock <= 0
}

// RequiresCode returns true if redemption generates a fulfillment code
func (i *RewardItem) RequiresCode() bool {
	return i.Category == CategoryGiftCard
}
