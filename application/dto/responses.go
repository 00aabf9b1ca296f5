package dto

import "dahcoins/domain/entities"

// SpendResult is returned by a spend
type SpendResult struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Wallet  *entities.Wallet `json:"wallet,omitempty"`
}

// PayoutResult is returned by a manual payout
type PayoutResult struct {
	Username string `json:"username"`
	Coins    int64  `json:"coins"`
	Reason   string `json:"reason"`
}

// FlashPriceDTO is the effective price of an item right now
type FlashPriceDTO struct {
	ItemID    string              `json:"itemId"`
	ListPrice int64               `json:"listPrice"`
	Price     int64               `json:"price"`
	FlashSale *entities.FlashSale `json:"flashSale,omitempty"`
}

// RevenueTotalDTO is the platform's accumulated ad revenue
type RevenueTotalDTO struct {
	TotalRevenue float64 `json:"totalRevenue"`
}

// AdRevenueDTO is the revenue attributed to one ad
type AdRevenueDTO struct {
	AdID    string  `json:"adId"`
	Revenue float64 `json:"revenue"`
}
