package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFlashSale_Price(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		discount int
		list     int64
		want     int64
	}{
		{name: "half off", discount: 50, list: 500, want: 250},
		{name: "rounds down", discount: 30, list: 99, want: 69},
		{name: "no discount", discount: 0, list: 120, want: 120},
		{name: "free", discount: 100, list: 120, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sale := &FlashSale{DiscountPercent: tt.discount}
			assert.Equal(t, tt.want, sale.Price(tt.list))
		})
	}
}

func TestFlashSale_IsActive(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	sale := &FlashSale{
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		MaxClaims: 2,
		Claimed:   1,
	}

	assert.False(t, sale.IsActive(start.Add(-time.Second)))
	assert.True(t, sale.IsActive(start))
	assert.True(t, sale.IsActive(start.Add(59*time.Minute)))
	assert.False(t, sale.IsActive(start.Add(time.Hour)))
	assert.Equal(t, 1, sale.RemainingClaims())

	sale.Claimed = 2
	assert.True(t, sale.IsExhausted())
	assert.False(t, sale.IsActive(start.Add(time.Minute)))
	assert.Equal(t, 0, sale.RemainingClaims())
}

func TestFlashSale_Validate(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	valid := func() *FlashSale {
		return &FlashSale{ItemID: "gc-amazon-5", DiscountPercent: 20, MaxClaims: 10, StartTime: start, EndTime: start.Add(time.Hour)}
	}

	assert.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*FlashSale)
	}{
		{name: "missing item", mutate: func(f *FlashSale) { f.ItemID = "" }},
		{name: "zero discount", mutate: func(f *FlashSale) { f.DiscountPercent = 0 }},
		{name: "over 100", mutate: func(f *FlashSale) { f.DiscountPercent = 101 }},
		{name: "no claims", mutate: func(f *FlashSale) { f.MaxClaims = 0 }},
		{name: "empty window", mutate: func(f *FlashSale) { f.EndTime = f.StartTime }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sale := valid()
			tt.mutate(sale)
			assert.ErrorIs(t, sale.Validate(), ErrInvalidInput)
		})
	}
}
