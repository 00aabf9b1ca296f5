package services

import (
	"context"
	"fmt"
	"time"

	"dahcoins/domain/entities"
	"dahcoins/domain/events"
	"dahcoins/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// RevenueConfig holds ad pricing
type RevenueConfig struct {
	CPM float64
	CPC float64
}

// DefaultRevenueConfig returns the standard ad pricing
func DefaultRevenueConfig() RevenueConfig {
	return RevenueConfig{CPM: 2.50, CPC: 0.25}
}

type revenueService struct {
	revenueRepo    interfaces.RevenueRepository
	eventPublisher interfaces.EventPublisher
	config         RevenueConfig
	now            func() time.Time
}

// NewRevenueService creates a new revenue pool tracker
func NewRevenueService(
	revenueRepo interfaces.RevenueRepository,
	eventPublisher interfaces.EventPublisher,
	config RevenueConfig,
) interfaces.RevenueService {
	return &revenueService{
		revenueRepo:    revenueRepo,
		eventPublisher: eventPublisher,
		config:         config,
		now:            time.Now,
	}
}

// RecordImpression credits CPM/1000 to the ad and the global pool
func (s *revenueService) RecordImpression(ctx context.Context, adID, username string) error {
	return s.record(ctx, adID, username, entities.AdEventImpression, s.config.CPM/1000)
}

// RecordClick credits the flat CPC to the ad and the global pool
func (s *revenueService) RecordClick(ctx context.Context, adID, username string) error {
	return s.record(ctx, adID, username, entities.AdEventClick, s.config.CPC)
}

// GetTotalRevenue returns the aggregate revenue across all ads
func (s *revenueService) GetTotalRevenue(ctx context.Context) (float64, error) {
	total, err := s.revenueRepo.GetTotalRevenue(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get total revenue: %w", err)
	}
	return total, nil
}

// GetAdRevenue returns the revenue attributed to a single ad
func (s *revenueService) GetAdRevenue(ctx context.Context, adID string) (float64, error) {
	revenue, err := s.revenueRepo.GetAdRevenue(ctx, adID)
	if err != nil {
		return 0, fmt.Errorf("failed to get ad revenue: %w", err)
	}
	return revenue, nil
}

func (s *revenueService) record(ctx context.Context, adID, username string, kind entities.AdEventKind, amount float64) error {
	if adID == "" {
		return fmt.Errorf("ad ID is required: %w", entities.ErrInvalidInput)
	}

	total, err := s.revenueRepo.AddRevenue(ctx, adID, amount)
	if err != nil {
		return fmt.Errorf("failed to add revenue: %w", err)
	}

	adEvent := &entities.AdEvent{
		AdID:      adID,
		Username:  username,
		Kind:      kind,
		Revenue:   amount,
		CreatedAt: s.now(),
	}
	if err := s.revenueRepo.RecordEvent(ctx, adEvent); err != nil {
		return fmt.Errorf("failed to record ad event: %w", err)
	}

	if err := s.eventPublisher.Publish(events.RevenueRecordedEvent{
		AdID:     adID,
		Username: username,
		Kind:     kind,
		Revenue:  amount,
	}); err != nil {
		log.WithError(err).Error("Failed to publish revenue recorded event")
	}

	log.WithFields(log.Fields{
		"adID":         adID,
		"kind":         kind,
		"revenue":      amount,
		"totalRevenue": total,
	}).Debug("Recorded ad revenue")

	return nil
}
