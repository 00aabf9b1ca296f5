package entities

import "time"

// AdEventKind distinguishes impressions from clicks
type AdEventKind string

const (
	AdEventImpression AdEventKind = "impression"
	AdEventClick      AdEventKind = "click"
)

// AdEvent is a single revenue-generating ad interaction
type AdEvent struct {
	ID        int64       `db:"id" json:"id"`
	AdID      string      `db:"ad_id" json:"adId"`
	Username  string      `db:"username" json:"username"`
	Kind      AdEventKind `db:"kind" json:"kind"`
	Revenue   float64     `db:"revenue" json:"revenue"`
	CreatedAt time.Time   `db:"created_at" json:"timestamp"`
}
