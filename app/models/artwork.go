package models

import "time"

// Artwork is a piece listed in the gallery. Price is in whole rupees.
type Artwork struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Artist    string    `gorm:"size:255;not null" json:"artist"`
	Price     int64     `gorm:"not null" json:"price"`
	Image     string    `gorm:"size:1024" json:"image"`
	Year      string    `gorm:"size:64" json:"year,omitempty"`
	Story     string    `gorm:"type:text" json:"story,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

// Order records a completed mock checkout. Orders are never modified.
type Order struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	ArtworkID    string    `gorm:"size:64;not null;index" json:"artworkId"`
	ArtworkTitle string    `gorm:"size:255" json:"artworkTitle"`
	BuyerName    string    `gorm:"size:255" json:"buyerName"`
	Amount       int64     `gorm:"not null" json:"amount"`
	Reference    string    `gorm:"size:20;index" json:"reference"`
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`
}
