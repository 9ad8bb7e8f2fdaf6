package model

import (
	"time"

	"gorm.io/gorm"
)

// ListingStatus represents the lifecycle state of a marketplace listing
type ListingStatus string

const (
	ListingStatusAvailable ListingStatus = "available"
	ListingStatusSold      ListingStatus = "sold"
)

// MarketListing represents a buy/sell marketplace post
type MarketListing struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	SellerID    uint           `gorm:"index;not null" json:"seller_id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	Price       float64        `gorm:"not null" json:"price"`
	Category    string         `gorm:"type:varchar(50)" json:"category,omitempty"`
	ImageURL    string         `gorm:"type:text" json:"image_url,omitempty"`
	Status      ListingStatus  `gorm:"type:varchar(20);default:'available'" json:"status"`

	Seller User `gorm:"foreignKey:SellerID;constraint:OnDelete:CASCADE" json:"seller,omitempty"`
}
