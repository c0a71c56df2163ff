package models

import (
	"time"

	"github.com/google/uuid"
)

// Shipment statuses
const (
	StatusPending   = "Pending"
	StatusInTransit = "InTransit"
	StatusDelivered = "Delivered"
	StatusCancelled = "Cancelled"
)

type Shipment struct {
	ID                 uuid.UUID `json:"id" db:"id"`
	TrackingNumber     string    `json:"tracking_number" db:"tracking_number"`
	UserID             uuid.UUID `json:"user_id" db:"user_id"`
	SenderName         string    `json:"sender_name" db:"sender_name"`
	SenderAddress      string    `json:"sender_address" db:"sender_address"`
	RecipientName      string    `json:"recipient_name" db:"recipient_name"`
	RecipientAddress   string    `json:"recipient_address" db:"recipient_address"`
	PackageDescription *string   `json:"package_description" db:"package_description"`
	PackageWeight      *float64  `json:"package_weight" db:"package_weight"`
	PackageDimensions  *string   `json:"package_dimensions" db:"package_dimensions"`
	Status             string    `json:"status" db:"status"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}
