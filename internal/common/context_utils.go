package common

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"shiptrack/internal/models"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	UserEmailKey contextKey = "user_email"
	IsAdminKey   contextKey = "is_admin"
)

// GetUserIDFromContext extracts the authenticated user ID from the request context
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// GetUserEmailFromContext extracts the authenticated user's email from the request context
func GetUserEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailKey).(string)
	return email, ok
}

// GetIsAdminFromContext extracts the admin flag from the request context
func GetIsAdminFromContext(ctx context.Context) (bool, bool) {
	isAdmin, ok := ctx.Value(IsAdminKey).(bool)
	return isAdmin, ok
}

// ValidateShipmentStatus validates shipment status values
func ValidateShipmentStatus(status string) error {
	validStatuses := map[string]bool{
		models.StatusPending:   true,
		models.StatusInTransit: true,
		models.StatusDelivered: true,
		models.StatusCancelled: true,
	}
	if !validStatuses[status] {
		return fmt.Errorf("shipment status must be one of: Pending, InTransit, Delivered, Cancelled")
	}
	return nil
}

// ValidatePaginationParams normalizes limit/offset query parameters
func ValidatePaginationParams(limit, offset, defaultLimit int) (int, int) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > 100 {
		limit = 100 // Maximum page size
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
