package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/gommon/random"

	"shiptrack/internal/caching"
	"shiptrack/internal/common"
	"shiptrack/internal/models"
	"shiptrack/internal/repositories"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrShipmentNotFound    = errors.New("shipment not found")
	ErrAccessDenied        = errors.New("access denied")
	ErrAdminRequired       = errors.New("admin access required")
	ErrInvalidStatus       = errors.New("invalid or missing status")
	ErrTrackingNumberTaken = errors.New("tracking number already exists")
)

const (
	trackingNumberPrefix = "TRK"
	trackingSuffixLength = 5

	shipmentCacheTTL = 5 * time.Minute
)

// CreateShipmentInput carries the caller-supplied shipment fields. Sender
// details are snapshotted from the owner, never taken from the request.
type CreateShipmentInput struct {
	RecipientName      string
	RecipientAddress   string
	PackageDescription *string
	PackageWeight      *float64
	PackageDimensions  *string
}

type ShipmentService interface {
	Create(ctx context.Context, userID uuid.UUID, input *CreateShipmentInput) (*models.Shipment, error)
	Track(ctx context.Context, trackingNumber string, userID uuid.UUID, isAdmin bool) (*models.Shipment, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Shipment, error)
	ListAll(ctx context.Context, isAdmin bool, limit, offset int) ([]*models.Shipment, error)
	UpdateStatus(ctx context.Context, trackingNumber, status string, isAdmin bool) (*models.Shipment, error)
}

type shipmentService struct {
	shipmentRepo repositories.ShipmentRepository
	userRepo     repositories.UserRepository
	cacheSvc     caching.CacheService
}

func NewShipmentService(shipmentRepo repositories.ShipmentRepository, userRepo repositories.UserRepository, cacheSvc caching.CacheService) ShipmentService {
	return &shipmentService{
		shipmentRepo: shipmentRepo,
		userRepo:     userRepo,
		cacheSvc:     cacheSvc,
	}
}

// generateTrackingNumber builds a tracking code from a fixed prefix, the
// current unix-millisecond timestamp and a short random alphanumeric suffix.
// Uniqueness is optimistic; the database constraint is the backstop.
func generateTrackingNumber() string {
	suffix := random.String(trackingSuffixLength, random.Uppercase+random.Numeric)
	return fmt.Sprintf("%s%d%s", trackingNumberPrefix, time.Now().UnixMilli(), suffix)
}

func (s *shipmentService) Create(ctx context.Context, userID uuid.UUID, input *CreateShipmentInput) (*models.Shipment, error) {
	owner, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	shipment := &models.Shipment{
		ID:                 uuid.New(),
		TrackingNumber:     generateTrackingNumber(),
		UserID:             owner.ID,
		SenderName:         owner.ContactName,
		SenderAddress:      owner.Address,
		RecipientName:      input.RecipientName,
		RecipientAddress:   input.RecipientAddress,
		PackageDescription: input.PackageDescription,
		PackageWeight:      input.PackageWeight,
		PackageDimensions:  input.PackageDimensions,
		Status:             models.StatusPending,
	}

	if err := s.shipmentRepo.Create(ctx, shipment); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrTrackingNumberTaken
		}
		return nil, err
	}

	if err := s.cacheSvc.SetShipment(ctx, shipment, shipmentCacheTTL); err != nil {
		log.Printf("Failed to cache shipment %s: %v", shipment.TrackingNumber, err)
	}

	return shipment, nil
}

func (s *shipmentService) Track(ctx context.Context, trackingNumber string, userID uuid.UUID, isAdmin bool) (*models.Shipment, error) {
	shipment, err := s.lookupShipment(ctx, trackingNumber)
	if err != nil {
		return nil, err
	}

	// Only the owner or an admin may view a shipment
	if shipment.UserID != userID && !isAdmin {
		return nil, ErrAccessDenied
	}

	return shipment, nil
}

func (s *shipmentService) lookupShipment(ctx context.Context, trackingNumber string) (*models.Shipment, error) {
	cached, err := s.cacheSvc.GetShipment(ctx, trackingNumber)
	if err != nil {
		log.Printf("Cache lookup failed for shipment %s: %v", trackingNumber, err)
	} else if cached != nil {
		return cached, nil
	}

	shipment, err := s.shipmentRepo.GetByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrShipmentNotFound
		}
		return nil, err
	}

	if err := s.cacheSvc.SetShipment(ctx, shipment, shipmentCacheTTL); err != nil {
		log.Printf("Failed to cache shipment %s: %v", trackingNumber, err)
	}

	return shipment, nil
}

func (s *shipmentService) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Shipment, error) {
	return s.shipmentRepo.ListByUser(ctx, userID, limit, offset)
}

func (s *shipmentService) ListAll(ctx context.Context, isAdmin bool, limit, offset int) ([]*models.Shipment, error) {
	if !isAdmin {
		return nil, ErrAdminRequired
	}
	return s.shipmentRepo.ListAll(ctx, limit, offset)
}

func (s *shipmentService) UpdateStatus(ctx context.Context, trackingNumber, status string, isAdmin bool) (*models.Shipment, error) {
	if !isAdmin {
		return nil, ErrAdminRequired
	}

	if err := common.ValidateShipmentStatus(status); err != nil {
		return nil, ErrInvalidStatus
	}

	shipment, err := s.shipmentRepo.UpdateStatus(ctx, trackingNumber, status)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrShipmentNotFound
		}
		return nil, err
	}

	// Keep the cache consistent with the store
	if err := s.cacheSvc.SetShipment(ctx, shipment, shipmentCacheTTL); err != nil {
		log.Printf("Failed to refresh cached shipment %s: %v", trackingNumber, err)
	}

	return shipment, nil
}
