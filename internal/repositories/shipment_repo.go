package repositories

import (
	"context"

	"github.com/google/uuid"

	"shiptrack/internal/models"
)

type ShipmentRepository interface {
	Create(ctx context.Context, shipment *models.Shipment) error
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*models.Shipment, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Shipment, error)
	ListAll(ctx context.Context, limit, offset int) ([]*models.Shipment, error)
	UpdateStatus(ctx context.Context, trackingNumber, status string) (*models.Shipment, error)
}

type shipmentRepo struct {
	db Database
}

func NewShipmentRepo(db Database) ShipmentRepository {
	return &shipmentRepo{db: db}
}

const shipmentColumns = `id, tracking_number, user_id, sender_name, sender_address, recipient_name, recipient_address, package_description, package_weight, package_dimensions, status, created_at, updated_at`

func scanShipment(row interface{ Scan(dest ...any) error }) (*models.Shipment, error) {
	s := &models.Shipment{}
	err := row.Scan(
		&s.ID, &s.TrackingNumber, &s.UserID, &s.SenderName, &s.SenderAddress,
		&s.RecipientName, &s.RecipientAddress, &s.PackageDescription,
		&s.PackageWeight, &s.PackageDimensions, &s.Status,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return s, nil
}

func (r *shipmentRepo) Create(ctx context.Context, shipment *models.Shipment) error {
	query := `
		INSERT INTO shipments (id, tracking_number, user_id, sender_name, sender_address, recipient_name, recipient_address, package_description, package_weight, package_dimensions, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query,
		shipment.ID, shipment.TrackingNumber, shipment.UserID,
		shipment.SenderName, shipment.SenderAddress,
		shipment.RecipientName, shipment.RecipientAddress,
		shipment.PackageDescription, shipment.PackageWeight,
		shipment.PackageDimensions, shipment.Status)
	return translateError(err)
}

func (r *shipmentRepo) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*models.Shipment, error) {
	query := `
		SELECT ` + shipmentColumns + `
		FROM shipments
		WHERE tracking_number = $1
	`
	return scanShipment(r.db.QueryRow(ctx, query, trackingNumber))
}

func (r *shipmentRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Shipment, error) {
	query := `
		SELECT ` + shipmentColumns + `
		FROM shipments
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var shipments []*models.Shipment
	for rows.Next() {
		shipment, err := scanShipment(rows)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, shipment)
	}
	return shipments, rows.Err()
}

func (r *shipmentRepo) ListAll(ctx context.Context, limit, offset int) ([]*models.Shipment, error) {
	query := `
		SELECT ` + shipmentColumns + `
		FROM shipments
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var shipments []*models.Shipment
	for rows.Next() {
		shipment, err := scanShipment(rows)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, shipment)
	}
	return shipments, rows.Err()
}

func (r *shipmentRepo) UpdateStatus(ctx context.Context, trackingNumber, status string) (*models.Shipment, error) {
	query := `
		UPDATE shipments
		SET status = $1, updated_at = NOW()
		WHERE tracking_number = $2
		RETURNING ` + shipmentColumns + `
	`
	return scanShipment(r.db.QueryRow(ctx, query, status, trackingNumber))
}
