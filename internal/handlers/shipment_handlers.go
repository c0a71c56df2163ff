package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"shiptrack/internal/common"
	"shiptrack/internal/models"
	"shiptrack/internal/services"
)

// Pagination defaults per list endpoint
const (
	defaultUserPageSize  = 20
	defaultAdminPageSize = 50
)

// ShipmentHandlers handles shipment-related HTTP requests
type ShipmentHandlers struct {
	shipmentService services.ShipmentService
}

// NewShipmentHandlers creates a new shipment handlers instance
func NewShipmentHandlers(shipmentService services.ShipmentService) *ShipmentHandlers {
	return &ShipmentHandlers{
		shipmentService: shipmentService,
	}
}

// CreateShipmentRequest represents the shipment creation request payload
type CreateShipmentRequest struct {
	RecipientName      string   `json:"recipient_name"`
	RecipientAddress   string   `json:"recipient_address"`
	PackageDescription *string  `json:"package_description"`
	PackageWeight      *float64 `json:"package_weight"`
	PackageDimensions  *string  `json:"package_dimensions"`
}

// ShipmentResponse represents a single-shipment response with a message
type ShipmentResponse struct {
	Message  string           `json:"message"`
	Shipment *models.Shipment `json:"shipment"`
}

// CreateShipment handles creating a new shipment for the authenticated user
func (h *ShipmentHandlers) CreateShipment(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Access token required")
	}

	var req CreateShipmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	shipment, err := h.shipmentService.Create(ctx, userID, &services.CreateShipmentInput{
		RecipientName:      req.RecipientName,
		RecipientAddress:   req.RecipientAddress,
		PackageDescription: req.PackageDescription,
		PackageWeight:      req.PackageWeight,
		PackageDimensions:  req.PackageDimensions,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		case errors.Is(err, services.ErrTrackingNumberTaken):
			return echo.NewHTTPError(http.StatusConflict, "Tracking number conflict, please retry")
		default:
			log.Printf("Create shipment error: %v", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
		}
	}

	return c.JSON(http.StatusCreated, ShipmentResponse{
		Message:  "Shipment created successfully",
		Shipment: shipment,
	})
}

// TrackShipment handles tracking a shipment by tracking number
func (h *ShipmentHandlers) TrackShipment(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Access token required")
	}
	isAdmin, _ := common.GetIsAdminFromContext(ctx)

	trackingNumber := c.Param("tracking_number")

	shipment, err := h.shipmentService.Track(ctx, trackingNumber, userID, isAdmin)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrShipmentNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Shipment not found")
		case errors.Is(err, services.ErrAccessDenied):
			return echo.NewHTTPError(http.StatusForbidden, "Access denied")
		default:
			log.Printf("Track shipment error: %v", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
		}
	}

	return c.JSON(http.StatusOK, map[string]*models.Shipment{"shipment": shipment})
}

// ListShipmentsRequest represents query parameters for list endpoints
type ListShipmentsRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// GetUserShipments handles listing the authenticated user's shipments
func (h *ShipmentHandlers) GetUserShipments(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Access token required")
	}

	var req ListShipmentsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset, defaultUserPageSize)

	shipments, err := h.shipmentService.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		log.Printf("Get shipments error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
	if shipments == nil {
		shipments = []*models.Shipment{}
	}

	return c.JSON(http.StatusOK, map[string][]*models.Shipment{"shipments": shipments})
}

// GetAllShipments handles listing every shipment (admin only)
func (h *ShipmentHandlers) GetAllShipments(c echo.Context) error {
	ctx := c.Request().Context()

	if _, ok := common.GetUserIDFromContext(ctx); !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Access token required")
	}
	isAdmin, _ := common.GetIsAdminFromContext(ctx)

	var req ListShipmentsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset, defaultAdminPageSize)

	shipments, err := h.shipmentService.ListAll(ctx, isAdmin, limit, offset)
	if err != nil {
		if errors.Is(err, services.ErrAdminRequired) {
			return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
		}
		log.Printf("Get all shipments error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
	if shipments == nil {
		shipments = []*models.Shipment{}
	}

	return c.JSON(http.StatusOK, map[string][]*models.Shipment{"shipments": shipments})
}

// UpdateStatusRequest represents the status update request payload
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateShipmentStatus handles updating a shipment's status (admin only)
func (h *ShipmentHandlers) UpdateShipmentStatus(c echo.Context) error {
	ctx := c.Request().Context()

	if _, ok := common.GetUserIDFromContext(ctx); !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Access token required")
	}
	isAdmin, _ := common.GetIsAdminFromContext(ctx)

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	trackingNumber := c.Param("tracking_number")

	shipment, err := h.shipmentService.UpdateStatus(ctx, trackingNumber, req.Status, isAdmin)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAdminRequired):
			return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
		case errors.Is(err, services.ErrInvalidStatus):
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid or missing status")
		case errors.Is(err, services.ErrShipmentNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Shipment not found")
		default:
			log.Printf("Update status error: %v", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
		}
	}

	return c.JSON(http.StatusOK, ShipmentResponse{
		Message:  "Status updated successfully",
		Shipment: shipment,
	})
}
