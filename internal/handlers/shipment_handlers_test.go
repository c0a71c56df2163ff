package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"shiptrack/internal/common"
	"shiptrack/internal/models"
	"shiptrack/internal/services"
)

type MockShipmentService struct {
	mock.Mock
}

func (m *MockShipmentService) Create(ctx context.Context, userID uuid.UUID, input *services.CreateShipmentInput) (*models.Shipment, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Shipment), args.Error(1)
}

func (m *MockShipmentService) Track(ctx context.Context, trackingNumber string, userID uuid.UUID, isAdmin bool) (*models.Shipment, error) {
	args := m.Called(ctx, trackingNumber, userID, isAdmin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Shipment), args.Error(1)
}

func (m *MockShipmentService) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Shipment, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Shipment), args.Error(1)
}

func (m *MockShipmentService) ListAll(ctx context.Context, isAdmin bool, limit, offset int) ([]*models.Shipment, error) {
	args := m.Called(ctx, isAdmin, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Shipment), args.Error(1)
}

func (m *MockShipmentService) UpdateStatus(ctx context.Context, trackingNumber, status string, isAdmin bool) (*models.Shipment, error) {
	args := m.Called(ctx, trackingNumber, status, isAdmin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Shipment), args.Error(1)
}

type ShipmentHandlersTestSuite struct {
	suite.Suite
	service  *MockShipmentService
	handlers *ShipmentHandlers
	echo     *echo.Echo
	userID   uuid.UUID
}

func (suite *ShipmentHandlersTestSuite) SetupTest() {
	suite.service = &MockShipmentService{}
	suite.service.Test(suite.T())
	suite.handlers = NewShipmentHandlers(suite.service)
	suite.echo = echo.New()
	suite.userID = uuid.New()
}

func (suite *ShipmentHandlersTestSuite) TearDownTest() {
	suite.service.AssertExpectations(suite.T())
}

func TestShipmentHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(ShipmentHandlersTestSuite))
}

// do runs a handler with an authenticated identity in the request context,
// the way the JWT middleware populates it.
func (suite *ShipmentHandlersTestSuite) do(handler echo.HandlerFunc, method, path, body string, isAdmin bool, pathParams map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	ctx := context.WithValue(req.Context(), common.UserIDKey, suite.userID)
	ctx = context.WithValue(ctx, common.UserEmailKey, "a@x.com")
	ctx = context.WithValue(ctx, common.IsAdminKey, isAdmin)
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)
	if len(pathParams) > 0 {
		names := make([]string, 0, len(pathParams))
		values := make([]string, 0, len(pathParams))
		for name, value := range pathParams {
			names = append(names, name)
			values = append(values, value)
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	if err := handler(c); err != nil {
		suite.echo.HTTPErrorHandler(err, c)
	}
	return rec
}

func (suite *ShipmentHandlersTestSuite) shipment() *models.Shipment {
	return &models.Shipment{
		ID:               uuid.New(),
		TrackingNumber:   "TRK1700000000000AB12C",
		UserID:           suite.userID,
		SenderName:       "A",
		SenderAddress:    "1 St",
		RecipientName:    "B",
		RecipientAddress: "2 Ave",
		Status:           models.StatusPending,
	}
}

func (suite *ShipmentHandlersTestSuite) TestCreateShipment_Success() {
	shipment := suite.shipment()

	suite.service.On("Create", mock.Anything, suite.userID, mock.AnythingOfType("*services.CreateShipmentInput")).
		Return(shipment, nil).
		Run(func(args mock.Arguments) {
			input := args.Get(2).(*services.CreateShipmentInput)
			assert.Equal(suite.T(), "B", input.RecipientName)
			assert.Equal(suite.T(), "2 Ave", input.RecipientAddress)
		})

	rec := suite.do(suite.handlers.CreateShipment, http.MethodPost, "/api/shipments",
		`{"recipient_name":"B","recipient_address":"2 Ave"}`, false, nil)

	require.Equal(suite.T(), http.StatusCreated, rec.Code)

	var resp ShipmentResponse
	require.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(suite.T(), "Shipment created successfully", resp.Message)
	assert.Equal(suite.T(), shipment.TrackingNumber, resp.Shipment.TrackingNumber)
	assert.Equal(suite.T(), models.StatusPending, resp.Shipment.Status)
}

func (suite *ShipmentHandlersTestSuite) TestCreateShipment_OwnerRowMissing() {
	suite.service.On("Create", mock.Anything, suite.userID, mock.Anything).
		Return(nil, services.ErrUserNotFound)

	rec := suite.do(suite.handlers.CreateShipment, http.MethodPost, "/api/shipments",
		`{"recipient_name":"B","recipient_address":"2 Ave"}`, false, nil)

	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "User not found")
}

func (suite *ShipmentHandlersTestSuite) TestTrackShipment_Success() {
	shipment := suite.shipment()

	suite.service.On("Track", mock.Anything, shipment.TrackingNumber, suite.userID, false).
		Return(shipment, nil)

	rec := suite.do(suite.handlers.TrackShipment, http.MethodGet,
		"/api/shipments/track/"+shipment.TrackingNumber, "", false,
		map[string]string{"tracking_number": shipment.TrackingNumber})

	require.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), shipment.TrackingNumber)
}

func (suite *ShipmentHandlersTestSuite) TestTrackShipment_Forbidden() {
	suite.service.On("Track", mock.Anything, "TRK1", suite.userID, false).
		Return(nil, services.ErrAccessDenied)

	rec := suite.do(suite.handlers.TrackShipment, http.MethodGet, "/api/shipments/track/TRK1", "", false,
		map[string]string{"tracking_number": "TRK1"})

	assert.Equal(suite.T(), http.StatusForbidden, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "Access denied")
}

func (suite *ShipmentHandlersTestSuite) TestTrackShipment_NotFound() {
	suite.service.On("Track", mock.Anything, "TRK1", suite.userID, false).
		Return(nil, services.ErrShipmentNotFound)

	rec := suite.do(suite.handlers.TrackShipment, http.MethodGet, "/api/shipments/track/TRK1", "", false,
		map[string]string{"tracking_number": "TRK1"})

	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
}

func (suite *ShipmentHandlersTestSuite) TestGetUserShipments_DefaultPagination() {
	shipments := []*models.Shipment{suite.shipment()}

	suite.service.On("ListByUser", mock.Anything, suite.userID, 20, 0).Return(shipments, nil)

	rec := suite.do(suite.handlers.GetUserShipments, http.MethodGet, "/api/shipments/my-shipments", "", false, nil)

	require.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), `"shipments"`)
}

func (suite *ShipmentHandlersTestSuite) TestGetUserShipments_EmptyListIsNotNull() {
	suite.service.On("ListByUser", mock.Anything, suite.userID, 20, 0).Return([]*models.Shipment{}, nil)

	rec := suite.do(suite.handlers.GetUserShipments, http.MethodGet, "/api/shipments/my-shipments", "", false, nil)

	require.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), `"shipments":[]`)
}

func (suite *ShipmentHandlersTestSuite) TestGetAllShipments_NonAdminForbidden() {
	suite.service.On("ListAll", mock.Anything, false, 50, 0).Return(nil, services.ErrAdminRequired)

	rec := suite.do(suite.handlers.GetAllShipments, http.MethodGet, "/api/shipments/all", "", false, nil)

	assert.Equal(suite.T(), http.StatusForbidden, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "Admin access required")
}

func (suite *ShipmentHandlersTestSuite) TestGetAllShipments_Admin() {
	shipments := []*models.Shipment{suite.shipment()}

	suite.service.On("ListAll", mock.Anything, true, 50, 0).Return(shipments, nil)

	rec := suite.do(suite.handlers.GetAllShipments, http.MethodGet, "/api/shipments/all", "", true, nil)

	assert.Equal(suite.T(), http.StatusOK, rec.Code)
}

func (suite *ShipmentHandlersTestSuite) TestUpdateShipmentStatus_Success() {
	shipment := suite.shipment()
	shipment.Status = models.StatusDelivered

	suite.service.On("UpdateStatus", mock.Anything, shipment.TrackingNumber, models.StatusDelivered, true).
		Return(shipment, nil)

	rec := suite.do(suite.handlers.UpdateShipmentStatus, http.MethodPatch,
		"/api/shipments/"+shipment.TrackingNumber+"/status",
		`{"status":"Delivered"}`, true,
		map[string]string{"tracking_number": shipment.TrackingNumber})

	require.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "Status updated successfully")
	assert.Contains(suite.T(), rec.Body.String(), `"status":"Delivered"`)
}

func (suite *ShipmentHandlersTestSuite) TestUpdateShipmentStatus_InvalidStatus() {
	suite.service.On("UpdateStatus", mock.Anything, "TRK1", "Lost", true).
		Return(nil, services.ErrInvalidStatus)

	rec := suite.do(suite.handlers.UpdateShipmentStatus, http.MethodPatch, "/api/shipments/TRK1/status",
		`{"status":"Lost"}`, true, map[string]string{"tracking_number": "TRK1"})

	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "Invalid or missing status")
}

func (suite *ShipmentHandlersTestSuite) TestUpdateShipmentStatus_NonAdmin() {
	suite.service.On("UpdateStatus", mock.Anything, "TRK1", "Delivered", false).
		Return(nil, services.ErrAdminRequired)

	rec := suite.do(suite.handlers.UpdateShipmentStatus, http.MethodPatch, "/api/shipments/TRK1/status",
		`{"status":"Delivered"}`, false, map[string]string{"tracking_number": "TRK1"})

	assert.Equal(suite.T(), http.StatusForbidden, rec.Code)
}
