package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"shiptrack/internal/models"
	"shiptrack/internal/repositories"
	"shiptrack/internal/services"
)

const (
	passwordHashCost  = 12
	minPasswordLength = 8
)

// AuthHandlers handles registration and login requests
type AuthHandlers struct {
	userRepo    repositories.UserRepository
	authService services.AuthService
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(userRepo repositories.UserRepository, authService services.AuthService) *AuthHandlers {
	return &AuthHandlers{
		userRepo:    userRepo,
		authService: authService,
	}
}

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	CompanyName *string `json:"company_name"`
	ContactName string  `json:"contact_name"`
	Address     string  `json:"address"`
	PhoneNumber *string `json:"phone_number"`
	IsAdmin     bool    `json:"is_admin"`
}

// AuthResponse represents the register/login response
type AuthResponse struct {
	Message string              `json:"message"`
	Token   string              `json:"token"`
	User    *models.UserProfile `json:"user"`
}

// Register handles new user registration
func (h *AuthHandlers) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if req.Email == "" || req.Password == "" || req.ContactName == "" || req.Address == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Required fields are missing")
	}

	if len(req.Password) < minPasswordLength {
		return echo.NewHTTPError(http.StatusBadRequest, "Password must be at least 8 characters long")
	}

	existing, err := h.userRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		log.Printf("Registration lookup error for %s: %v", req.Email, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
	if existing != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "User already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), passwordHashCost)
	if err != nil {
		log.Printf("Registration hashing error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		CompanyName:  req.CompanyName,
		ContactName:  req.ContactName,
		Address:      req.Address,
		PhoneNumber:  req.PhoneNumber,
		IsAdmin:      req.IsAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.userRepo.Create(ctx, user); err != nil {
		// The unique constraint is the backstop against concurrent signups
		if errors.Is(err, repositories.ErrDuplicate) {
			return echo.NewHTTPError(http.StatusBadRequest, "User already exists")
		}
		log.Printf("Registration error for %s: %v", req.Email, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	token, err := h.authService.GenerateToken(ctx, user)
	if err != nil {
		log.Printf("Registration token error for %s: %v", req.Email, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(http.StatusCreated, AuthResponse{
		Message: "User created successfully",
		Token:   token,
		User:    user.Profile(),
	})
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles user login with email and password
func (h *AuthHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email and password are required")
	}

	// Unknown email and wrong password are deliberately indistinguishable
	user, err := h.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
		}
		log.Printf("Login lookup error for %s: %v", req.Email, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	token, err := h.authService.GenerateToken(ctx, user)
	if err != nil {
		log.Printf("Login token error for %s: %v", req.Email, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(http.StatusOK, AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    user.Profile(),
	})
}
