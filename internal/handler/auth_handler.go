package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "campusai/internal/errors"
	"campusai/internal/logger"
	"campusai/internal/metrics"
	"campusai/internal/service"
)

// AuthHandler handles signup and login endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignupRequest represents a user registration request.
type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role" example:"student"`
	RollNo   string `json:"rollNo" validate:"required" example:"23ABC12345"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	RollNo   string `json:"rollNo" example:"23ABC12345"`
	Password string `json:"password"`
}

// SignupResponse represents a successful registration.
type SignupResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Role    string `json:"role"`
	Name    string `json:"name"`
}

var errInvalidBody = apperrors.NewHTTPError(http.StatusBadRequest, "invalid request body", "INVALID_REQUEST")

// Signup godoc
// @Summary Register a new user
// @Description Students must use a roll number of the form 23ABC12345. Other roles accept any roll number.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Registration data"
// @Success 200 {object} SignupResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return h.fail(c, metrics.Signups.WithLabelValues(metrics.OutcomeInvalidInput).Inc, errInvalidBody)
	}
	if err := c.Validate(&req); err != nil {
		return h.fail(c, metrics.Signups.WithLabelValues(metrics.OutcomeInvalidInput).Inc, apperrors.MapErrorToHTTP(apperrors.ErrMissingField))
	}

	_, err := h.authService.Signup(c.Request().Context(), service.SignupInput{
		Name:     req.Name,
		Role:     req.Role,
		RollNo:   req.RollNo,
		Password: req.Password,
	})
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		if httpErr.StatusCode >= http.StatusInternalServerError {
			logger.FromContext(c.Request().Context()).Error("signup failed", "err", err)
		}
		return h.fail(c, metrics.Signups.WithLabelValues(metrics.OutcomeForStatus(httpErr.StatusCode)).Inc, httpErr)
	}

	metrics.Signups.WithLabelValues(metrics.OutcomeSuccess).Inc()
	return c.JSON(http.StatusOK, SignupResponse{
		Success: true,
		Message: "Sign-Up Successful",
	})
}

// Login godoc
// @Summary Log in with roll number and password
// @Description No token or session is issued; the response only confirms the credentials.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return h.fail(c, metrics.Logins.WithLabelValues(metrics.OutcomeInvalidInput).Inc, errInvalidBody)
	}

	user, err := h.authService.Login(c.Request().Context(), req.RollNo, req.Password)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		if httpErr.StatusCode >= http.StatusInternalServerError {
			logger.FromContext(c.Request().Context()).Error("login failed", "err", err)
		}
		return h.fail(c, metrics.Logins.WithLabelValues(metrics.OutcomeForStatus(httpErr.StatusCode)).Inc, httpErr)
	}

	metrics.Logins.WithLabelValues(metrics.OutcomeSuccess).Inc()
	return c.JSON(http.StatusOK, LoginResponse{
		Success: true,
		Message: "Login Successful",
		Role:    user.Role,
		Name:    user.Name,
	})
}

func (h *AuthHandler) fail(c echo.Context, count func(), httpErr *apperrors.HTTPError) error {
	count()
	return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}
