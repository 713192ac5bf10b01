package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/barnhand/stable-api/internal/dto"
	apierrors "github.com/barnhand/stable-api/internal/errors"
	"github.com/barnhand/stable-api/internal/middleware"
	"github.com/barnhand/stable-api/internal/models"
	"github.com/barnhand/stable-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates a new employee account pending admin approval.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Email        string  `json:"email" binding:"required,email"`
		Password     string  `json:"password" binding:"required"`
		FullName     string  `json:"full_name" binding:"required"`
		Designation  string  `json:"designation" binding:"required"`
		SupervisorID *uint64 `json:"supervisor_id"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	employee, err := h.authService.Register(services.RegisterInput{
		Email:        req.Email,
		Password:     req.Password,
		FullName:     req.FullName,
		Designation:  req.Designation,
		SupervisorID: req.SupervisorID,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEmployeeDTO(*employee))
}

// Login authenticates an employee and issues a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	token, employee, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token: token,
		User:  dto.ToEmployeeDTO(*employee),
	})
}

// GetCurrentUser returns the authenticated employee's live profile.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	employeeID, exists := middleware.GetEmployeeID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	employee, err := h.authService.GetEmployee(employeeID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeDTO(*employee))
}

// currentEmployee re-fetches the live actor record; the token designation is
// only a snapshot from issue time.
func currentEmployee(c *gin.Context, authService *services.AuthService) (*models.Employee, bool) {
	employeeID, exists := middleware.GetEmployeeID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return nil, false
	}

	employee, err := authService.GetEmployee(employeeID)
	if err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			apierrors.NotFound(c, "Employee not found")
		} else {
			log.Printf("failed to load current employee: %v", err)
			apierrors.InternalError(c, "")
		}
		return nil, false
	}

	return employee, true
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrUnknownDesignation):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrAccountNotApproved):
		apierrors.RespondWithError(c, http.StatusForbidden,
			apierrors.NewAPIError(apierrors.ErrCodeAccountNotApproved, err.Error()))
	case errors.Is(err, services.ErrEmployeeNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		log.Printf("auth error: %v", err)
		apierrors.InternalError(c, "")
	}
}
