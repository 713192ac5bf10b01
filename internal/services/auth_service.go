package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/barnhand/stable-api/internal/authz"
	"github.com/barnhand/stable-api/internal/constants"
	"github.com/barnhand/stable-api/internal/models"
	"github.com/barnhand/stable-api/internal/repository"
	"github.com/barnhand/stable-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrAccountNotApproved = errors.New("account is pending approval")
	ErrUnknownDesignation = errors.New("unrecognized designation")
)

// AuthService handles registration, login, and profile lookup.
type AuthService struct {
	employeeRepo repository.EmployeeRepository
	registry     *authz.Registry
	jwtSecret    []byte
}

// NewAuthService creates a new AuthService.
func NewAuthService(employeeRepo repository.EmployeeRepository, registry *authz.Registry, jwtSecret []byte) *AuthService {
	return &AuthService{
		employeeRepo: employeeRepo,
		registry:     registry,
		jwtSecret:    jwtSecret,
	}
}

// RegisterInput holds the fields for a new employee account.
type RegisterInput struct {
	Email        string
	Password     string
	FullName     string
	Designation  string
	SupervisorID *uint64
}

// Register creates an employee account. The account cannot log in until an
// admin-tier user flips is_approved.
func (s *AuthService) Register(input RegisterInput) (*models.Employee, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || strings.TrimSpace(input.FullName) == "" {
		return nil, fmt.Errorf("email and full name are required")
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if !s.registry.IsKnown(input.Designation) {
		return nil, ErrUnknownDesignation
	}

	if _, err := s.employeeRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	if input.SupervisorID != nil {
		if _, err := s.employeeRepo.FindByID(*input.SupervisorID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrEmployeeNotFound
			}
			return nil, fmt.Errorf("failed to check supervisor: %w", err)
		}
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	department := ""
	for _, dept := range []string{
		authz.DeptManagement, authz.DeptStable, authz.DeptMedical,
		authz.DeptTraining, authz.DeptFeed, authz.DeptMaintenance,
	} {
		for _, role := range s.registry.DepartmentRoles(dept) {
			if role == input.Designation {
				department = dept
			}
		}
	}

	employee := &models.Employee{
		Email:            email,
		PasswordHash:     hash,
		FullName:         strings.TrimSpace(input.FullName),
		Designation:      input.Designation,
		Department:       department,
		SupervisorID:     input.SupervisorID,
		EmploymentStatus: models.EmploymentActive,
		IsApproved:       false,
	}

	if err := s.employeeRepo.Create(employee); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	return employee, nil
}

// Login verifies credentials and issues a bearer token. Unapproved accounts
// are rejected even with correct credentials.
func (s *AuthService) Login(email, password string) (string, *models.Employee, error) {
	employee, err := s.employeeRepo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to find employee: %w", err)
	}

	if !utils.CheckPassword(password, employee.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	if !employee.IsApproved {
		return "", nil, ErrAccountNotApproved
	}

	token, err := utils.GenerateToken(employee, s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return token, employee, nil
}

// GetEmployee retrieves an employee by ID.
func (s *AuthService) GetEmployee(id uint64) (*models.Employee, error) {
	employee, err := s.employeeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}
	return employee, nil
}
