package services

import (
	"errors"
	"fmt"

	"github.com/barnhand/stable-api/internal/authz"
	"github.com/barnhand/stable-api/internal/models"
	"github.com/barnhand/stable-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrSupervisorCycle   = errors.New("supervisor assignment would create a cycle")
	ErrSelfSupervision   = errors.New("an employee cannot supervise themselves")
	ErrInvalidEmployment = errors.New("invalid employment status")
)

// EmployeeService handles staff administration.
type EmployeeService struct {
	employeeRepo repository.EmployeeRepository
	registry     *authz.Registry
}

// NewEmployeeService creates a new EmployeeService.
func NewEmployeeService(employeeRepo repository.EmployeeRepository, registry *authz.Registry) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		registry:     registry,
	}
}

// ListEmployees returns staff records with optional filters.
func (s *EmployeeService) ListEmployees(filter repository.EmployeeFilter) ([]models.Employee, int64, error) {
	return s.employeeRepo.List(filter)
}

// GetEmployee returns one staff record.
func (s *EmployeeService) GetEmployee(id uint64) (*models.Employee, error) {
	employee, err := s.employeeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}
	return employee, nil
}

// UpdateEmployeeInput holds the mutable admin fields.
type UpdateEmployeeInput struct {
	FullName         *string
	Designation      *string
	SupervisorID     *uint64
	ClearSupervisor  bool
	EmploymentStatus *models.EmploymentStatus
}

// UpdateEmployee applies admin edits. Supervisor reassignment is validated
// against the supervisor graph so it stays acyclic.
func (s *EmployeeService) UpdateEmployee(id uint64, input UpdateEmployeeInput) (*models.Employee, error) {
	employee, err := s.employeeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}

	if input.FullName != nil {
		employee.FullName = *input.FullName
	}
	if input.Designation != nil {
		if !s.registry.IsKnown(*input.Designation) {
			return nil, ErrUnknownDesignation
		}
		employee.Designation = *input.Designation
	}
	if input.EmploymentStatus != nil {
		switch *input.EmploymentStatus {
		case models.EmploymentActive, models.EmploymentOnLeave,
			models.EmploymentSuspended, models.EmploymentTerminated:
		default:
			return nil, ErrInvalidEmployment
		}
		employee.EmploymentStatus = *input.EmploymentStatus
	}
	if input.ClearSupervisor {
		employee.SupervisorID = nil
	} else if input.SupervisorID != nil {
		if err := s.validateSupervisor(employee.ID, *input.SupervisorID); err != nil {
			return nil, err
		}
		employee.SupervisorID = input.SupervisorID
	}

	if err := s.employeeRepo.Update(employee); err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}

	return employee, nil
}

// ApproveEmployee flips the first-login gate.
func (s *EmployeeService) ApproveEmployee(id uint64) (*models.Employee, error) {
	employee, err := s.employeeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}

	employee.IsApproved = true
	if err := s.employeeRepo.Update(employee); err != nil {
		return nil, fmt.Errorf("failed to approve employee: %w", err)
	}

	return employee, nil
}

// DeleteEmployee removes a staff record.
func (s *EmployeeService) DeleteEmployee(id uint64) error {
	if _, err := s.employeeRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to find employee: %w", err)
	}
	return s.employeeRepo.Delete(id)
}

// validateSupervisor checks that the proposed supervisor exists and that the
// chain above them never reaches the employee being edited. The walk is
// bounded by the visited set, so a pre-existing cycle cannot loop forever.
func (s *EmployeeService) validateSupervisor(employeeID, supervisorID uint64) error {
	if supervisorID == employeeID {
		return ErrSelfSupervision
	}

	visited := map[uint64]struct{}{}
	current := supervisorID
	for {
		if _, seen := visited[current]; seen {
			break
		}
		visited[current] = struct{}{}

		record, err := s.employeeRepo.FindByID(current)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmployeeNotFound
			}
			return fmt.Errorf("failed to walk supervisor chain: %w", err)
		}

		if record.SupervisorID == nil {
			break
		}
		if *record.SupervisorID == employeeID {
			return ErrSupervisorCycle
		}
		current = *record.SupervisorID
	}

	return nil
}
