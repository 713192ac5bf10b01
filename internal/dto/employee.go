package dto

import (
	"time"

	"github.com/barnhand/stable-api/internal/models"
)

// EmployeeDTO represents an employee in API responses
type EmployeeDTO struct {
	ID               uint64                  `json:"id"`
	Email            string                  `json:"email"`
	FullName         string                  `json:"full_name"`
	Designation      string                  `json:"designation"`
	Department       string                  `json:"department"`
	SupervisorID     *uint64                 `json:"supervisor_id"`
	EmploymentStatus models.EmploymentStatus `json:"employment_status"`
	IsApproved       bool                    `json:"is_approved"`
	CreatedAt        time.Time               `json:"created_at"`
}

// LoginResponse is the payload returned on a successful login
type LoginResponse struct {
	Token string      `json:"token"`
	User  EmployeeDTO `json:"user"`
}

// ToEmployeeDTO converts an Employee model to EmployeeDTO
func ToEmployeeDTO(employee models.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:               employee.ID,
		Email:            employee.Email,
		FullName:         employee.FullName,
		Designation:      employee.Designation,
		Department:       employee.Department,
		SupervisorID:     employee.SupervisorID,
		EmploymentStatus: employee.EmploymentStatus,
		IsApproved:       employee.IsApproved,
		CreatedAt:        employee.CreatedAt,
	}
}

// ToEmployeeDTOs converts a slice of Employee models
func ToEmployeeDTOs(employees []models.Employee) []EmployeeDTO {
	out := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		out[i] = ToEmployeeDTO(e)
	}
	return out
}
