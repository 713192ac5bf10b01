package repository

import (
	"github.com/barnhand/stable-api/internal/models"
	"gorm.io/gorm"
)

// GormEmployeeRepository is a GORM implementation of EmployeeRepository
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new EmployeeRepository
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// Create creates a new employee
func (r *GormEmployeeRepository) Create(employee *models.Employee) error {
	return r.db.Create(employee).Error
}

// FindByID finds an employee by ID
func (r *GormEmployeeRepository) FindByID(id uint64) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.First(&employee, id).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// FindByEmail finds an employee by email
func (r *GormEmployeeRepository) FindByEmail(email string) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.Where("email = ?", email).First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// List retrieves employees with optional department/status filters
func (r *GormEmployeeRepository) List(filter EmployeeFilter) ([]models.Employee, int64, error) {
	var employees []models.Employee

	query := r.db.Model(&models.Employee{})

	if filter.Department != nil {
		query = query.Where("department = ?", *filter.Department)
	}
	if filter.EmploymentStatus != nil {
		query = query.Where("employment_status = ?", *filter.EmploymentStatus)
	}
	if filter.Designation != nil {
		query = query.Where("designation = ?", *filter.Designation)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("full_name ASC")
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		listQuery = listQuery.Offset(offset).Limit(filter.PageSize)
	}

	if err := listQuery.Find(&employees).Error; err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

// Update updates an employee
func (r *GormEmployeeRepository) Update(employee *models.Employee) error {
	return r.db.Save(employee).Error
}

// Delete soft deletes an employee
func (r *GormEmployeeRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Employee{}, id).Error
}
