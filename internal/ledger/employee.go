package ledger

import (
	"errors"
	"fmt"

	"bizledger/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EmployeeInput carries the writable fields of an employee.
type EmployeeInput struct {
	Name          string          `json:"name"`
	Role          string          `json:"role"`
	MonthlySalary decimal.Decimal `json:"monthlySalary"`
}

func (in *EmployeeInput) validate() error {
	var msgs []string
	if in.Name == "" {
		msgs = append(msgs, "name is required")
	}
	if in.MonthlySalary.IsNegative() {
		msgs = append(msgs, "monthly salary must not be negative")
	}
	if len(msgs) > 0 {
		return &ValidationError{Messages: msgs}
	}
	return nil
}

func (s *Service) CreateEmployee(userID string, in EmployeeInput) (*models.Employee, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	emp := models.Employee{
		ID:            uuid.NewString(),
		UserID:        userID,
		Name:          in.Name,
		Role:          in.Role,
		MonthlySalary: in.MonthlySalary,
	}
	if err := s.db.Create(&emp).Error; err != nil {
		return nil, fmt.Errorf("create employee: %w", err)
	}
	return &emp, nil
}

func (s *Service) UpdateEmployee(userID, id string, in EmployeeInput) (*models.Employee, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var emp models.Employee
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&emp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load employee: %w", err)
	}

	emp.Name = in.Name
	emp.Role = in.Role
	emp.MonthlySalary = in.MonthlySalary
	if err := s.db.Save(&emp).Error; err != nil {
		return nil, fmt.Errorf("save employee: %w", err)
	}
	return &emp, nil
}

// DeleteEmployee removes an employee with no payroll history.
func (s *Service) DeleteEmployee(userID, id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.PayrollPayment{}).
			Where("user_id = ? AND employee_id = ?", userID, id).Count(&count).Error; err != nil {
			return fmt.Errorf("count payroll payments: %w", err)
		}
		if count > 0 {
			return &ValidationError{Messages: []string{"employee has payroll payments"}}
		}
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Employee{})
		if res.Error != nil {
			return fmt.Errorf("delete employee: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrEmployeeNotFound
		}
		return nil
	})
}

func (s *Service) ListEmployees(userID string) ([]models.Employee, error) {
	var employees []models.Employee
	if err := s.db.Where("user_id = ?", userID).Order("name ASC").Find(&employees).Error; err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return employees, nil
}
