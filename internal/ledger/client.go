package ledger

import (
	"errors"
	"fmt"

	"bizledger/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClientInput carries the writable fields of a client.
type ClientInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (in *ClientInput) validate() error {
	if in.Name == "" {
		return &ValidationError{Messages: []string{"name is required"}}
	}
	return nil
}

func (s *Service) CreateClient(userID string, in ClientInput) (*models.Client, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	cl := models.Client{
		ID:     uuid.NewString(),
		UserID: userID,
		Name:   in.Name,
		Email:  in.Email,
		Phone:  in.Phone,
	}
	if err := s.db.Create(&cl).Error; err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return &cl, nil
}

func (s *Service) UpdateClient(userID, id string, in ClientInput) (*models.Client, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var cl models.Client
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&cl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load client: %w", err)
	}

	cl.Name = in.Name
	cl.Email = in.Email
	cl.Phone = in.Phone
	if err := s.db.Save(&cl).Error; err != nil {
		return nil, fmt.Errorf("save client: %w", err)
	}
	return &cl, nil
}

func (s *Service) DeleteClient(userID, id string) error {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Client{})
	if res.Error != nil {
		return fmt.Errorf("delete client: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrClientNotFound
	}
	return nil
}

func (s *Service) ListClients(userID string) ([]models.Client, error) {
	var clients []models.Client
	if err := s.db.Where("user_id = ?", userID).Order("name ASC").Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}
