package services

import (
	"strings"

	"crm_legal_go/models"

	"gorm.io/gorm"
)

// AddClient creates a client and returns its id
func (s *Store) AddClient(client models.Client) (uint, error) {
	if strings.TrimSpace(client.Name) == "" {
		return 0, s.fail("AddClient", validationError("client name is required"))
	}
	client.ID = 0
	client.CreatedAt = s.unixNow()
	err := s.transaction("AddClient", func(tx *gorm.DB) error {
		return tx.Create(&client).Error
	})
	if err != nil {
		return 0, err
	}
	s.log.Info("client added", "client_id", client.ID)
	return client.ID, nil
}

// ListClients returns every client ordered by name
func (s *Store) ListClients() ([]models.Client, error) {
	var clients []models.Client
	if err := s.db.Order("nombre").Find(&clients).Error; err != nil {
		return nil, s.fail("ListClients", err)
	}
	return clients, nil
}

// GetClient returns the client or nil when it does not exist
func (s *Store) GetClient(id uint) (*models.Client, error) {
	var client models.Client
	found, err := takeOne(s.db.Where("id = ?", id), &client)
	if err != nil {
		return nil, s.fail("GetClient", err)
	}
	if !found {
		return nil, nil
	}
	return &client, nil
}

// UpdateClient writes the supplied fields. It returns false when the client
// does not exist.
func (s *Store) UpdateClient(id uint, update models.ClientUpdate) (bool, error) {
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return false, s.fail("UpdateClient", validationError("client name cannot be empty"))
	}
	var found bool
	err := s.transaction("UpdateClient", func(tx *gorm.DB) error {
		var err error
		found, _, err = updateRow(tx, &models.Client{}, id, update.Columns())
		return err
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// DeleteClient removes the client together with its cases and their children
func (s *Store) DeleteClient(id uint) (bool, error) {
	deleted, err := s.deleteRow("DeleteClient", &models.Client{}, "id", id)
	if deleted {
		s.log.Info("client deleted", "client_id", id)
	}
	return deleted, err
}
