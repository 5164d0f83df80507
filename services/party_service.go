package services

import (
	"strings"

	"crm_legal_go/models"

	"gorm.io/gorm"
)

// AddParty records a party involved in a case
func (s *Store) AddParty(party models.Party) (uint, error) {
	if strings.TrimSpace(party.Name) == "" {
		return 0, s.fail("AddParty", validationError("party name is required"))
	}
	party.ID = 0
	party.CreatedAt = s.unixNow()

	err := s.transaction("AddParty", func(tx *gorm.DB) error {
		if err := tx.Create(&party).Error; err != nil {
			return err
		}
		return s.touchCase(tx, party.CaseID)
	})
	if err != nil {
		return 0, err
	}
	return party.ID, nil
}

// ListParties returns a case's parties ordered by name
func (s *Store) ListParties(caseID uint) ([]models.Party, error) {
	var parties []models.Party
	if err := s.db.Where("caso_id = ?", caseID).Order("nombre ASC").Find(&parties).Error; err != nil {
		return nil, s.fail("ListParties", err)
	}
	return parties, nil
}

// GetParty returns the party or nil when it does not exist
func (s *Store) GetParty(id uint) (*models.Party, error) {
	var party models.Party
	found, err := takeOne(s.db.Where("id = ?", id), &party)
	if err != nil {
		return nil, s.fail("GetParty", err)
	}
	if !found {
		return nil, nil
	}
	return &party, nil
}

// UpdateParty writes the supplied fields of a party
func (s *Store) UpdateParty(id uint, update models.PartyUpdate) (bool, error) {
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return false, s.fail("UpdateParty", validationError("party name cannot be empty"))
	}
	return s.updateChild("UpdateParty", &models.Party{}, id, update.Columns())
}

// DeleteParty removes a party from its case
func (s *Store) DeleteParty(id uint) (bool, error) {
	return s.deleteChild("DeleteParty", &models.Party{}, id)
}
