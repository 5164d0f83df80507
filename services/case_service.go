package services

import (
	"strings"

	"crm_legal_go/models"

	"gorm.io/gorm"
)

const caseWithClientSelect = "casos.*, clientes.nombre AS nombre_cliente"

func (s *Store) casesWithClient() *gorm.DB {
	return s.db.Model(&models.Case{}).
		Select(caseWithClientSelect).
		Joins("JOIN clientes ON casos.cliente_id = clientes.id")
}

// AddCase creates a case for a client. Creation counts as activity.
func (s *Store) AddCase(input models.NewCase) (uint, error) {
	if strings.TrimSpace(input.Title) == "" {
		return 0, s.fail("AddCase", validationError("case title is required"))
	}

	now := s.unixNow()
	c := models.Case{
		ClientID:                input.ClientID,
		FileNumber:              input.FileNumber,
		Year:                    input.Year,
		Title:                   input.Title,
		Court:                   input.Court,
		Jurisdiction:            input.Jurisdiction,
		Stage:                   input.Stage,
		Notes:                   input.Notes,
		FolderPath:              input.FolderPath,
		InactivityThresholdDays: models.DefaultInactivityThresholdDays,
		InactivityEnabled:       models.DefaultInactivityEnabled,
		CreatedAt:               now,
		LastActivityTimestamp:   now,
	}
	if input.InactivityThresholdDays != nil {
		c.InactivityThresholdDays = *input.InactivityThresholdDays
	}
	if input.InactivityEnabled != nil {
		c.InactivityEnabled = *input.InactivityEnabled
	}

	err := s.transaction("AddCase", func(tx *gorm.DB) error {
		return tx.Create(&c).Error
	})
	if err != nil {
		return 0, err
	}
	s.log.Info("case added", "case_id", c.ID, "client_id", c.ClientID)
	return c.ID, nil
}

// ListCasesByClient returns a client's cases, newest year first
func (s *Store) ListCasesByClient(clientID uint) ([]models.Case, error) {
	var cases []models.Case
	err := s.casesWithClient().
		Where("casos.cliente_id = ?", clientID).
		Order("casos.anio_caratula DESC, casos.numero_expediente ASC").
		Scan(&cases).Error
	if err != nil {
		return nil, s.fail("ListCasesByClient", err)
	}
	return cases, nil
}

// GetCase returns the case with its client name, or nil when it does not exist
func (s *Store) GetCase(id uint) (*models.Case, error) {
	var cases []models.Case
	err := s.casesWithClient().Where("casos.id = ?", id).Limit(1).Scan(&cases).Error
	if err != nil {
		return nil, s.fail("GetCase", err)
	}
	if len(cases) == 0 {
		return nil, nil
	}
	return &cases[0], nil
}

// UpdateCase writes the supplied fields and records activity when the row changed
func (s *Store) UpdateCase(id uint, update models.CaseUpdate) (bool, error) {
	if update.Title != nil && strings.TrimSpace(*update.Title) == "" {
		return false, s.fail("UpdateCase", validationError("case title cannot be empty"))
	}
	return s.updateCaseColumns("UpdateCase", id, update.Columns())
}

// UpdateCaseFolder sets the case's document folder path
func (s *Store) UpdateCaseFolder(id uint, folderPath string) (bool, error) {
	return s.updateCaseColumns("UpdateCaseFolder", id, map[string]interface{}{"ruta_carpeta": folderPath})
}

func (s *Store) updateCaseColumns(op string, id uint, cols map[string]interface{}) (bool, error) {
	var found bool
	err := s.transaction(op, func(tx *gorm.DB) error {
		exists, changed, err := updateRow(tx, &models.Case{}, id, cols)
		if err != nil {
			return err
		}
		found = exists
		if changed {
			return s.touchCase(tx, id)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// DeleteCase removes the case, its hearings, activities, parties and tag
// links. Its tasks are kept with no case.
func (s *Store) DeleteCase(id uint) (bool, error) {
	deleted, err := s.deleteRow("DeleteCase", &models.Case{}, "id", id)
	if deleted {
		s.log.Info("case deleted", "case_id", id)
	}
	return deleted, err
}

// TouchCase records activity on the case now
func (s *Store) TouchCase(id uint) (bool, error) {
	var found bool
	err := s.transaction("TouchCase", func(tx *gorm.DB) error {
		res := tx.Model(&models.Case{}).Where("id = ?", id).Update("last_activity_timestamp", s.unixNow())
		found = res.RowsAffected > 0
		return res.Error
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// ListCasesForInactivityCheck returns the cases idle past their threshold
// that have not been notified since local midnight
func (s *Store) ListCasesForInactivityCheck() ([]models.Case, error) {
	now := s.now()
	midnight := startOfDay(now).Unix()

	var cases []models.Case
	err := s.casesWithClient().
		Where("casos.inactivity_enabled = 1").
		Where("casos.last_activity_timestamp + casos.inactivity_threshold_days * 86400 < ?", now.Unix()).
		Where("(casos.last_inactivity_notification_timestamp IS NULL OR casos.last_inactivity_notification_timestamp < ?)", midnight).
		Order("casos.last_activity_timestamp ASC").
		Scan(&cases).Error
	if err != nil {
		return nil, s.fail("ListCasesForInactivityCheck", err)
	}
	return cases, nil
}

// MarkCaseInactivityNotified records that the inactivity notice went out.
// It is an acknowledgment and does not count as activity.
func (s *Store) MarkCaseInactivityNotified(id uint) (bool, error) {
	var found bool
	err := s.transaction("MarkCaseInactivityNotified", func(tx *gorm.DB) error {
		res := tx.Model(&models.Case{}).Where("id = ?", id).
			Update("last_inactivity_notification_timestamp", s.unixNow())
		found = res.RowsAffected > 0
		return res.Error
	})
	if err != nil {
		return false, err
	}
	return found, nil
}
