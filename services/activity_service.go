package services

import (
	"strings"

	"crm_legal_go/models"

	"gorm.io/gorm"
)

// AddActivity appends an entry to a case's log. An empty OccurredAt is
// stamped with the current time.
func (s *Store) AddActivity(activity models.Activity) (uint, error) {
	if strings.TrimSpace(activity.Type) == "" || strings.TrimSpace(activity.Description) == "" {
		return 0, s.fail("AddActivity", validationError("activity type and description are required"))
	}
	activity.ID = 0
	if activity.OccurredAt == "" {
		activity.OccurredAt = s.now().Format(DateTimeLayout)
	}

	err := s.transaction("AddActivity", func(tx *gorm.DB) error {
		if err := tx.Create(&activity).Error; err != nil {
			return err
		}
		return s.touchCase(tx, activity.CaseID)
	})
	if err != nil {
		return 0, err
	}
	return activity.ID, nil
}

// ListActivities returns a case's log ordered by timestamp
func (s *Store) ListActivities(caseID uint, newestFirst bool) ([]models.Activity, error) {
	order := "datetime(fecha_hora) ASC, id ASC"
	if newestFirst {
		order = "datetime(fecha_hora) DESC, id DESC"
	}
	var activities []models.Activity
	if err := s.db.Where("caso_id = ?", caseID).Order(order).Find(&activities).Error; err != nil {
		return nil, s.fail("ListActivities", err)
	}
	return activities, nil
}

// GetActivity returns the log entry or nil when it does not exist
func (s *Store) GetActivity(id uint) (*models.Activity, error) {
	var activity models.Activity
	found, err := takeOne(s.db.Where("id = ?", id), &activity)
	if err != nil {
		return nil, s.fail("GetActivity", err)
	}
	if !found {
		return nil, nil
	}
	return &activity, nil
}

// UpdateActivity writes the supplied fields of a log entry
func (s *Store) UpdateActivity(id uint, update models.ActivityUpdate) (bool, error) {
	return s.updateChild("UpdateActivity", &models.Activity{}, id, update.Columns())
}

// DeleteActivity removes a log entry
func (s *Store) DeleteActivity(id uint) (bool, error) {
	return s.deleteChild("DeleteActivity", &models.Activity{}, id)
}
