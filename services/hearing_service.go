package services

import (
	"strings"
	"time"

	"crm_legal_go/models"

	"gorm.io/gorm"
)

// hearingStartSQL orders hearings by date and time; a missing time sorts as midnight
const hearingStartSQL = "datetime(audiencias.fecha || ' ' || IFNULL(NULLIF(audiencias.hora, ''), '00:00'))"

// Hearing reminders look back one day and ahead thirty
const (
	hearingReminderLookbackDays = 1
	hearingReminderHorizonDays  = 30
)

func validateHearingDateTime(date, clock string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return validationError("invalid hearing date %q: expected YYYY-MM-DD", date)
	}
	if clock != "" {
		if _, err := time.Parse(ClockLayout, clock); err != nil {
			return validationError("invalid hearing time %q: expected HH:MM", clock)
		}
	}
	return nil
}

// AddHearing schedules a hearing for a case
func (s *Store) AddHearing(input models.NewHearing) (uint, error) {
	if strings.TrimSpace(input.Description) == "" {
		return 0, s.fail("AddHearing", validationError("hearing description is required"))
	}
	if err := validateHearingDateTime(input.Date, input.Time); err != nil {
		return 0, s.fail("AddHearing", err)
	}

	hearing := models.Hearing{
		CaseID:          input.CaseID,
		Date:            input.Date,
		Time:            input.Time,
		Description:     input.Description,
		Link:            input.Link,
		ReminderEnabled: input.ReminderEnabled,
		ReminderMinutes: models.DefaultHearingReminderMinutes,
		CreatedAt:       s.unixNow(),
	}
	if input.ReminderMinutes != nil {
		hearing.ReminderMinutes = *input.ReminderMinutes
	}

	err := s.transaction("AddHearing", func(tx *gorm.DB) error {
		if err := tx.Create(&hearing).Error; err != nil {
			return err
		}
		return s.touchCase(tx, hearing.CaseID)
	})
	if err != nil {
		return 0, err
	}
	s.log.Info("hearing added", "hearing_id", hearing.ID, "case_id", hearing.CaseID, "date", hearing.Date)
	return hearing.ID, nil
}

// GetHearing returns the hearing with its case title and client name, or nil
func (s *Store) GetHearing(id uint) (*models.Hearing, error) {
	var hearings []models.Hearing
	err := s.db.Model(&models.Hearing{}).
		Select("audiencias.*, casos.caratula AS caso_caratula, clientes.nombre AS cliente_nombre").
		Joins("JOIN casos ON audiencias.caso_id = casos.id").
		Joins("JOIN clientes ON casos.cliente_id = clientes.id").
		Where("audiencias.id = ?", id).
		Limit(1).
		Scan(&hearings).Error
	if err != nil {
		return nil, s.fail("GetHearing", err)
	}
	if len(hearings) == 0 {
		return nil, nil
	}
	return &hearings[0], nil
}

// ListHearingsByDate returns the hearings on a day ordered by time
func (s *Store) ListHearingsByDate(date string) ([]models.Hearing, error) {
	var hearings []models.Hearing
	err := s.db.Model(&models.Hearing{}).
		Select("audiencias.*, casos.caratula AS caso_caratula").
		Joins("JOIN casos ON audiencias.caso_id = casos.id").
		Where("audiencias.fecha = ?", date).
		Order(hearingStartSQL + " ASC").
		Scan(&hearings).Error
	if err != nil {
		return nil, s.fail("ListHearingsByDate", err)
	}
	return hearings, nil
}

// ListHearingsByCase returns every hearing of a case in chronological order
func (s *Store) ListHearingsByCase(caseID uint) ([]models.Hearing, error) {
	var hearings []models.Hearing
	err := s.db.Where("caso_id = ?", caseID).Order(hearingStartSQL + " ASC").Find(&hearings).Error
	if err != nil {
		return nil, s.fail("ListHearingsByCase", err)
	}
	return hearings, nil
}

// ListHearingDates returns every distinct date that has a hearing, ascending
func (s *Store) ListHearingDates() ([]string, error) {
	var dates []string
	err := s.db.Model(&models.Hearing{}).Distinct().Order("fecha").Pluck("fecha", &dates).Error
	if err != nil {
		return nil, s.fail("ListHearingDates", err)
	}
	return dates, nil
}

// ListHearingsWithReminder returns hearings with an active reminder dated
// from yesterday through the next thirty days
func (s *Store) ListHearingsWithReminder() ([]models.Hearing, error) {
	today := s.today()
	var hearings []models.Hearing
	err := s.db.Model(&models.Hearing{}).
		Select("audiencias.*, casos.caratula AS caso_caratula, clientes.nombre AS cliente_nombre").
		Joins("JOIN casos ON audiencias.caso_id = casos.id").
		Joins("JOIN clientes ON casos.cliente_id = clientes.id").
		Where("audiencias.recordatorio_activo = 1").
		Where("date(audiencias.fecha) >= date(?, ?)", today, dayOffset(-hearingReminderLookbackDays)).
		Where("date(audiencias.fecha) <= date(?, ?)", today, dayOffset(hearingReminderHorizonDays)).
		Order(hearingStartSQL + " ASC").
		Scan(&hearings).Error
	if err != nil {
		return nil, s.fail("ListHearingsWithReminder", err)
	}
	return hearings, nil
}

// UpdateHearing writes the supplied fields of a hearing
func (s *Store) UpdateHearing(id uint, update models.HearingUpdate) (bool, error) {
	if update.Date != nil {
		if err := validateHearingDateTime(*update.Date, ""); err != nil {
			return false, s.fail("UpdateHearing", err)
		}
	}
	if update.Time != nil && *update.Time != "" {
		if _, err := time.Parse(ClockLayout, *update.Time); err != nil {
			return false, s.fail("UpdateHearing", validationError("invalid hearing time %q: expected HH:MM", *update.Time))
		}
	}
	return s.updateChild("UpdateHearing", &models.Hearing{}, id, update.Columns())
}

// DeleteHearing removes a hearing
func (s *Store) DeleteHearing(id uint) (bool, error) {
	return s.deleteChild("DeleteHearing", &models.Hearing{}, id)
}
