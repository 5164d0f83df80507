package models

import (
	"fmt"
	"time"
)

// DefaultHearingReminderMinutes is the lead time used when none is given
const DefaultHearingReminderMinutes = 15

// Hearing is a scheduled court appearance for a case
type Hearing struct {
	ID              uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CaseID          uint   `gorm:"column:caso_id;not null" json:"case_id"`
	Date            string `gorm:"column:fecha;not null" json:"date"` // YYYY-MM-DD
	Time            string `gorm:"column:hora" json:"time"`           // HH:MM, may be empty
	Description     string `gorm:"column:descripcion;not null" json:"description"`
	Link            string `gorm:"column:link" json:"link"`
	ReminderEnabled bool   `gorm:"column:recordatorio_activo" json:"reminder_enabled"`
	ReminderMinutes int    `gorm:"column:recordatorio_minutos" json:"reminder_minutes"`
	CreatedAt       int64  `gorm:"column:created_at;autoCreateTime:false" json:"created_at"`

	// Filled by queries joining casos/clientes
	CaseTitle  string `gorm:"column:caso_caratula;->" json:"case_title,omitempty"`
	ClientName string `gorm:"column:cliente_nombre;->" json:"client_name,omitempty"`
}

// TableName specifies the table name for Hearing model
func (Hearing) TableName() string {
	return "audiencias"
}

// StartsAt combines date and time in loc. A missing time means midnight.
func (h *Hearing) StartsAt(loc *time.Location) (time.Time, error) {
	clock := h.Time
	if clock == "" {
		clock = "00:00"
	}
	start, err := time.ParseInLocation("2006-01-02 15:04", h.Date+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid hearing date/time %q %q: %w", h.Date, h.Time, err)
	}
	return start, nil
}

// RemindAt is the moment the reminder for this hearing becomes due
func (h *Hearing) RemindAt(loc *time.Location) (time.Time, error) {
	start, err := h.StartsAt(loc)
	if err != nil {
		return time.Time{}, err
	}
	return start.Add(-time.Duration(h.ReminderMinutes) * time.Minute), nil
}

// NewHearing holds the input for scheduling a hearing
type NewHearing struct {
	CaseID          uint   `json:"case_id" validate:"required"`
	Date            string `json:"date" validate:"required,datetime=2006-01-02"`
	Time            string `json:"time" validate:"omitempty,datetime=15:04"`
	Description     string `json:"description" validate:"required"`
	Link            string `json:"link"`
	ReminderEnabled bool   `json:"reminder_enabled"`
	ReminderMinutes *int   `json:"reminder_minutes,omitempty" validate:"omitempty,min=0"`
}

// HearingUpdate carries the fields to change; nil fields are left untouched
type HearingUpdate struct {
	Date            *string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Time            *string `json:"time,omitempty"`
	Description     *string `json:"description,omitempty"`
	Link            *string `json:"link,omitempty"`
	ReminderEnabled *bool   `json:"reminder_enabled,omitempty"`
	ReminderMinutes *int    `json:"reminder_minutes,omitempty" validate:"omitempty,min=0"`
}

// Columns returns the column/value pairs to write
func (u HearingUpdate) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	setString(cols, "fecha", u.Date)
	setString(cols, "hora", u.Time)
	setString(cols, "descripcion", u.Description)
	setString(cols, "link", u.Link)
	setBool(cols, "recordatorio_activo", u.ReminderEnabled)
	setInt(cols, "recordatorio_minutos", u.ReminderMinutes)
	return cols
}
