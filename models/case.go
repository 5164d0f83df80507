package models

// Inactivity defaults applied when a case is created without explicit values
const (
	DefaultInactivityThresholdDays = 30
	DefaultInactivityEnabled       = true
)

// Case represents a legal matter tracked for a client
type Case struct {
	ID           uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ClientID     uint   `gorm:"column:cliente_id;not null" json:"client_id"`
	FileNumber   string `gorm:"column:numero_expediente" json:"file_number"`
	Year         string `gorm:"column:anio_caratula" json:"year"`
	Title        string `gorm:"column:caratula;not null" json:"title"`
	Court        string `gorm:"column:juzgado" json:"court"`
	Jurisdiction string `gorm:"column:jurisdiccion" json:"jurisdiction"`
	Stage        string `gorm:"column:etapa_procesal" json:"stage"`
	Notes        string `gorm:"column:notas" json:"notes"`
	FolderPath   string `gorm:"column:ruta_carpeta" json:"folder_path"`

	// Inactivity reminders
	InactivityThresholdDays             int    `gorm:"column:inactivity_threshold_days" json:"inactivity_threshold_days"`
	InactivityEnabled                   bool   `gorm:"column:inactivity_enabled" json:"inactivity_enabled"`
	CreatedAt                           int64  `gorm:"column:created_at;autoCreateTime:false" json:"created_at"`
	LastActivityTimestamp               int64  `gorm:"column:last_activity_timestamp" json:"last_activity_timestamp"`
	LastInactivityNotificationTimestamp *int64 `gorm:"column:last_inactivity_notification_timestamp" json:"last_inactivity_notification_timestamp,omitempty"`

	// Filled by queries joining clientes
	ClientName string `gorm:"column:nombre_cliente;->" json:"client_name,omitempty"`
}

// TableName specifies the table name for Case model
func (Case) TableName() string {
	return "casos"
}

// InactivityDeadline is the unix time after which the case counts as idle
func (c *Case) InactivityDeadline() int64 {
	return c.LastActivityTimestamp + int64(c.InactivityThresholdDays)*secondsPerDay
}

const secondsPerDay = 24 * 60 * 60

// NewCase holds the input for creating a case. Nil pointers take defaults.
type NewCase struct {
	ClientID                uint   `json:"client_id" validate:"required"`
	Title                   string `json:"title" validate:"required"`
	FileNumber              string `json:"file_number"`
	Year                    string `json:"year"`
	Court                   string `json:"court"`
	Jurisdiction            string `json:"jurisdiction"`
	Stage                   string `json:"stage"`
	Notes                   string `json:"notes"`
	FolderPath              string `json:"folder_path"`
	InactivityThresholdDays *int   `json:"inactivity_threshold_days,omitempty" validate:"omitempty,min=1"`
	InactivityEnabled       *bool  `json:"inactivity_enabled,omitempty"`
}

// CaseUpdate carries the fields to change; nil fields are left untouched
type CaseUpdate struct {
	Title                   *string `json:"title,omitempty"`
	FileNumber              *string `json:"file_number,omitempty"`
	Year                    *string `json:"year,omitempty"`
	Court                   *string `json:"court,omitempty"`
	Jurisdiction            *string `json:"jurisdiction,omitempty"`
	Stage                   *string `json:"stage,omitempty"`
	Notes                   *string `json:"notes,omitempty"`
	FolderPath              *string `json:"folder_path,omitempty"`
	InactivityThresholdDays *int    `json:"inactivity_threshold_days,omitempty" validate:"omitempty,min=1"`
	InactivityEnabled       *bool   `json:"inactivity_enabled,omitempty"`
}

// Columns returns the column/value pairs to write
func (u CaseUpdate) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	setString(cols, "caratula", u.Title)
	setString(cols, "numero_expediente", u.FileNumber)
	setString(cols, "anio_caratula", u.Year)
	setString(cols, "juzgado", u.Court)
	setString(cols, "jurisdiccion", u.Jurisdiction)
	setString(cols, "etapa_procesal", u.Stage)
	setString(cols, "notas", u.Notes)
	setString(cols, "ruta_carpeta", u.FolderPath)
	setInt(cols, "inactivity_threshold_days", u.InactivityThresholdDays)
	setBool(cols, "inactivity_enabled", u.InactivityEnabled)
	return cols
}
