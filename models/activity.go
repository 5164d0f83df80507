package models

// Activity is an entry in a case's history log
type Activity struct {
	ID          uint    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CaseID      uint    `gorm:"column:caso_id;not null" json:"case_id"`
	OccurredAt  string  `gorm:"column:fecha_hora;not null" json:"occurred_at"` // YYYY-MM-DD HH:MM:SS
	Type        string  `gorm:"column:tipo_actividad;not null" json:"type" validate:"required"`
	Description string  `gorm:"column:descripcion;not null" json:"description" validate:"required"`
	Author      *string `gorm:"column:creado_por" json:"author,omitempty"`
	DocumentRef *string `gorm:"column:referencia_documento" json:"document_ref,omitempty"`
}

// TableName specifies the table name for Activity model
func (Activity) TableName() string {
	return "actividades_caso"
}

// ActivityUpdate carries the fields to change; nil fields are left untouched.
// The timestamp and author of a log entry are immutable.
type ActivityUpdate struct {
	Type        *string `json:"type,omitempty"`
	Description *string `json:"description,omitempty"`
	DocumentRef *string `json:"document_ref,omitempty"`
}

// Columns returns the column/value pairs to write
func (u ActivityUpdate) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	setString(cols, "tipo_actividad", u.Type)
	setString(cols, "descripcion", u.Description)
	setString(cols, "referencia_documento", u.DocumentRef)
	return cols
}
