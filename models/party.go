package models

// Party is a third party involved in a case (opposing side, witness, expert...)
type Party struct {
	ID        uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CaseID    uint   `gorm:"column:caso_id;not null" json:"case_id"`
	Name      string `gorm:"column:nombre;not null" json:"name" validate:"required"`
	Type      string `gorm:"column:tipo" json:"type"`
	Address   string `gorm:"column:direccion" json:"address"`
	Contact   string `gorm:"column:contacto" json:"contact"`
	Notes     string `gorm:"column:notas" json:"notes"`
	CreatedAt int64  `gorm:"column:created_at;autoCreateTime:false" json:"created_at"`
}

// TableName specifies the table name for Party model
func (Party) TableName() string {
	return "partes_intervinientes"
}

// PartyUpdate carries the fields to change; nil fields are left untouched
type PartyUpdate struct {
	Name    *string `json:"name,omitempty"`
	Type    *string `json:"type,omitempty"`
	Address *string `json:"address,omitempty"`
	Contact *string `json:"contact,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

// Columns returns the column/value pairs to write
func (u PartyUpdate) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	setString(cols, "nombre", u.Name)
	setString(cols, "tipo", u.Type)
	setString(cols, "direccion", u.Address)
	setString(cols, "contacto", u.Contact)
	setString(cols, "notas", u.Notes)
	return cols
}
