package models

// Client is a person or company the practice represents
type Client struct {
	ID        uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string `gorm:"column:nombre;not null" json:"name" validate:"required"`
	Address   string `gorm:"column:direccion" json:"address"`
	Email     string `gorm:"column:email" json:"email"`
	Phone     string `gorm:"column:whatsapp" json:"phone"`
	CreatedAt int64  `gorm:"column:created_at;autoCreateTime:false" json:"created_at"`
}

// TableName specifies the table name for Client model
func (Client) TableName() string {
	return "clientes"
}

// ClientUpdate carries the fields to change; nil fields are left untouched
type ClientUpdate struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
}

// Columns returns the column/value pairs to write
func (u ClientUpdate) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	setString(cols, "nombre", u.Name)
	setString(cols, "direccion", u.Address)
	setString(cols, "email", u.Email)
	setString(cols, "whatsapp", u.Phone)
	return cols
}

func setString(cols map[string]interface{}, column string, value *string) {
	if value != nil {
		cols[column] = *value
	}
}

func setInt(cols map[string]interface{}, column string, value *int) {
	if value != nil {
		cols[column] = *value
	}
}

func setBool(cols map[string]interface{}, column string, value *bool) {
	if value != nil {
		cols[column] = *value
	}
}
