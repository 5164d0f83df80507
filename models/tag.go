package models

// Tag is a free-text label; names are stored lower-cased and compared
// without regard to case
type Tag struct {
	ID   uint   `gorm:"column:id_etiqueta;primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"column:nombre_etiqueta;not null" json:"name"`
}

// TableName specifies the table name for Tag model
func (Tag) TableName() string {
	return "etiquetas"
}

// ClientTag links a tag to a client
type ClientTag struct {
	ClientID uint `gorm:"column:cliente_id;primaryKey"`
	TagID    uint `gorm:"column:etiqueta_id;primaryKey"`
}

func (ClientTag) TableName() string {
	return "cliente_etiquetas"
}

// CaseTag links a tag to a case
type CaseTag struct {
	CaseID uint `gorm:"column:caso_id;primaryKey"`
	TagID  uint `gorm:"column:etiqueta_id;primaryKey"`
}

func (CaseTag) TableName() string {
	return "caso_etiquetas"
}
