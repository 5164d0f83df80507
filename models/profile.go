package models

// ProfileID is the only row id datos_usuario accepts
const ProfileID = 1

// UserProfile holds the attorney's registration and contact details
type UserProfile struct {
	ID                       uint   `gorm:"column:id;primaryKey" json:"-"`
	AttorneyName             string `gorm:"column:nombre_abogado" json:"attorney_name"`
	NationalRegistration     string `gorm:"column:matricula_nacion" json:"national_registration"`
	ProvincialRegistration   string `gorm:"column:matricula_pba" json:"provincial_registration"`
	FederalRegistration      string `gorm:"column:matricula_federal" json:"federal_registration"`
	CityProceduralAddress    string `gorm:"column:domicilio_procesal_caba" json:"city_procedural_address"`
	NotificationZone         string `gorm:"column:zona_notificacion" json:"notification_zone"`
	ProvincialProceduralAddr string `gorm:"column:domicilio_procesal_pba" json:"provincial_procedural_address"`
	OfficePhone              string `gorm:"column:telefono_estudio" json:"office_phone"`
	OfficeEmail              string `gorm:"column:email_estudio" json:"office_email"`
	TaxID                    string `gorm:"column:cuit" json:"tax_id"`
	PensionFileNumber        string `gorm:"column:legajo_prev" json:"pension_file_number"`
	ProvincialElectronicAddr string `gorm:"column:domicilio_electrónico_pba" json:"provincial_electronic_address"`
	Other                    string `gorm:"column:otros_datos" json:"other"`
}

// TableName specifies the table name for UserProfile model
func (UserProfile) TableName() string {
	return "datos_usuario"
}

// ProfileUpdate carries the fields to change; nil fields are left untouched
type ProfileUpdate struct {
	AttorneyName             *string `json:"attorney_name,omitempty"`
	NationalRegistration     *string `json:"national_registration,omitempty"`
	ProvincialRegistration   *string `json:"provincial_registration,omitempty"`
	FederalRegistration      *string `json:"federal_registration,omitempty"`
	CityProceduralAddress    *string `json:"city_procedural_address,omitempty"`
	NotificationZone         *string `json:"notification_zone,omitempty"`
	ProvincialProceduralAddr *string `json:"provincial_procedural_address,omitempty"`
	OfficePhone              *string `json:"office_phone,omitempty"`
	OfficeEmail              *string `json:"office_email,omitempty" validate:"omitempty,email"`
	TaxID                    *string `json:"tax_id,omitempty"`
	PensionFileNumber        *string `json:"pension_file_number,omitempty"`
	ProvincialElectronicAddr *string `json:"provincial_electronic_address,omitempty"`
	Other                    *string `json:"other,omitempty"`
}

// Columns returns the column/value pairs to write
func (u ProfileUpdate) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	setString(cols, "nombre_abogado", u.AttorneyName)
	setString(cols, "matricula_nacion", u.NationalRegistration)
	setString(cols, "matricula_pba", u.ProvincialRegistration)
	setString(cols, "matricula_federal", u.FederalRegistration)
	setString(cols, "domicilio_procesal_caba", u.CityProceduralAddress)
	setString(cols, "zona_notificacion", u.NotificationZone)
	setString(cols, "domicilio_procesal_pba", u.ProvincialProceduralAddr)
	setString(cols, "telefono_estudio", u.OfficePhone)
	setString(cols, "email_estudio", u.OfficeEmail)
	setString(cols, "cuit", u.TaxID)
	setString(cols, "legajo_prev", u.PensionFileNumber)
	setString(cols, "domicilio_electrónico_pba", u.ProvincialElectronicAddr)
	setString(cols, "otros_datos", u.Other)
	return cols
}
