package entity

// Patient accounts are usable immediately after registration.
type Patient struct {
	Account
	BloodType string `gorm:"type:varchar(5)" json:"blood_type"`

	Profile *PatientProfile `gorm:"foreignKey:PatientID" json:"-"`
}

func (Patient) TableName() string {
	return "patients"
}

// Validate returns the first rule the patient breaks, or nil.
func (p *Patient) Validate() *ValidationError {
	return p.Account.validate(1)
}
