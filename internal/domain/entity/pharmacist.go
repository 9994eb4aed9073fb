package entity

type Shift string

const (
	ShiftMorning Shift = "Morning"
	ShiftEvening Shift = "Evening"
)

func (s Shift) Valid() bool {
	return s == ShiftMorning || s == ShiftEvening
}

// Pharmacist accounts share the doctor approval flow.
type Pharmacist struct {
	Account
	Shift  Shift `gorm:"type:varchar(10);not null" json:"shift"`
	Active bool  `gorm:"not null;default:false" json:"active"`

	Profile *PharmacistProfile `gorm:"foreignKey:PharmacistID" json:"-"`
}

func (Pharmacist) TableName() string {
	return "pharmacists"
}

// Validate returns the first rule the pharmacist breaks, or nil. Age only has
// to be present, so zero is accepted.
func (p *Pharmacist) Validate() *ValidationError {
	if err := p.Account.validate(0); err != nil {
		return err
	}

	if !p.Shift.Valid() {
		return invalid("shift", RuleChoice, "shift must be one of: %s, %s", ShiftMorning, ShiftEvening)
	}

	return nil
}
