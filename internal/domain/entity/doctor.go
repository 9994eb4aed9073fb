package entity

import "time"

// MinGraduationYear is the earliest accepted graduation year.
const MinGraduationYear = 1970

// Doctor accounts start inactive and need administrative approval before
// they can log in or get a profile.
type Doctor struct {
	Account
	SpecializationID int    `gorm:"not null;index" json:"specialization_id"`
	MembershipNo     string `gorm:"type:varchar(30);not null" json:"membership_no"`
	GraduationYear   int    `gorm:"not null" json:"graduation_year"`
	Active           bool   `gorm:"not null;default:false" json:"active"`

	Specialization *Specialization `gorm:"foreignKey:SpecializationID" json:"specialization,omitempty"`
	Profile        *DoctorProfile  `gorm:"foreignKey:DoctorID" json:"-"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// Validate returns the first rule the doctor breaks, or nil. The upper bound
// for graduation_year is the year of now.
func (d *Doctor) Validate(now time.Time) *ValidationError {
	if err := d.Account.validate(1); err != nil {
		return err
	}

	if d.GraduationYear < MinGraduationYear || d.GraduationYear > now.Year() {
		return invalid("graduation_year", RuleRange, "graduation_year must be between %d and %d", MinGraduationYear, now.Year())
	}

	if d.SpecializationID <= 0 {
		return invalid("specialization_id", RuleRequired, "specialization_id is required")
	}

	return nil
}
