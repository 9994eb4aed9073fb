package entity

import (
	"time"

	"github.com/google/uuid"
)

// PatientProfile is created together with its patient. patient_id is unique,
// so a patient never has more than one.
type PatientProfile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PatientID uuid.UUID `gorm:"type:uuid;not null" json:"patient_id"`
	Slug      string    `gorm:"type:varchar(100);not null" json:"slug"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Patient *Patient `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
}

func (PatientProfile) TableName() string {
	return "patient_profiles"
}

func NewPatientProfile(p *Patient, now time.Time) *PatientProfile {
	return &PatientProfile{
		ID:        uuid.New(),
		PatientID: p.ID,
		Slug:      p.Slug,
		CreatedAt: now,
	}
}

// DoctorProfile exists only once the doctor has been activated.
type DoctorProfile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null" json:"doctor_id"`
	Slug      string    `gorm:"type:varchar(100);not null" json:"slug"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Doctor *Doctor `gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE" json:"-"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}

func NewDoctorProfile(d *Doctor, now time.Time) *DoctorProfile {
	return &DoctorProfile{
		ID:        uuid.New(),
		DoctorID:  d.ID,
		Slug:      d.Slug,
		CreatedAt: now,
	}
}

// PharmacistProfile exists only once the pharmacist has been activated.
type PharmacistProfile struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PharmacistID uuid.UUID `gorm:"type:uuid;not null" json:"pharmacist_id"`
	Slug         string    `gorm:"type:varchar(100);not null" json:"slug"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`

	Pharmacist *Pharmacist `gorm:"foreignKey:PharmacistID;constraint:OnDelete:CASCADE" json:"-"`
}

func (PharmacistProfile) TableName() string {
	return "pharmacist_profiles"
}

func NewPharmacistProfile(p *Pharmacist, now time.Time) *PharmacistProfile {
	return &PharmacistProfile{
		ID:           uuid.New(),
		PharmacistID: p.ID,
		Slug:         p.Slug,
		CreatedAt:    now,
	}
}
