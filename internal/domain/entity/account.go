package entity

import (
	"time"

	"clinic-accounts/pkg/hasher"
	"clinic-accounts/pkg/slug"

	"github.com/google/uuid"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// MinPasswordLength is the shortest secret accepted on create or change.
const MinPasswordLength = 8

// MaxPasswordBytes is the bcrypt input limit. It counts bytes, not characters.
const MaxPasswordBytes = 72

// Account holds the columns shared by the patients, doctors and pharmacists
// tables. Unique constraints (user_name, email, national_id_number,
// phone_number, slug) are declared in the migrations.
//
// Password only ever holds a digest. A new secret is staged with SetPassword
// and hashed by PrepareForSave; the confirmation is never stored.
type Account struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserName         string    `gorm:"column:user_name;type:varchar(100);not null" json:"user_name"`
	FirstName        string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName         string    `gorm:"type:varchar(100);not null" json:"last_name"`
	Email            string    `gorm:"type:varchar(255);not null" json:"email"`
	Password         string    `gorm:"type:text;not null" json:"-"`
	NationalIDNumber string    `gorm:"column:national_id_number;type:varchar(14);not null" json:"national_id_number"`
	PhoneNumber      string    `gorm:"type:varchar(20);not null" json:"phone_number"`
	Address          string    `gorm:"type:varchar(200)" json:"address"`
	Gender           Gender    `gorm:"type:varchar(6);not null" json:"gender"`
	Age              int       `gorm:"not null" json:"age"`
	Slug             string    `gorm:"type:varchar(100);not null" json:"slug"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	plainPassword        string
	passwordConfirmation string
	passwordDirty        bool
}

// FullName joins first and last name.
func (a *Account) FullName() string {
	return a.FirstName + " " + a.LastName
}

// SetPassword stages a new secret for the next save.
func (a *Account) SetPassword(plain, confirmation string) {
	a.plainPassword = plain
	a.passwordConfirmation = confirmation
	a.passwordDirty = true
}

// PasswordDirty reports whether a staged secret is waiting to be hashed.
func (a *Account) PasswordDirty() bool {
	return a.passwordDirty
}

// CheckPassword verifies plain against the stored digest.
func (a *Account) CheckPassword(h hasher.Hasher, plain string) bool {
	return a.Password != "" && h.Verify(plain, a.Password)
}

// IsNew reports whether the account has never been prepared for persistence.
func (a *Account) IsNew() bool {
	return a.ID == uuid.Nil
}

// PrepareForSave applies the save-time rules: the id and created_at are set
// once, the slug is derived from user_name once, and a staged secret is hashed
// exactly once. A staged secret that already matches the stored digest is
// treated as unchanged so the digest is left alone.
func (a *Account) PrepareForSave(h hasher.Hasher, now time.Time) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	if a.passwordDirty {
		if !a.CheckPassword(h, a.plainPassword) {
			digest, err := h.Hash(a.plainPassword)
			if err != nil {
				return err
			}
			a.Password = digest
		}
		a.clearStagedPassword()
	}

	if a.Slug == "" {
		a.Slug = slug.Make(a.UserName)
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now

	return nil
}

func (a *Account) clearStagedPassword() {
	a.plainPassword = ""
	a.passwordConfirmation = ""
	a.passwordDirty = false
}

// validate checks the rules shared by every role. minAge is the smallest
// accepted age.
func (a *Account) validate(minAge int) *ValidationError {
	if a.passwordDirty {
		if a.plainPassword != a.passwordConfirmation {
			return invalid("password_confirmation", RuleMismatch, "passwords do not match")
		}
		if len(a.plainPassword) < MinPasswordLength {
			return invalid("password", RuleMinLength, "password must be at least %d characters", MinPasswordLength)
		}
		if len(a.plainPassword) > MaxPasswordBytes {
			return invalid("password", RuleMaxLength, "password must be at most %d bytes", MaxPasswordBytes)
		}
	} else if a.Password == "" {
		return invalid("password", RuleRequired, "password is required")
	}

	if a.Age < minAge {
		if minAge > 0 {
			return invalid("age", RuleRequired, "Age is required")
		}
		return invalid("age", RuleRange, "age must not be negative")
	}

	if !a.Gender.Valid() {
		return invalid("gender", RuleChoice, "gender must be one of: %s, %s", GenderMale, GenderFemale)
	}

	if a.Slug == "" && slug.Make(a.UserName) == "" {
		return invalid("user_name", RuleRequired, "user_name must contain at least one letter or digit")
	}

	return nil
}
