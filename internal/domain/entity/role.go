package entity

// Role names carried in access tokens and audit entries
const (
	RolePatient    = "patient"
	RoleDoctor     = "doctor"
	RolePharmacist = "pharmacist"
	RoleAdmin      = "admin"
)

// IsAccountRole reports whether role names one of the three account tables.
func IsAccountRole(role string) bool {
	switch role {
	case RolePatient, RoleDoctor, RolePharmacist:
		return true
	}
	return false
}
