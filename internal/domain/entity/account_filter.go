package entity

// AccountFilter is a domain-level filter for listing doctors and pharmacists.
type AccountFilter struct {
	Active *bool // nil lists both pending and approved accounts
}
