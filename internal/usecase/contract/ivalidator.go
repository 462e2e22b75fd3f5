package usecasecontract

// IValidator validates user-supplied fields before they reach the store.
type IValidator interface {
	ValidateEmail(email string) error
	ValidatePasswordStrength(password string) error
}
