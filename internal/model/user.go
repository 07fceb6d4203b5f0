package model

// User is the authenticated actor's profile as returned by the API.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Currency string `json:"currency"`
}

// PreferredCurrency returns the profile currency, defaulting to USD when the
// server has none recorded.
func (u User) PreferredCurrency() string {
	if u.Currency == "" {
		return "USD"
	}
	return u.Currency
}
