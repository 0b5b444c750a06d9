package domain

// Principal captures the authenticated caller's identity as extracted
// from the JWT. ID is the subject claim and is the user id every
// domain operation scopes by.
type Principal struct {
	ID     string
	Issuer string
	Email  string
	Name   string
}
