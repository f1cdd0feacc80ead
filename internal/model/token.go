package model

// Claims is the decoded identity carried by a bearer token.
type Claims struct {
	TokenID string
	Email   string
	Role    Role
	UserID  int64
	IsAdmin bool
}

// TokenIssuer signs and verifies bearer tokens.
type TokenIssuer interface {
	Issue(email string, role Role, userID int64, isAdmin bool) (string, error)
	Parse(token string) (Claims, error)
}
