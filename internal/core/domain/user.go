package domain

type UserID string

const DefaultRole = "admin"

// User represents an administrator account. Users are never exposed over
// HTTP; population happens out of band.
type User struct {
	ID           UserID `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
}

func NewUser(email, passwordHash string) (*User, error) {
	if email == "" {
		return nil, NewMissingFieldError("email")
	}
	if passwordHash == "" {
		return nil, NewMissingFieldError("password")
	}
	return &User{
		Email:        email,
		PasswordHash: passwordHash,
		Role:         DefaultRole,
	}, nil
}
