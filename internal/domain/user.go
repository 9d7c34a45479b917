package domain

import (
	"context"
	"time"
)

// User is the public identity of a registered user.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// StoredUser is the persisted shape of a user: public identity plus the
// salted password digest. It never leaves the credential service.
type StoredUser struct {
	User
	PasswordHash string `json:"password"`
}

// Session is the persisted current-user record. Token is a signed proof
// that the session was created by this installation; it is re-verified
// when the session is restored.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// PasswordValidation reports the individual password policy checks.
// IsValid is true only when every check passes.
type PasswordValidation struct {
	HasMinLength   bool
	HasUppercase   bool
	HasSpecialChar bool
	IsValid        bool
}

// PasswordHasher produces and compares password digests. The digest is
// deterministic for a given application salt.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// TokenIssuer issues session tokens for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a session token and returns the user ID it was
// issued for.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// CredentialService manages the registered-users list and the current
// session. Validation failures (bad email, weak password, short name,
// duplicate email, wrong credentials) are signaled by a nil User with a
// nil error; errors are reserved for unexpected failures.
type CredentialService interface {
	Signup(ctx context.Context, email, name, password string) (*User, error)
	Login(ctx context.Context, email, password string) (*User, error)
	Logout(ctx context.Context)
	CurrentUser(ctx context.Context) (*User, error)
}
