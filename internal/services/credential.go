package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"eventease/internal/domain"
)

const sessionTokenExpiry = 30 * 24 * time.Hour

var (
	emailRegexp       = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	uppercaseRegexp   = regexp.MustCompile(`[A-Z]`)
	specialCharRegexp = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// IsValidEmail reports whether the string looks like an email address.
func IsValidEmail(email string) bool {
	return emailRegexp.MatchString(email)
}

// ValidatePassword runs the password policy: at least 8 characters, one
// uppercase letter and one special character. All three must hold for
// IsValid.
func ValidatePassword(password string) domain.PasswordValidation {
	v := domain.PasswordValidation{
		HasMinLength:   len(password) >= 8,
		HasUppercase:   uppercaseRegexp.MatchString(password),
		HasSpecialChar: specialCharRegexp.MatchString(password),
	}
	v.IsValid = v.HasMinLength && v.HasUppercase && v.HasSpecialChar
	return v
}

type credentialService struct {
	store    domain.KeyValueStore
	hasher   domain.PasswordHasher
	issuer   domain.TokenIssuer
	verifier domain.TokenVerifier
	logger   *slog.Logger
}

// NewCredentialService creates a CredentialService over the given blob
// store and auth ports.
func NewCredentialService(
	store domain.KeyValueStore,
	hasher domain.PasswordHasher,
	issuer domain.TokenIssuer,
	verifier domain.TokenVerifier,
	logger *slog.Logger,
) domain.CredentialService {
	return &credentialService{
		store:    store,
		hasher:   hasher,
		issuer:   issuer,
		verifier: verifier,
		logger:   logger,
	}
}

// usersDB reads the registered-users list. A missing key or a failed read
// both degrade to an empty list.
func (s *credentialService) usersDB(ctx context.Context) []domain.StoredUser {
	data, err := s.store.Get(ctx, domain.KeyUsersDB)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			s.logger.Error("failed to read users db", "error", err)
		}
		return nil
	}
	var users []domain.StoredUser
	if err := json.Unmarshal(data, &users); err != nil {
		s.logger.Error("failed to decode users db", "error", err)
		return nil
	}
	return users
}

// saveUsersDB persists the list. Write failures are logged and dropped.
func (s *credentialService) saveUsersDB(ctx context.Context, users []domain.StoredUser) {
	data, err := json.Marshal(users)
	if err != nil {
		s.logger.Error("failed to encode users db", "error", err)
		return
	}
	if err := s.store.Set(ctx, domain.KeyUsersDB, data); err != nil {
		s.logger.Error("failed to save users db", "error", err)
	}
}

// saveSession persists the current-user record with a fresh token.
func (s *credentialService) saveSession(ctx context.Context, user domain.User) {
	token, err := s.issuer.Issue(user.ID, user.Email, sessionTokenExpiry)
	if err != nil {
		s.logger.Error("failed to issue session token", "error", err)
		return
	}
	data, err := json.Marshal(domain.Session{User: user, Token: token})
	if err != nil {
		s.logger.Error("failed to encode session", "error", err)
		return
	}
	if err := s.store.Set(ctx, domain.KeySessionUser, data); err != nil {
		s.logger.Error("failed to save session", "error", err)
	}
}

func (s *credentialService) Signup(ctx context.Context, email, name, password string) (*domain.User, error) {
	if email == "" || name == "" || password == "" {
		return nil, nil
	}
	if !IsValidEmail(email) {
		return nil, nil
	}
	if !ValidatePassword(password).IsValid {
		return nil, nil
	}
	if len(strings.TrimSpace(name)) < 2 {
		return nil, nil
	}

	users := s.usersDB(ctx)
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return nil, nil
		}
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	stored := domain.StoredUser{
		User: domain.User{
			ID:    uuid.NewString(),
			Email: strings.ToLower(email),
			Name:  strings.TrimSpace(name),
		},
		PasswordHash: hash,
	}
	users = append(users, stored)
	s.saveUsersDB(ctx, users)
	s.saveSession(ctx, stored.User)

	user := stored.User
	return &user, nil
}

func (s *credentialService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, nil
	}
	if !IsValidEmail(email) {
		return nil, nil
	}
	// The policy also gates login. Redundant for accounts created through
	// Signup, but kept: a password that cannot pass signup never reaches
	// the hash comparison.
	if !ValidatePassword(password).IsValid {
		return nil, nil
	}

	for _, u := range s.usersDB(ctx) {
		if strings.EqualFold(u.Email, email) && s.hasher.Compare(u.PasswordHash, password) {
			user := u.User
			s.saveSession(ctx, user)
			return &user, nil
		}
	}
	return nil, nil
}

// Logout clears the current session. Store failures are logged only;
// callers are never told.
func (s *credentialService) Logout(ctx context.Context) {
	if err := s.store.Delete(ctx, domain.KeySessionUser); err != nil {
		s.logger.Error("failed to clear session", "error", err)
	}
}

// CurrentUser restores the persisted session, re-verifying its token.
// A missing, unreadable or tampered session reads as signed out.
func (s *credentialService) CurrentUser(ctx context.Context) (*domain.User, error) {
	data, err := s.store.Get(ctx, domain.KeySessionUser)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			s.logger.Error("failed to read session", "error", err)
		}
		return nil, nil
	}
	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		s.logger.Error("failed to decode session", "error", err)
		return nil, nil
	}
	userID, err := s.verifier.Verify(session.Token)
	if err != nil || userID != session.User.ID {
		s.logger.Warn("session token rejected", "error", err)
		return nil, nil
	}
	user := session.User
	return &user, nil
}
