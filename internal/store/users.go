package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrBadCredentials is returned by Authenticate for an unknown email or a
// wrong password, indistinguishably.
var ErrBadCredentials = errors.New("invalid email or password")

// CreateUser hashes the password and inserts a new user.
func (s *Store) CreateUser(email, password, displayName string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("could not hash password: %w", err)
	}
	u := &User{Email: email, PasswordHash: string(hash), DisplayName: displayName}
	if err := s.db.Create(u).Error; err != nil {
		return nil, fmt.Errorf("could not create user %q: %w", email, err)
	}
	return u, nil
}

// UserByEmail retrieves a user by email address.
func (s *Store) UserByEmail(email string) (*User, error) {
	var u User
	if err := s.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// UserByID retrieves a user by ID.
func (s *Store) UserByID(id uint) (*User, error) {
	var u User
	if err := s.db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// Authenticate checks an email/password pair and returns the user on success.
func (s *Store) Authenticate(email, password string) (*User, error) {
	u, err := s.UserByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrBadCredentials
	}
	return u, nil
}

// CreateSession opens a new session for the user, valid for ttl.
func (s *Store) CreateSession(userID uint, ttl time.Duration) (*Session, error) {
	sess := &Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := s.db.Create(sess).Error; err != nil {
		return nil, fmt.Errorf("could not create session: %w", err)
	}
	return sess, nil
}

// SessionUser resolves a session token to its user. Expired sessions are
// treated as not found.
func (s *Store) SessionUser(token string) (*User, error) {
	var sess Session
	if err := s.db.Where("token = ?", token).First(&sess).Error; err != nil {
		return nil, err
	}
	if time.Now().After(sess.ExpiresAt) {
		return nil, gorm.ErrRecordNotFound
	}
	return s.UserByID(sess.UserID)
}

// DeleteSession logs the session out. Deleting an unknown token is not an error.
func (s *Store) DeleteSession(token string) error {
	return s.db.Delete(&Session{}, "token = ?", token).Error
}

// PurgeExpiredSessions removes sessions past their expiry.
func (s *Store) PurgeExpiredSessions() error {
	return s.db.Delete(&Session{}, "expires_at < ?", time.Now()).Error
}
