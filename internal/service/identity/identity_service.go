package identity

import (
	"errors"
	"fmt"

	"supernova/internal/auth"
	"supernova/internal/errs"
	"supernova/internal/logger"
	"supernova/internal/repository/db"
	"supernova/pkg/validation"

	"golang.org/x/crypto/bcrypt"
)

// CredentialStore hashes and verifies passwords. Production uses bcrypt;
// tests swap in a cheap implementation.
type CredentialStore interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// BcryptStore is the bcrypt-backed CredentialStore
type BcryptStore struct {
	cost int
}

// NewBcryptStore creates a BcryptStore with the default cost
func NewBcryptStore() *BcryptStore {
	return &BcryptStore{cost: bcrypt.DefaultCost}
}

func (s *BcryptStore) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return string(hash), nil
}

func (s *BcryptStore) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// RegisterRequest contains the fields for creating an account
type RegisterRequest struct {
	Username string
	Email    string
	Password string
}

// Session is the result of a successful register or login
type Session struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// IdentityService handles account creation and credential checks
type IdentityService struct {
	db        db.Database
	creds     CredentialStore
	tokens    *auth.Manager
	validator *validation.AuthRequestValidator
}

// NewIdentityService creates a new IdentityService
func NewIdentityService(database db.Database, creds CredentialStore, tokens *auth.Manager) *IdentityService {
	return &IdentityService{
		db:        database,
		creds:     creds,
		tokens:    tokens,
		validator: validation.NewAuthRequestValidator(),
	}
}

// Register creates a new account and signs the user in. Username and email
// conflicts are case-insensitive.
func (s *IdentityService) Register(req RegisterRequest) (*Session, error) {
	if err := s.validator.ValidateRegisterRequest(req.Username, req.Email, req.Password); err != nil {
		return nil, err
	}

	hash, err := s.creds.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.db.CreateUser(req.Username, req.Email, hash)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrUsernameTaken):
			return nil, &errs.ConflictError{Resource: "username"}
		case errors.Is(err, db.ErrEmailTaken):
			return nil, &errs.ConflictError{Resource: "email"}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Log.WithField("username", user.Username).Info("User registered")

	return s.newSession(user)
}

// Login checks credentials and returns a fresh session. An unknown username
// and a wrong password fail differently so the UI can tell them apart.
func (s *IdentityService) Login(username, password string) (*Session, error) {
	if err := s.validator.ValidateLoginRequest(username, password); err != nil {
		return nil, err
	}

	user, err := s.db.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, &errs.NotFoundError{Resource: "user"}
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.creds.Compare(user.PasswordHash, password); err != nil {
		logger.Log.WithField("username", username).Warn("Login failed: invalid password")
		return nil, &errs.AuthError{Reason: "invalid password"}
	}

	logger.Log.WithField("username", user.Username).Info("User logged in")

	return s.newSession(user)
}

func (s *IdentityService) newSession(user *db.User) (*Session, error) {
	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &Session{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	}, nil
}
