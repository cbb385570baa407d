package auth

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Credentials is what the login check needs from the account store.
type Credentials struct {
	UserID       int64
	Email        string
	PasswordHash string
	IsActive     bool
}

// Account is the token holder as seen by the auth gate.
type Account struct {
	ID       int64
	Email    string
	IsActive bool
}

type RepositoryAPI interface {
	// GetCredentialsByEmail returns ErrAccountNotFound when no account exists.
	GetCredentialsByEmail(ctx context.Context, email string) (*Credentials, error)
	GetAccountByID(ctx context.Context, id int64) (*Account, error)
}

// TokenGenerator creates and verifies signed tokens.
type TokenGenerator interface {
	GenerateAccessToken(userID int64, email string) (string, error)
	GenerateRefreshToken(userID int64, email string) (string, error)
	// ValidateToken verifies the signature, expiry and token_type against
	// expectedType.
	ValidateToken(tokenString, expectedType string) (*Claims, error)
}

// AuthTokens is the body returned by the obtain endpoint.
type AuthTokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// AccessToken is the body returned by the refresh endpoint.
type AccessToken struct {
	Access string `json:"access"`
}

// Claims represents JWT token claims
type Claims struct {
	UserID    int64  `json:"user_id"`
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrInvalidToken    = errors.New("invalid token")
	ErrTokenExpired    = errors.New("token expired")
	ErrWrongTokenType  = errors.New("token has wrong type")
)

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
