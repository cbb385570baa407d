package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/frahmantamala/employee-management/internal"
)

// Service is the main auth service with dependencies
type Service struct {
	repo           RepositoryAPI
	tokenGenerator TokenGenerator
	logger         *slog.Logger
}

// NewService creates a new auth service
func NewService(repo RepositoryAPI, tokenGen TokenGenerator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:           repo,
		tokenGenerator: tokenGen,
		logger:         logger,
	}
}

// Authenticate validates credentials and returns an access/refresh pair. An
// unknown email, a wrong password and an inactive account all fail the same way.
func (s *Service) Authenticate(ctx context.Context, dto LoginDTO) (AuthTokens, error) {
	if appErr := dto.Validate(); appErr != nil {
		return AuthTokens{}, appErr
	}

	creds, err := s.repo.GetCredentialsByEmail(ctx, dto.Email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return AuthTokens{}, internal.ErrInvalidCredentials()
		}
		s.logger.Error("failed to load credentials", "error", err)
		return AuthTokens{}, internal.NewInternalError("failed to authenticate", err)
	}

	if !creds.IsActive {
		return AuthTokens{}, internal.ErrInvalidCredentials()
	}

	if err := VerifyPassword(creds.PasswordHash, dto.Password); err != nil {
		return AuthTokens{}, internal.ErrInvalidCredentials()
	}

	access, err := s.tokenGenerator.GenerateAccessToken(creds.UserID, creds.Email)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError("failed to issue token", err)
	}
	refresh, err := s.tokenGenerator.GenerateRefreshToken(creds.UserID, creds.Email)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError("failed to issue token", err)
	}

	s.logger.Info("tokens issued", "user_id", creds.UserID)
	return AuthTokens{Access: access, Refresh: refresh}, nil
}

// Refresh exchanges a refresh token for a new access token. The refresh token
// itself is not rotated.
func (s *Service) Refresh(ctx context.Context, dto RefreshTokenDTO) (AccessToken, error) {
	if appErr := dto.Validate(); appErr != nil {
		return AccessToken{}, appErr
	}

	claims, err := s.tokenGenerator.ValidateToken(dto.Refresh, TokenTypeRefresh)
	if err != nil {
		return AccessToken{}, tokenError(err)
	}

	if _, err := s.activeAccount(ctx, claims.UserID); err != nil {
		return AccessToken{}, err
	}

	access, err := s.tokenGenerator.GenerateAccessToken(claims.UserID, claims.Email)
	if err != nil {
		return AccessToken{}, internal.NewInternalError("failed to issue token", err)
	}
	return AccessToken{Access: access}, nil
}

// Identify resolves an access token to the caller. It is the gate run before
// every protected handler.
func (s *Service) Identify(ctx context.Context, accessToken string) (*internal.Identity, error) {
	if accessToken == "" {
		return nil, internal.ErrMissingToken()
	}

	claims, err := s.tokenGenerator.ValidateToken(accessToken, TokenTypeAccess)
	if err != nil {
		return nil, tokenError(err)
	}

	account, err := s.activeAccount(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	return &internal.Identity{UserID: account.ID, Email: account.Email}, nil
}

func (s *Service) activeAccount(ctx context.Context, id int64) (*Account, error) {
	account, err := s.repo.GetAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, internal.ErrInvalidToken()
		}
		s.logger.Error("failed to load account", "error", err, "user_id", id)
		return nil, internal.NewInternalError("failed to load account", err)
	}
	if !account.IsActive {
		return nil, internal.ErrUserInactive()
	}
	return account, nil
}

func tokenError(err error) *internal.AppError {
	if errors.Is(err, ErrTokenExpired) {
		return internal.ErrTokenExpired()
	}
	return internal.ErrInvalidToken().WithCause(err)
}
