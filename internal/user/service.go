package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/frahmantamala/employee-management/internal"
	userDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/user"
)

type Service struct {
	repo Repository
}

type Repository interface {
	GetByID(ctx context.Context, userID int64) (*userDatamodel.User, error)
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) GetByID(ctx context.Context, userID int64) (*User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, internal.ErrInvalidToken()
		}
		return nil, internal.NewInternalError("failed to get user", fmt.Errorf("get user by id: %w", err))
	}
	return FromDataModel(u), nil
}
