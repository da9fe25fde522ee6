// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/library-api/internal/card"
	"github.com/carterperez-dev/library-api/internal/core"
)

type Service struct {
	db   *sqlx.DB
	repo Repository
}

func NewService(db *sqlx.DB, repo Repository) *Service {
	return &Service{db: db, repo: repo}
}

func (s *Service) Create(
	ctx context.Context,
	req CreateUserRequest,
) (*User, error) {
	email := strings.ToLower(req.Email)

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("create user: email taken: %w", core.ErrConflict)
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = RoleUser
	}

	u := &User{
		Email:        email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: passwordHash,
		Role:         role,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.GetByEmail(ctx, strings.ToLower(email))
}

func (s *Service) Update(
	ctx context.Context,
	id int64,
	req UpdateUserRequest,
) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		email := strings.ToLower(*req.Email)
		if email != u.Email {
			exists, existsErr := s.repo.ExistsByEmail(ctx, email)
			if existsErr != nil {
				return nil, existsErr
			}
			if exists {
				return nil, fmt.Errorf(
					"update user: email taken: %w",
					core.ErrConflict,
				)
			}
			u.Email = email
		}
	}

	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}

	if req.LastName != nil {
		u.LastName = *req.LastName
	}

	if req.Password != nil {
		hash, hashErr := core.HashPassword(*req.Password)
		if hashErr != nil {
			return nil, fmt.Errorf("hash password: %w", hashErr)
		}
		u.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// Delete removes the user together with the card binding. Loans go away via
// the FK cascade; the card row survives and returns to the FREE pool.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	return core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		cards := card.NewRepository(tx)
		if err := cards.ReleaseByUserID(ctx, id); err != nil {
			return err
		}

		users := NewRepository(tx)
		deleted, err := users.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("delete user: %w", core.ErrNotFound)
		}

		return nil
	})
}

func (s *Service) List(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	return s.repo.List(ctx, params)
}
