// AngelaMos | 2026
// service.go

package author

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/library-api/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(
	ctx context.Context,
	req CreateAuthorRequest,
) (*Author, error) {
	a := &Author{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		BirthDate: req.BirthDate,
		DeathDate: req.DeathDate,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Author, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(
	ctx context.Context,
	params ListAuthorsParams,
) ([]Author, int, error) {
	params.Normalize()
	return s.repo.List(ctx, params)
}

func (s *Service) Update(
	ctx context.Context,
	id int64,
	req UpdateAuthorRequest,
) (*Author, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		a.FirstName = req.FirstName
	}
	if req.LastName != nil {
		a.LastName = *req.LastName
	}
	if req.BirthDate != nil {
		a.BirthDate = req.BirthDate
	}
	if req.DeathDate != nil {
		a.DeathDate = req.DeathDate
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("delete author: %w", core.ErrNotFound)
	}
	return nil
}

func (s *Service) ListByBookID(
	ctx context.Context,
	bookID int64,
) ([]Author, error) {
	return s.repo.ListByBookID(ctx, bookID)
}
