// AngelaMos | 2026
// service.go

package loan

import (
	"context"
	"fmt"
	"time"

	"github.com/carterperez-dev/library-api/internal/core"
)

// BookProvider is the slice of the book service loans depend on.
type BookProvider interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type Service struct {
	repo   Repository
	books  BookProvider
	period time.Duration
	now    func() time.Time
}

func NewService(
	repo Repository,
	books BookProvider,
	period time.Duration,
) *Service {
	return &Service{
		repo:   repo,
		books:  books,
		period: period,
		now:    time.Now,
	}
}

// Create opens a loan for the caller. A missing due date defaults to the
// configured loan period past the borrow time. The ongoing pre-check gives
// a clean conflict answer; the partial unique index settles races.
func (s *Service) Create(
	ctx context.Context,
	userID int64,
	req CreateLoanRequest,
) (*Loan, error) {
	exists, err := s.books.Exists(ctx, req.BookID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("book %d: %w", req.BookID, core.ErrNotFound)
	}

	ongoing, err := s.repo.HasOngoingByBookID(ctx, req.BookID)
	if err != nil {
		return nil, err
	}
	if ongoing {
		return nil, fmt.Errorf("book %d on loan: %w", req.BookID, core.ErrConflict)
	}

	borrowedAt := s.now().UTC()
	dueAt := req.DueAt
	if dueAt == nil {
		d := borrowedAt.Add(s.period)
		dueAt = &d
	}

	l := &Loan{
		UserID:     userID,
		BookID:     req.BookID,
		Status:     StatusOngoing,
		BorrowedAt: borrowedAt,
		DueAt:      dueAt,
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}

	return l, nil
}

// Return closes the loan. The final status is LATE when the return lands
// strictly after the due date; a loan without a due date is never late.
func (s *Service) Return(ctx context.Context, id int64) (*Loan, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if l.ReturnedAt != nil {
		return nil, fmt.Errorf("loan %d already returned: %w", id, core.ErrConflict)
	}

	returnedAt := s.now().UTC()
	status := StatusReturned
	if l.DueAt != nil && returnedAt.After(*l.DueAt) {
		status = StatusLate
	}

	return s.repo.Return(ctx, id, status, returnedAt)
}

func (s *Service) Get(ctx context.Context, id int64) (*Loan, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) FindOngoing(ctx context.Context) ([]Loan, error) {
	return s.repo.ListOngoing(ctx)
}

func (s *Service) FindOngoingByUser(
	ctx context.Context,
	userID int64,
) ([]Loan, error) {
	return s.repo.ListOngoingByUserID(ctx, userID)
}

func (s *Service) FindByUserID(
	ctx context.Context,
	userID int64,
) ([]Loan, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *Service) FindByBookID(
	ctx context.Context,
	bookID int64,
) ([]Loan, error) {
	return s.repo.ListByBookID(ctx, bookID)
}
