// AngelaMos | 2026
// repository.go

package loan

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/carterperez-dev/library-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, loan *Loan) error
	GetByID(ctx context.Context, id int64) (*Loan, error)
	HasOngoingByBookID(ctx context.Context, bookID int64) (bool, error)
	ListOngoing(ctx context.Context) ([]Loan, error)
	ListOngoingByUserID(ctx context.Context, userID int64) ([]Loan, error)
	ListByUserID(ctx context.Context, userID int64) ([]Loan, error)
	ListByBookID(ctx context.Context, bookID int64) ([]Loan, error)
	Return(ctx context.Context, id int64, status string, returnedAt time.Time) (*Loan, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const loanColumns = `id, user_id, book_id, status, borrowed_at, due_at, returned_at, created_at, updated_at`

func (r *repository) Create(ctx context.Context, loan *Loan) error {
	query := `
		INSERT INTO loans (user_id, book_id, status, borrowed_at, due_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		loan.UserID,
		loan.BookID,
		loan.Status,
		loan.BorrowedAt,
		loan.DueAt,
	).Scan(&loan.ID, &loan.CreatedAt, &loan.UpdatedAt)
	if err != nil {
		// The partial unique index on (book_id) WHERE returned_at IS NULL
		// rejects a second ongoing loan for the same book.
		if core.IsUniqueViolation(err) {
			return fmt.Errorf("create loan: %w", core.ErrConflict)
		}
		return fmt.Errorf("create loan: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Loan, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM loans
		WHERE id = $1`, loanColumns)

	var loan Loan
	err := r.db.GetContext(ctx, &loan, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get loan: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get loan: %w", err)
	}

	return &loan, nil
}

func (r *repository) HasOngoingByBookID(
	ctx context.Context,
	bookID int64,
) (bool, error) {
	query := `SELECT EXISTS(
		SELECT 1 FROM loans WHERE book_id = $1 AND returned_at IS NULL)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, bookID); err != nil {
		return false, fmt.Errorf("check ongoing loan: %w", err)
	}

	return exists, nil
}

func (r *repository) ListOngoing(ctx context.Context) ([]Loan, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM loans
		WHERE returned_at IS NULL
		ORDER BY borrowed_at DESC, id DESC`, loanColumns)

	var loans []Loan
	if err := r.db.SelectContext(ctx, &loans, query); err != nil {
		return nil, fmt.Errorf("list ongoing loans: %w", err)
	}

	return loans, nil
}

func (r *repository) ListOngoingByUserID(
	ctx context.Context,
	userID int64,
) ([]Loan, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM loans
		WHERE user_id = $1 AND returned_at IS NULL
		ORDER BY borrowed_at DESC, id DESC`, loanColumns)

	var loans []Loan
	if err := r.db.SelectContext(ctx, &loans, query, userID); err != nil {
		return nil, fmt.Errorf("list ongoing loans: %w", err)
	}

	return loans, nil
}

func (r *repository) ListByUserID(
	ctx context.Context,
	userID int64,
) ([]Loan, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM loans
		WHERE user_id = $1
		ORDER BY borrowed_at DESC, id DESC`, loanColumns)

	var loans []Loan
	if err := r.db.SelectContext(ctx, &loans, query, userID); err != nil {
		return nil, fmt.Errorf("list loans by user: %w", err)
	}

	return loans, nil
}

func (r *repository) ListByBookID(
	ctx context.Context,
	bookID int64,
) ([]Loan, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM loans
		WHERE book_id = $1
		ORDER BY borrowed_at DESC, id DESC`, loanColumns)

	var loans []Loan
	if err := r.db.SelectContext(ctx, &loans, query, bookID); err != nil {
		return nil, fmt.Errorf("list loans by book: %w", err)
	}

	return loans, nil
}

// Return closes the loan in a single guarded update. The returned_at IS
// NULL predicate makes a double return lose the race at the row level, not
// just in the service pre-check.
func (r *repository) Return(
	ctx context.Context,
	id int64,
	status string,
	returnedAt time.Time,
) (*Loan, error) {
	query := fmt.Sprintf(`
		UPDATE loans
		SET status = $2, returned_at = $3, updated_at = NOW()
		WHERE id = $1 AND returned_at IS NULL
		RETURNING %s`, loanColumns)

	var loan Loan
	err := r.db.GetContext(ctx, &loan, query, id, status, returnedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("return loan: %w", core.ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("return loan: %w", err)
	}

	return &loan, nil
}
