// AngelaMos | 2026
// repository.go

package author

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/carterperez-dev/library-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, author *Author) error
	GetByID(ctx context.Context, id int64) (*Author, error)
	List(ctx context.Context, params ListAuthorsParams) ([]Author, int, error)
	Update(ctx context.Context, author *Author) error
	Delete(ctx context.Context, id int64) (bool, error)
	ExistAll(ctx context.Context, ids []int64) (bool, error)
	ListByBookID(ctx context.Context, bookID int64) ([]Author, error)
	ReplaceBookAuthors(ctx context.Context, bookID int64, authorIDs []int64) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const authorColumns = `id, first_name, last_name, birth_date, death_date, created_at, updated_at`

func (r *repository) Create(ctx context.Context, author *Author) error {
	query := `
		INSERT INTO authors (first_name, last_name, birth_date, death_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		author.FirstName,
		author.LastName,
		author.BirthDate,
		author.DeathDate,
	).Scan(&author.ID, &author.CreatedAt, &author.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create author: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Author, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM authors
		WHERE id = $1`, authorColumns)

	var author Author
	err := r.db.GetContext(ctx, &author, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get author: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get author: %w", err)
	}

	return &author, nil
}

func (r *repository) List(
	ctx context.Context,
	params ListAuthorsParams,
) ([]Author, int, error) {
	where := ""
	args := []any{}
	if params.Search != "" {
		where = ` WHERE first_name ILIKE $1 OR last_name ILIKE $1`
		args = append(args, "%"+escapeLike(params.Search)+"%")
	}

	countQuery := `SELECT COUNT(*) FROM authors` + where
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count authors: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM authors%s
		ORDER BY last_name, first_name, id
		LIMIT $%d OFFSET $%d`,
		authorColumns, where, len(args)+1, len(args)+2)
	args = append(args, params.PageSize, params.Offset())

	var authors []Author
	if err := r.db.SelectContext(ctx, &authors, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list authors: %w", err)
	}

	return authors, total, nil
}

func (r *repository) Update(ctx context.Context, author *Author) error {
	query := `
		UPDATE authors
		SET first_name = $2, last_name = $3, birth_date = $4,
		    death_date = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		author.ID,
		author.FirstName,
		author.LastName,
		author.BirthDate,
		author.DeathDate,
	).Scan(&author.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update author: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update author: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) (bool, error) {
	query := `DELETE FROM authors WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("delete author: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete author: %w", err)
	}

	return rows > 0, nil
}

// ExistAll reports whether every id in the set names an existing author.
func (r *repository) ExistAll(
	ctx context.Context,
	ids []int64,
) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}

	query := `
		SELECT COUNT(DISTINCT id) FROM authors
		WHERE id = ANY($1::bigint[])`

	var count int
	if err := r.db.GetContext(ctx, &count, query, ids); err != nil {
		return false, fmt.Errorf("check authors exist: %w", err)
	}

	distinct := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		distinct[id] = struct{}{}
	}

	return count == len(distinct), nil
}

func (r *repository) ListByBookID(
	ctx context.Context,
	bookID int64,
) ([]Author, error) {
	query := fmt.Sprintf(`
		SELECT a.%s
		FROM authors a
		JOIN book_authors ba ON ba.author_id = a.id
		WHERE ba.book_id = $1
		ORDER BY a.id`,
		strings.ReplaceAll(authorColumns, ", ", ", a."))

	var authors []Author
	if err := r.db.SelectContext(ctx, &authors, query, bookID); err != nil {
		return nil, fmt.Errorf("list book authors: %w", err)
	}

	return authors, nil
}

// ReplaceBookAuthors swaps a book's author set wholesale. Callers run it
// inside the transaction that touches the book row.
func (r *repository) ReplaceBookAuthors(
	ctx context.Context,
	bookID int64,
	authorIDs []int64,
) error {
	deleteQuery := `DELETE FROM book_authors WHERE book_id = $1`
	if _, err := r.db.ExecContext(ctx, deleteQuery, bookID); err != nil {
		return fmt.Errorf("clear book authors: %w", err)
	}

	if len(authorIDs) == 0 {
		return nil
	}

	insertQuery := `
		INSERT INTO book_authors (book_id, author_id)
		SELECT $1, unnest($2::bigint[])`
	if _, err := r.db.ExecContext(ctx, insertQuery, bookID, authorIDs); err != nil {
		return fmt.Errorf("set book authors: %w", err)
	}

	return nil
}

func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
