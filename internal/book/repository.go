// AngelaMos | 2026
// repository.go

package book

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/carterperez-dev/library-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, book *Book) error
	GetByID(ctx context.Context, id int64) (*Book, error)
	List(ctx context.Context, params ListBooksParams) ([]Book, int, error)
	Update(ctx context.Context, book *Book) error
	Delete(ctx context.Context, id int64) (bool, error)
	Exists(ctx context.Context, id int64) (bool, error)
	ExistsByISBN13(ctx context.Context, isbn13 string) (bool, error)
	ExistsByISBN13Excluding(ctx context.Context, isbn13 string, excludeID int64) (bool, error)
	Search(ctx context.Context, query, genre string, limit int) ([]Book, error)
	SearchSimple(ctx context.Context, title, genre, authorName string, limit int) ([]Book, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const bookColumns = `id, title, isbn_10, isbn_13, genre, publication_date, description, cover_image_url, external_source, external_id, external_metadata, created_at, updated_at`

func (r *repository) Create(ctx context.Context, book *Book) error {
	query := `
		INSERT INTO books (title, isbn_10, isbn_13, genre, publication_date,
			description, cover_image_url, external_source, external_id,
			external_metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		book.Title,
		book.ISBN10,
		book.ISBN13,
		book.Genre,
		book.PublicationDate,
		book.Description,
		book.CoverImageURL,
		book.ExternalSource,
		book.ExternalID,
		book.ExternalMetadata,
	).Scan(&book.ID, &book.CreatedAt, &book.UpdatedAt)
	if err != nil {
		if core.IsUniqueViolation(err) {
			return fmt.Errorf("create book: %w", core.ErrConflict)
		}
		return fmt.Errorf("create book: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Book, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM books
		WHERE id = $1`, bookColumns)

	var book Book
	err := r.db.GetContext(ctx, &book, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get book: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}

	return &book, nil
}

func (r *repository) List(
	ctx context.Context,
	params ListBooksParams,
) ([]Book, int, error) {
	where := ""
	args := []any{}
	if params.Genre != "" {
		where = ` WHERE genre = $1`
		args = append(args, params.Genre)
	}

	countQuery := `SELECT COUNT(*) FROM books` + where
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM books%s
		ORDER BY title, id
		LIMIT $%d OFFSET $%d`,
		bookColumns, where, len(args)+1, len(args)+2)
	args = append(args, params.PageSize, params.Offset())

	var books []Book
	if err := r.db.SelectContext(ctx, &books, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list books: %w", err)
	}

	return books, total, nil
}

func (r *repository) Update(ctx context.Context, book *Book) error {
	query := `
		UPDATE books
		SET title = $2, isbn_10 = $3, isbn_13 = $4, genre = $5,
		    publication_date = $6, description = $7, cover_image_url = $8,
		    external_source = $9, external_id = $10, external_metadata = $11,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		book.ID,
		book.Title,
		book.ISBN10,
		book.ISBN13,
		book.Genre,
		book.PublicationDate,
		book.Description,
		book.CoverImageURL,
		book.ExternalSource,
		book.ExternalID,
		book.ExternalMetadata,
	).Scan(&book.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update book: %w", core.ErrNotFound)
	}
	if err != nil {
		if core.IsUniqueViolation(err) {
			return fmt.Errorf("update book: %w", core.ErrConflict)
		}
		return fmt.Errorf("update book: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) (bool, error) {
	query := `DELETE FROM books WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("delete book: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete book: %w", err)
	}

	return rows > 0, nil
}

func (r *repository) Exists(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM books WHERE id = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		return false, fmt.Errorf("check book exists: %w", err)
	}

	return exists, nil
}

func (r *repository) ExistsByISBN13(
	ctx context.Context,
	isbn13 string,
) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM books WHERE isbn_13 = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, isbn13); err != nil {
		return false, fmt.Errorf("check isbn exists: %w", err)
	}

	return exists, nil
}

func (r *repository) ExistsByISBN13Excluding(
	ctx context.Context,
	isbn13 string,
	excludeID int64,
) (bool, error) {
	query := `SELECT EXISTS(
		SELECT 1 FROM books WHERE isbn_13 = $1 AND id <> $2)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, isbn13, excludeID)
	if err != nil {
		return false, fmt.Errorf("check isbn exists: %w", err)
	}

	return exists, nil
}

// Search ranks against the trigger-maintained tsvector over title,
// description and genre. A non-empty genre narrows results to that exact
// genre.
func (r *repository) Search(
	ctx context.Context,
	query, genre string,
	limit int,
) ([]Book, error) {
	where := `search_vector @@ websearch_to_tsquery('english', $1)`
	args := []any{query}
	if genre != "" {
		args = append(args, genre)
		where += fmt.Sprintf(` AND genre = $%d`, len(args))
	}

	sqlQuery := fmt.Sprintf(`
		SELECT %s
		FROM books
		WHERE %s
		ORDER BY ts_rank(search_vector,
			websearch_to_tsquery('english', $1)) DESC, id
		LIMIT $%d`, bookColumns, where, len(args)+1)
	args = append(args, limit)

	var books []Book
	err := r.db.SelectContext(ctx, &books, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}

	return books, nil
}

// SearchSimple combines the provided filters conjunctively: title and
// author name match substrings, genre matches exactly. Empty filters are
// skipped.
func (r *repository) SearchSimple(
	ctx context.Context,
	title, genre, authorName string,
	limit int,
) ([]Book, error) {
	var conditions []string
	var args []any

	if title != "" {
		args = append(args, "%"+escapeLike(title)+"%")
		conditions = append(conditions,
			fmt.Sprintf(`b.title ILIKE $%d`, len(args)))
	}
	if genre != "" {
		args = append(args, genre)
		conditions = append(conditions,
			fmt.Sprintf(`b.genre = $%d`, len(args)))
	}
	if authorName != "" {
		args = append(args, "%"+escapeLike(authorName)+"%")
		conditions = append(conditions, fmt.Sprintf(`EXISTS (
			SELECT 1
			FROM book_authors ba
			JOIN authors a ON a.id = ba.author_id
			WHERE ba.book_id = b.id
			  AND COALESCE(a.first_name || ' ', '') || a.last_name
			      ILIKE $%d)`, len(args)))
	}

	where := "TRUE"
	if len(conditions) > 0 {
		where = strings.Join(conditions, " AND ")
	}

	sqlQuery := fmt.Sprintf(`
		SELECT %s
		FROM books b
		WHERE %s
		ORDER BY b.title, b.id
		LIMIT $%d`,
		"b."+strings.ReplaceAll(bookColumns, ", ", ", b."),
		where, len(args)+1)
	args = append(args, limit)

	var books []Book
	err := r.db.SelectContext(ctx, &books, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}

	return books, nil
}

func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
