// AngelaMos | 2026
// repository.go

package card

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/library-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, card *Card) error
	GetByID(ctx context.Context, id int64) (*Card, error)
	ExistsBySerialNumber(ctx context.Context, serial string) (bool, error)
	FindFirstFree(ctx context.Context) (*Card, error)
	FindFirstFreeForUpdate(ctx context.Context) (*Card, error)
	Assign(ctx context.Context, cardID, userID int64) (*Card, error)
	ReleaseByUserID(ctx context.Context, userID int64) error
	Archive(ctx context.Context, id int64) (*Card, error)
	List(ctx context.Context, status string) ([]Card, error)
	Delete(ctx context.Context, id int64) (bool, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const cardColumns = `id, serial_number, status, user_id, assigned_at,
		       archived_at, created_at, updated_at`

func (r *repository) Create(ctx context.Context, card *Card) error {
	query := `
		INSERT INTO membership_cards (serial_number, status)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		card.SerialNumber,
		card.Status,
	).Scan(&card.ID, &card.CreatedAt, &card.UpdatedAt)
	if err != nil {
		if core.IsUniqueViolation(err) {
			return fmt.Errorf("create card: %w", core.ErrConflict)
		}
		return fmt.Errorf("create card: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Card, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM membership_cards
		WHERE id = $1`, cardColumns)

	var card Card
	err := r.db.GetContext(ctx, &card, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get card: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get card: %w", err)
	}

	return &card, nil
}

func (r *repository) ExistsBySerialNumber(
	ctx context.Context,
	serial string,
) (bool, error) {
	query := `SELECT EXISTS(
		SELECT 1 FROM membership_cards WHERE serial_number = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, serial); err != nil {
		return false, fmt.Errorf("check serial exists: %w", err)
	}

	return exists, nil
}

// FindFirstFree picks the lowest-id FREE card so selection is deterministic
// rather than left to storage-layer scan order.
func (r *repository) FindFirstFree(ctx context.Context) (*Card, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM membership_cards
		WHERE status = 'FREE'
		ORDER BY id
		LIMIT 1`, cardColumns)

	var card Card
	err := r.db.GetContext(ctx, &card, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find free card: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find free card: %w", err)
	}

	return &card, nil
}

// FindFirstFreeForUpdate locks the selected row for the duration of the
// surrounding transaction. SKIP LOCKED lets concurrent registrations claim
// different cards instead of queueing on the same one.
func (r *repository) FindFirstFreeForUpdate(
	ctx context.Context,
) (*Card, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM membership_cards
		WHERE status = 'FREE'
		ORDER BY id
		LIMIT 1
		FOR UPDATE SKIP LOCKED`, cardColumns)

	var card Card
	err := r.db.GetContext(ctx, &card, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find free card: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find free card: %w", err)
	}

	return &card, nil
}

func (r *repository) Assign(
	ctx context.Context,
	cardID, userID int64,
) (*Card, error) {
	query := fmt.Sprintf(`
		UPDATE membership_cards
		SET status = 'IN_USE', user_id = $2, assigned_at = NOW(),
		    updated_at = NOW()
		WHERE id = $1 AND status = 'FREE'
		RETURNING %s`, cardColumns)

	var card Card
	err := r.db.GetContext(ctx, &card, query, cardID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("assign card: %w", core.ErrConflict)
	}
	if err != nil {
		// The partial unique index on (user_id) WHERE status = 'IN_USE'
		// rejects a second active card for the same user.
		if core.IsUniqueViolation(err) {
			return nil, fmt.Errorf("assign card: %w", core.ErrConflict)
		}
		return nil, fmt.Errorf("assign card: %w", err)
	}

	return &card, nil
}

func (r *repository) ReleaseByUserID(
	ctx context.Context,
	userID int64,
) error {
	query := `
		UPDATE membership_cards
		SET status = 'FREE', user_id = NULL, assigned_at = NULL,
		    updated_at = NOW()
		WHERE user_id = $1 AND status = 'IN_USE'`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("release card: %w", err)
	}

	return nil
}

func (r *repository) Archive(ctx context.Context, id int64) (*Card, error) {
	query := fmt.Sprintf(`
		UPDATE membership_cards
		SET status = 'ARCHIVED', user_id = NULL, archived_at = NOW(),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING %s`, cardColumns)

	var card Card
	err := r.db.GetContext(ctx, &card, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("archive card: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("archive card: %w", err)
	}

	return &card, nil
}

func (r *repository) List(
	ctx context.Context,
	status string,
) ([]Card, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM membership_cards`, cardColumns)

	var args []any
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY id`

	var cards []Card
	if err := r.db.SelectContext(ctx, &cards, query, args...); err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}

	return cards, nil
}

func (r *repository) Delete(ctx context.Context, id int64) (bool, error) {
	query := `DELETE FROM membership_cards WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("delete card: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete card: %w", err)
	}

	return rows > 0, nil
}

func (r *repository) CountByStatus(
	ctx context.Context,
) (map[string]int, error) {
	query := `
		SELECT status, COUNT(*) AS count
		FROM membership_cards
		GROUP BY status`

	var rows []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("count cards: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}

	return counts, nil
}
