// AngelaMos | 2026
// entity.go

package loan

import (
	"time"
)

type Loan struct {
	ID         int64      `db:"id"`
	UserID     int64      `db:"user_id"`
	BookID     int64      `db:"book_id"`
	Status     string     `db:"status"`
	BorrowedAt time.Time  `db:"borrowed_at"`
	DueAt      *time.Time `db:"due_at"`
	ReturnedAt *time.Time `db:"returned_at"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
}

func (l *Loan) IsOngoing() bool {
	return l.ReturnedAt == nil
}

const (
	StatusOngoing  = "ONGOING"
	StatusReturned = "RETURNED"
	StatusLate     = "LATE"
)
