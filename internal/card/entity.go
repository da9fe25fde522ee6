// AngelaMos | 2026
// entity.go

package card

import (
	"time"
)

type Card struct {
	ID           int64      `db:"id"`
	SerialNumber string     `db:"serial_number"`
	Status       string     `db:"status"`
	UserID       *int64     `db:"user_id"`
	AssignedAt   *time.Time `db:"assigned_at"`
	ArchivedAt   *time.Time `db:"archived_at"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

func (c *Card) IsFree() bool {
	return c.Status == StatusFree
}

func (c *Card) IsArchived() bool {
	return c.Status == StatusArchived
}

const (
	StatusFree     = "FREE"
	StatusInUse    = "IN_USE"
	StatusArchived = "ARCHIVED"
)
