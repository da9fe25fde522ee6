// AngelaMos | 2026
// entity.go

package author

import (
	"time"
)

type Author struct {
	ID        int64      `db:"id"`
	FirstName *string    `db:"first_name"`
	LastName  string     `db:"last_name"`
	BirthDate *time.Time `db:"birth_date"`
	DeathDate *time.Time `db:"death_date"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
}

// FullName joins first and last name; single-name authors keep just the
// last name.
func (a *Author) FullName() string {
	if a.FirstName == nil || *a.FirstName == "" {
		return a.LastName
	}
	return *a.FirstName + " " + a.LastName
}
