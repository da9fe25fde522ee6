// AngelaMos | 2026
// entity.go

package book

import (
	"encoding/json"
	"time"
)

// Book rows carry optional provenance columns when the record was imported
// from or enriched by an external catalog. search_vector is maintained by a
// database trigger and never mapped here.
type Book struct {
	ID               int64           `db:"id"`
	Title            string          `db:"title"`
	ISBN10           *string         `db:"isbn_10"`
	ISBN13           *string         `db:"isbn_13"`
	Genre            *string         `db:"genre"`
	PublicationDate  *time.Time      `db:"publication_date"`
	Description      *string         `db:"description"`
	CoverImageURL    *string         `db:"cover_image_url"`
	ExternalSource   *string         `db:"external_source"`
	ExternalID       *string         `db:"external_id"`
	ExternalMetadata json.RawMessage `db:"external_metadata"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at"`
}
