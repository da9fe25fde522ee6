// AngelaMos | 2026
// dto.go

package book

import (
	"encoding/json"
	"time"

	"github.com/carterperez-dev/library-api/internal/author"
)

type CreateBookRequest struct {
	Title           string     `json:"title"           validate:"required,min=1,max=255"`
	ISBN10          *string    `json:"isbn10"          validate:"omitempty,len=10"`
	ISBN13          *string    `json:"isbn13"          validate:"omitempty,len=13"`
	Genre           *string    `json:"genre"           validate:"omitempty,max=100"`
	PublicationDate *time.Time `json:"publicationDate"`
	Description     *string    `json:"description"`
	CoverImageURL   *string    `json:"coverImageUrl"   validate:"omitempty,url"`
	AuthorIDs       []int64    `json:"authorIds"       validate:"omitempty,dive,min=1"`
}

type UpdateBookRequest struct {
	Title           *string    `json:"title"           validate:"omitempty,min=1,max=255"`
	ISBN10          *string    `json:"isbn10"          validate:"omitempty,len=10"`
	ISBN13          *string    `json:"isbn13"          validate:"omitempty,len=13"`
	Genre           *string    `json:"genre"           validate:"omitempty,max=100"`
	PublicationDate *time.Time `json:"publicationDate"`
	Description     *string    `json:"description"`
	CoverImageURL   *string    `json:"coverImageUrl"   validate:"omitempty,url"`
	AuthorIDs       *[]int64   `json:"authorIds"       validate:"omitempty,dive,min=1"`
}

type ImportBookRequest struct {
	ISBN string `json:"isbn" validate:"required,min=10,max=17"`
}

type BookResponse struct {
	ID               int64                   `json:"id"`
	Title            string                  `json:"title"`
	ISBN10           *string                 `json:"isbn10,omitempty"`
	ISBN13           *string                 `json:"isbn13,omitempty"`
	Genre            *string                 `json:"genre,omitempty"`
	PublicationDate  *time.Time              `json:"publicationDate,omitempty"`
	Description      *string                 `json:"description,omitempty"`
	CoverImageURL    *string                 `json:"coverImageUrl,omitempty"`
	ExternalSource   *string                 `json:"externalSource,omitempty"`
	ExternalID       *string                 `json:"externalId,omitempty"`
	ExternalMetadata json.RawMessage         `json:"externalMetadata,omitempty"`
	Authors          []author.AuthorResponse `json:"authors,omitempty"`
	CreatedAt        time.Time               `json:"createdAt"`
	UpdatedAt        time.Time               `json:"updatedAt"`
}

type ListBooksParams struct {
	Page     int
	PageSize int
	Genre    string
}

func (p *ListBooksParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = 20
	}
}

func (p *ListBooksParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToBookResponse(b *Book, authors []author.Author) BookResponse {
	resp := BookResponse{
		ID:               b.ID,
		Title:            b.Title,
		ISBN10:           b.ISBN10,
		ISBN13:           b.ISBN13,
		Genre:            b.Genre,
		PublicationDate:  b.PublicationDate,
		Description:      b.Description,
		CoverImageURL:    b.CoverImageURL,
		ExternalSource:   b.ExternalSource,
		ExternalID:       b.ExternalID,
		ExternalMetadata: b.ExternalMetadata,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
	if authors != nil {
		resp.Authors = author.ToAuthorResponseList(authors)
	}
	return resp
}

func ToBookResponseList(books []Book) []BookResponse {
	responses := make([]BookResponse, 0, len(books))
	for _, b := range books {
		responses = append(responses, ToBookResponse(&b, nil))
	}
	return responses
}
