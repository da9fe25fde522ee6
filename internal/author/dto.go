// AngelaMos | 2026
// dto.go

package author

import (
	"time"
)

type CreateAuthorRequest struct {
	FirstName *string    `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName  string     `json:"lastName"  validate:"required,min=1,max=100"`
	BirthDate *time.Time `json:"birthDate"`
	DeathDate *time.Time `json:"deathDate"`
}

type UpdateAuthorRequest struct {
	FirstName *string    `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName  *string    `json:"lastName"  validate:"omitempty,min=1,max=100"`
	BirthDate *time.Time `json:"birthDate"`
	DeathDate *time.Time `json:"deathDate"`
}

type AuthorResponse struct {
	ID        int64      `json:"id"`
	FirstName *string    `json:"firstName,omitempty"`
	LastName  string     `json:"lastName"`
	BirthDate *time.Time `json:"birthDate,omitempty"`
	DeathDate *time.Time `json:"deathDate,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type ListAuthorsParams struct {
	Page     int
	PageSize int
	Search   string
}

func (p *ListAuthorsParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = 20
	}
}

func (p *ListAuthorsParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToAuthorResponse(a *Author) AuthorResponse {
	return AuthorResponse{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		BirthDate: a.BirthDate,
		DeathDate: a.DeathDate,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func ToAuthorResponseList(authors []Author) []AuthorResponse {
	responses := make([]AuthorResponse, 0, len(authors))
	for _, a := range authors {
		responses = append(responses, ToAuthorResponse(&a))
	}
	return responses
}
