// AngelaMos | 2026
// dto.go

package loan

import (
	"time"
)

type CreateLoanRequest struct {
	BookID int64      `json:"bookId" validate:"required,min=1"`
	DueAt  *time.Time `json:"dueAt"`
}

type LoanResponse struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"userId"`
	BookID     int64      `json:"bookId"`
	Status     string     `json:"status"`
	BorrowedAt time.Time  `json:"borrowedAt"`
	DueAt      *time.Time `json:"dueAt,omitempty"`
	ReturnedAt *time.Time `json:"returnedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func ToLoanResponse(l *Loan) LoanResponse {
	return LoanResponse{
		ID:         l.ID,
		UserID:     l.UserID,
		BookID:     l.BookID,
		Status:     l.Status,
		BorrowedAt: l.BorrowedAt,
		DueAt:      l.DueAt,
		ReturnedAt: l.ReturnedAt,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
}

func ToLoanResponseList(loans []Loan) []LoanResponse {
	responses := make([]LoanResponse, 0, len(loans))
	for _, l := range loans {
		responses = append(responses, ToLoanResponse(&l))
	}
	return responses
}
