// AngelaMos | 2026
// dto.go

package card

import (
	"time"
)

type CreateCardRequest struct {
	SerialNumber string `json:"serialNumber" validate:"omitempty,min=4,max=20"`
}

type CardResponse struct {
	ID           int64      `json:"id"`
	SerialNumber string     `json:"serialNumber"`
	Status       string     `json:"status"`
	UserID       *int64     `json:"userId,omitempty"`
	AssignedAt   *time.Time `json:"assignedAt,omitempty"`
	ArchivedAt   *time.Time `json:"archivedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type InventoryResponse struct {
	Free     int `json:"free"`
	InUse    int `json:"inUse"`
	Archived int `json:"archived"`
}

func ToCardResponse(c *Card) CardResponse {
	return CardResponse{
		ID:           c.ID,
		SerialNumber: c.SerialNumber,
		Status:       c.Status,
		UserID:       c.UserID,
		AssignedAt:   c.AssignedAt,
		ArchivedAt:   c.ArchivedAt,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func ToCardResponseList(cards []Card) []CardResponse {
	responses := make([]CardResponse, 0, len(cards))
	for _, c := range cards {
		responses = append(responses, ToCardResponse(&c))
	}
	return responses
}
