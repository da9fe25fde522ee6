// AngelaMos | 2026
// service.go

package card

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/carterperez-dev/library-api/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create adds a card to the pool. A missing serial number gets a generated
// one; a colliding serial surfaces as a conflict.
func (s *Service) Create(
	ctx context.Context,
	req CreateCardRequest,
) (*Card, error) {
	serial := req.SerialNumber
	if serial == "" {
		generated, err := s.freshSerialNumber(ctx)
		if err != nil {
			return nil, err
		}
		serial = generated
	}

	c := &Card{
		SerialNumber: serial,
		Status:       StatusFree,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Card, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) FindFirstFree(ctx context.Context) (*Card, error) {
	return s.repo.FindFirstFree(ctx)
}

func (s *Service) AssignToUser(
	ctx context.Context,
	cardID, userID int64,
) (*Card, error) {
	return s.repo.Assign(ctx, cardID, userID)
}

func (s *Service) Archive(ctx context.Context, id int64) (*Card, error) {
	return s.repo.Archive(ctx, id)
}

func (s *Service) List(ctx context.Context, status string) ([]Card, error) {
	return s.repo.List(ctx, status)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("delete card: %w", core.ErrNotFound)
	}
	return nil
}

func (s *Service) Inventory(ctx context.Context) (*InventoryResponse, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	return &InventoryResponse{
		Free:     counts[StatusFree],
		InUse:    counts[StatusInUse],
		Archived: counts[StatusArchived],
	}, nil
}

const (
	serialDigits   = 8
	serialAttempts = 5
)

// freshSerialNumber generates a serial not already in the pool. The unique
// constraint on serial_number backstops the check-then-insert race.
func (s *Service) freshSerialNumber(ctx context.Context) (string, error) {
	for range serialAttempts {
		serial, err := generateSerialNumber()
		if err != nil {
			return "", fmt.Errorf("generate serial: %w", err)
		}

		exists, err := s.repo.ExistsBySerialNumber(ctx, serial)
		if err != nil {
			return "", err
		}
		if !exists {
			return serial, nil
		}
	}

	return "", fmt.Errorf("generate serial: %w", core.ErrConflict)
}

// generateSerialNumber produces serials like "LIB-40381276".
func generateSerialNumber() (string, error) {
	max := big.NewInt(1)
	for range serialDigits {
		max.Mul(max, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("LIB-%0*d", serialDigits, n), nil
}
