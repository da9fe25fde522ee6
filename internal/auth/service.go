// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/library-api/internal/card"
	"github.com/carterperez-dev/library-api/internal/core"
	"github.com/carterperez-dev/library-api/internal/user"
)

// registerTxFunc runs registration's writes against repositories bound to
// one transaction.
type registerTxFunc func(users user.Repository, cards card.Repository) error

type Service struct {
	users  user.Repository
	jwt    *JWTManager
	logger *slog.Logger
	inTx   func(ctx context.Context, fn registerTxFunc) error
}

func NewService(
	db *sqlx.DB,
	users user.Repository,
	jwtManager *JWTManager,
	logger *slog.Logger,
) *Service {
	return &Service{
		users:  users,
		jwt:    jwtManager,
		logger: logger,
		inTx: func(ctx context.Context, fn registerTxFunc) error {
			return core.InTx(ctx, db, func(tx *sqlx.Tx) error {
				return fn(user.NewRepository(tx), card.NewRepository(tx))
			})
		},
	}
}

// Register creates an account and claims a membership card atomically.
// The locked card pick keeps concurrent registrations from fighting over
// one card, and a pool with no FREE card rejects the whole registration.
func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Hashing is deliberately slow; do it before the transaction opens.
	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &user.User{
		Email:        email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: passwordHash,
		Role:         user.RoleUser,
	}

	// Card capacity is checked before the email: an exhausted pool answers
	// NoCapacity even when the email is also taken.
	err = s.inTx(ctx, func(users user.Repository, cards card.Repository) error {
		freeCard, err := cards.FindFirstFreeForUpdate(ctx)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				return fmt.Errorf("no free membership card: %w", core.ErrNoCapacity)
			}
			return err
		}

		taken, err := users.ExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("email taken: %w", core.ErrConflict)
		}

		if err := users.Create(ctx, u); err != nil {
			return err
		}

		if _, err := cards.Assign(ctx, freeCard.ID, u.ID); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		slog.Int64("user_id", u.ID),
		slog.String("email", u.Email),
	)

	return s.buildAuthResponse(u)
}

// Login verifies credentials in constant time relative to account
// existence, so response timing does not leak which emails are registered.
func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			_, _, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, fmt.Errorf("login: %w", core.ErrInvalidCredentials)
		}
		return nil, err
	}

	valid, newHash, err := core.VerifyPasswordTimingSafe(
		req.Password, &u.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return nil, fmt.Errorf("login: %w", core.ErrInvalidCredentials)
	}

	if newHash != "" {
		u.PasswordHash = newHash
		if err := s.users.Update(ctx, u); err != nil {
			s.logger.Warn("persist rehashed password",
				slog.Int64("user_id", u.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	return s.buildAuthResponse(u)
}

func (s *Service) Me(ctx context.Context, userID int64) (*user.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *Service) buildAuthResponse(u *user.User) (*AuthResponse, error) {
	token, err := s.jwt.CreateAccessToken(AccessTokenClaims{
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}

	return &AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.jwt.AccessTokenExpire().Seconds()),
		User:        user.ToUserResponse(u),
	}, nil
}
