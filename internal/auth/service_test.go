// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/library-api/internal/card"
	"github.com/carterperez-dev/library-api/internal/core"
	"github.com/carterperez-dev/library-api/internal/user"
)

type fakeUserRepo struct {
	byEmail map[string]*user.User
	byID    map[int64]*user.User
	updated []int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*user.User),
		byID:    make(map[int64]*user.User),
	}
}

func (f *fakeUserRepo) add(u *user.User) {
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
}

func (f *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	u.ID = int64(len(f.byID) + 1)
	f.add(u)
	return nil
}

func (f *fakeUserRepo) GetByID(
	_ context.Context,
	id int64,
) (*user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(
	_ context.Context,
	email string,
) (*user.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, core.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) ExistsByEmail(
	_ context.Context,
	email string,
) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *user.User) error {
	f.updated = append(f.updated, u.ID)
	f.add(u)
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, _ int64) (bool, error) {
	return false, nil
}

func (f *fakeUserRepo) List(
	_ context.Context,
	_ user.ListUsersParams,
) ([]user.User, int, error) {
	return nil, 0, nil
}

type fakeCardRepo struct {
	cards map[int64]*card.Card
}

func newFakeCardRepo(freeIDs ...int64) *fakeCardRepo {
	f := &fakeCardRepo{cards: make(map[int64]*card.Card)}
	for _, id := range freeIDs {
		f.cards[id] = &card.Card{
			ID:           id,
			SerialNumber: fmt.Sprintf("CARD-%04d", id),
			Status:       card.StatusFree,
		}
	}
	return f
}

func (f *fakeCardRepo) Create(_ context.Context, _ *card.Card) error {
	return nil
}

func (f *fakeCardRepo) GetByID(
	_ context.Context,
	id int64,
) (*card.Card, error) {
	c, ok := f.cards[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return c, nil
}

func (f *fakeCardRepo) ExistsBySerialNumber(
	_ context.Context,
	_ string,
) (bool, error) {
	return false, nil
}

func (f *fakeCardRepo) FindFirstFree(
	_ context.Context,
) (*card.Card, error) {
	var best *card.Card
	for _, c := range f.cards {
		if c.Status != card.StatusFree {
			continue
		}
		if best == nil || c.ID < best.ID {
			best = c
		}
	}
	if best == nil {
		return nil, core.ErrNotFound
	}
	return best, nil
}

func (f *fakeCardRepo) FindFirstFreeForUpdate(
	ctx context.Context,
) (*card.Card, error) {
	return f.FindFirstFree(ctx)
}

func (f *fakeCardRepo) Assign(
	_ context.Context,
	cardID, userID int64,
) (*card.Card, error) {
	c, ok := f.cards[cardID]
	if !ok || c.Status != card.StatusFree {
		return nil, core.ErrConflict
	}
	c.Status = card.StatusInUse
	c.UserID = &userID
	return c, nil
}

func (f *fakeCardRepo) ReleaseByUserID(_ context.Context, _ int64) error {
	return nil
}

func (f *fakeCardRepo) Archive(
	_ context.Context,
	_ int64,
) (*card.Card, error) {
	return nil, core.ErrNotFound
}

func (f *fakeCardRepo) List(
	_ context.Context,
	_ string,
) ([]card.Card, error) {
	return nil, nil
}

func (f *fakeCardRepo) Delete(_ context.Context, _ int64) (bool, error) {
	return false, nil
}

func (f *fakeCardRepo) CountByStatus(
	_ context.Context,
) (map[string]int, error) {
	return nil, nil
}

func newLoginService(t *testing.T, repo user.Repository) *Service {
	t.Helper()

	manager := newTestJWTManager(t, time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(nil, repo, manager, logger)
}

// newRegisterService binds the transaction seam straight to the fakes.
func newRegisterService(
	t *testing.T,
	users *fakeUserRepo,
	cards *fakeCardRepo,
) *Service {
	t.Helper()

	svc := newLoginService(t, users)
	svc.inTx = func(_ context.Context, fn registerTxFunc) error {
		return fn(users, cards)
	}
	return svc
}

func seedUser(t *testing.T, repo *fakeUserRepo, email, password string) *user.User {
	t.Helper()

	hash, err := core.HashPassword(password)
	require.NoError(t, err)

	u := &user.User{
		ID:           1,
		Email:        email,
		FirstName:    "Avid",
		LastName:     "Reader",
		PasswordHash: hash,
		Role:         user.RoleUser,
	}
	repo.add(u)
	return u
}

func TestLoginSuccess(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "reader@example.com", "correct horse battery")
	svc := newLoginService(t, repo)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "reader@example.com",
		Password: "correct horse battery",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, "reader@example.com", resp.User.Email)
}

func TestLoginNormalizesEmailCase(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "reader@example.com", "correct horse battery")
	svc := newLoginService(t, repo)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "  Reader@Example.COM ",
		Password: "correct horse battery",
	})

	require.NoError(t, err)
	assert.Equal(t, "reader@example.com", resp.User.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "reader@example.com", "correct horse battery")
	svc := newLoginService(t, repo)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "reader@example.com",
		Password: "wrong password",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newLoginService(t, repo)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever password",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidCredentials)
}

func TestLoginTokenCarriesIdentity(t *testing.T) {
	repo := newFakeUserRepo()
	u := seedUser(t, repo, "reader@example.com", "correct horse battery")
	u.Role = user.RoleAdmin

	manager := newTestJWTManager(t, time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(nil, repo, manager, logger)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "reader@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	claims, err := manager.VerifyAccessToken(
		context.Background(), resp.AccessToken)
	require.NoError(t, err)

	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "reader@example.com", claims.Email)
	assert.Equal(t, user.RoleAdmin, claims.Role)
}

func TestMe(t *testing.T) {
	repo := newFakeUserRepo()
	u := seedUser(t, repo, "reader@example.com", "correct horse battery")
	svc := newLoginService(t, repo)

	got, err := svc.Me(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)

	_, err = svc.Me(context.Background(), 999)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRegisterAssignsLowestFreeCard(t *testing.T) {
	users := newFakeUserRepo()
	cards := newFakeCardRepo(3, 5, 9)
	svc := newRegisterService(t, users, cards)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:     "Reader@Example.com",
		FirstName: "Avid",
		LastName:  "Reader",
		Password:  "correct horse battery",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "reader@example.com", resp.User.Email)

	assigned := cards.cards[3]
	assert.Equal(t, card.StatusInUse, assigned.Status)
	require.NotNil(t, assigned.UserID)
	assert.Equal(t, resp.User.ID, *assigned.UserID)

	assert.Equal(t, card.StatusFree, cards.cards[5].Status)
	assert.Equal(t, card.StatusFree, cards.cards[9].Status)
}

func TestRegisterNoFreeCardLeavesNoUser(t *testing.T) {
	users := newFakeUserRepo()
	cards := newFakeCardRepo()
	svc := newRegisterService(t, users, cards)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:     "reader@example.com",
		FirstName: "Avid",
		LastName:  "Reader",
		Password:  "correct horse battery",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNoCapacity)
	assert.Empty(t, users.byID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(t, users, "reader@example.com", "correct horse battery")
	cards := newFakeCardRepo(1)
	svc := newRegisterService(t, users, cards)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:     "reader@example.com",
		FirstName: "Second",
		LastName:  "Reader",
		Password:  "another password",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrConflict)
	assert.Equal(t, card.StatusFree, cards.cards[1].Status)
}

func TestRegisterExhaustedPoolWinsOverDuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(t, users, "reader@example.com", "correct horse battery")
	cards := newFakeCardRepo()
	svc := newRegisterService(t, users, cards)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:     "reader@example.com",
		FirstName: "Second",
		LastName:  "Reader",
		Password:  "another password",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNoCapacity)
}

func TestLoginRejectsEmptyishPassword(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "reader@example.com", "correct horse battery")
	svc := newLoginService(t, repo)

	for _, password := range []string{"", " ", strings.Repeat("x", 200)} {
		_, err := svc.Login(context.Background(), LoginRequest{
			Email:    "reader@example.com",
			Password: password,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrInvalidCredentials)
	}
}
