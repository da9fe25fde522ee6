// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/library-api/internal/core"
)

type fakeRepo struct {
	users  map[int64]*User
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[int64]*User), nextID: 1}
}

func (f *fakeRepo) Create(_ context.Context, u *User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return core.ErrConflict
		}
	}
	u.ID = f.nextID
	f.nextID++
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	clone := *u
	f.users[u.ID] = &clone
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *fakeRepo) GetByEmail(
	_ context.Context,
	email string,
) (*User, error) {
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeRepo) ExistsByEmail(
	_ context.Context,
	email string,
) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) Update(_ context.Context, u *User) error {
	if _, ok := f.users[u.ID]; !ok {
		return core.ErrNotFound
	}
	u.UpdatedAt = time.Now()
	clone := *u
	f.users[u.ID] = &clone
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := f.users[id]; !ok {
		return false, nil
	}
	delete(f.users, id)
	return true, nil
}

func (f *fakeRepo) List(
	_ context.Context,
	_ ListUsersParams,
) ([]User, int, error) {
	var out []User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, len(out), nil
}

func TestCreateDefaultsToUserRole(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(nil, repo)

	u, err := svc.Create(context.Background(), CreateUserRequest{
		Email:     "Reader@Example.com",
		FirstName: "Avid",
		LastName:  "Reader",
		Password:  "correct horse battery",
	})

	require.NoError(t, err)
	assert.Equal(t, RoleUser, u.Role)
	assert.Equal(t, "reader@example.com", u.Email)
	assert.NotEqual(t, "correct horse battery", u.PasswordHash)
}

func TestCreateHonorsExplicitRole(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(nil, repo)

	u, err := svc.Create(context.Background(), CreateUserRequest{
		Email:     "admin@example.com",
		FirstName: "Head",
		LastName:  "Librarian",
		Password:  "correct horse battery",
		Role:      RoleAdmin,
	})

	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, u.Role)
	assert.True(t, u.IsAdmin())
}

func TestCreateDuplicateEmail(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(nil, repo)

	_, err := svc.Create(context.Background(), CreateUserRequest{
		Email:     "reader@example.com",
		FirstName: "Avid",
		LastName:  "Reader",
		Password:  "correct horse battery",
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateUserRequest{
		Email:     "READER@example.com",
		FirstName: "Other",
		LastName:  "Reader",
		Password:  "correct horse battery",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrConflict)
}

func TestUpdatePartialFields(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(nil, repo)

	u, err := svc.Create(context.Background(), CreateUserRequest{
		Email:     "reader@example.com",
		FirstName: "Avid",
		LastName:  "Reader",
		Password:  "correct horse battery",
	})
	require.NoError(t, err)

	newName := "Voracious"
	updated, err := svc.Update(context.Background(), u.ID, UpdateUserRequest{
		FirstName: &newName,
	})

	require.NoError(t, err)
	assert.Equal(t, "Voracious", updated.FirstName)
	assert.Equal(t, "Reader", updated.LastName)
	assert.Equal(t, "reader@example.com", updated.Email)
}

func TestUpdateEmailConflict(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(nil, repo)

	_, err := svc.Create(context.Background(), CreateUserRequest{
		Email:     "first@example.com",
		FirstName: "First",
		LastName:  "Reader",
		Password:  "correct horse battery",
	})
	require.NoError(t, err)

	second, err := svc.Create(context.Background(), CreateUserRequest{
		Email:     "second@example.com",
		FirstName: "Second",
		LastName:  "Reader",
		Password:  "correct horse battery",
	})
	require.NoError(t, err)

	taken := "first@example.com"
	_, err = svc.Update(context.Background(), second.ID, UpdateUserRequest{
		Email: &taken,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrConflict)
}

func TestUpdateRehashesPassword(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(nil, repo)

	u, err := svc.Create(context.Background(), CreateUserRequest{
		Email:     "reader@example.com",
		FirstName: "Avid",
		LastName:  "Reader",
		Password:  "correct horse battery",
	})
	require.NoError(t, err)
	oldHash := u.PasswordHash

	newPassword := "entirely new secret"
	updated, err := svc.Update(context.Background(), u.ID, UpdateUserRequest{
		Password: &newPassword,
	})

	require.NoError(t, err)
	assert.NotEqual(t, oldHash, updated.PasswordHash)

	valid, err := core.VerifyPassword(newPassword, updated.PasswordHash)
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestUpdateUnknownUser(t *testing.T) {
	svc := NewService(nil, newFakeRepo())

	name := "Nobody"
	_, err := svc.Update(context.Background(), 99, UpdateUserRequest{
		FirstName: &name,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestFullName(t *testing.T) {
	u := &User{FirstName: "Avid", LastName: "Reader"}
	assert.Equal(t, "Avid Reader", u.FullName())
}
