// AngelaMos | 2026
// service_test.go

package author

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/library-api/internal/core"
)

type fakeRepo struct {
	authors map[int64]*Author
	nextID  int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{authors: make(map[int64]*Author), nextID: 1}
}

func (f *fakeRepo) Create(_ context.Context, a *Author) error {
	a.ID = f.nextID
	f.nextID++
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	clone := *a
	f.authors[a.ID] = &clone
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*Author, error) {
	a, ok := f.authors[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	clone := *a
	return &clone, nil
}

func (f *fakeRepo) List(
	_ context.Context,
	_ ListAuthorsParams,
) ([]Author, int, error) {
	var out []Author
	for _, a := range f.authors {
		out = append(out, *a)
	}
	return out, len(out), nil
}

func (f *fakeRepo) Update(_ context.Context, a *Author) error {
	if _, ok := f.authors[a.ID]; !ok {
		return core.ErrNotFound
	}
	a.UpdatedAt = time.Now()
	clone := *a
	f.authors[a.ID] = &clone
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := f.authors[id]; !ok {
		return false, nil
	}
	delete(f.authors, id)
	return true, nil
}

func (f *fakeRepo) ExistAll(_ context.Context, ids []int64) (bool, error) {
	for _, id := range ids {
		if _, ok := f.authors[id]; !ok {
			return false, nil
		}
	}
	return true, nil
}

func (f *fakeRepo) ListByBookID(
	_ context.Context,
	_ int64,
) ([]Author, error) {
	return nil, nil
}

func (f *fakeRepo) ReplaceBookAuthors(
	_ context.Context,
	_ int64,
	_ []int64,
) error {
	return nil
}

func strPtr(s string) *string { return &s }

func TestCreateAuthor(t *testing.T) {
	svc := NewService(newFakeRepo())

	birthDate := time.Date(1920, 8, 22, 0, 0, 0, 0, time.UTC)
	a, err := svc.Create(context.Background(), CreateAuthorRequest{
		FirstName: strPtr("Ray"),
		LastName:  "Bradbury",
		BirthDate: &birthDate,
	})

	require.NoError(t, err)
	assert.NotZero(t, a.ID)
	assert.Equal(t, "Ray Bradbury", a.FullName())
}

func TestCreateSingleNameAuthor(t *testing.T) {
	svc := NewService(newFakeRepo())

	a, err := svc.Create(context.Background(), CreateAuthorRequest{
		LastName: "Homer",
	})

	require.NoError(t, err)
	assert.Equal(t, "Homer", a.FullName())
}

func TestUpdatePartialFields(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	a, err := svc.Create(context.Background(), CreateAuthorRequest{
		FirstName: strPtr("Ursula"),
		LastName:  "Le Guin",
	})
	require.NoError(t, err)

	deathDate := time.Date(2018, 1, 22, 0, 0, 0, 0, time.UTC)
	updated, err := svc.Update(context.Background(), a.ID, UpdateAuthorRequest{
		DeathDate: &deathDate,
	})

	require.NoError(t, err)
	require.NotNil(t, updated.FirstName)
	assert.Equal(t, "Ursula", *updated.FirstName)
	require.NotNil(t, updated.DeathDate)
	assert.True(t, updated.DeathDate.Equal(deathDate))
}

func TestUpdateUnknownAuthor(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Update(context.Background(), 99, UpdateAuthorRequest{
		LastName: strPtr("Nobody"),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestDeleteUnknownAuthor(t *testing.T) {
	svc := NewService(newFakeRepo())

	err := svc.Delete(context.Background(), 99)

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotFound)
}
